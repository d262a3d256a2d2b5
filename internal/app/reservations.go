package app

import (
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cineflex/cineflex-api/internal/domain"
)

type CreateReservationRequest struct {
	CustomerName  string   `json:"customerName" validate:"required"`
	CustomerEmail string   `json:"customerEmail" validate:"omitempty,email"`
	ShowingId     int64    `json:"showingId" validate:"required,gt=0"`
	Seats         []string `json:"seats" validate:"required,min=1,dive,seat"`
	Quantity      *int     `json:"quantity" validate:"omitempty,gt=0"`
}

type UpdateReservationRequest struct {
	CustomerName string   `json:"customerName" validate:"required"`
	Seats        []string `json:"seats" validate:"required,min=1,dive,seat"`
}

type ReservationResponse struct {
	Id            int64           `json:"id"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail,omitempty"`
	ShowingId     int64           `json:"showingId"`
	Seats         []string        `json:"seats"`
	Quantity      int             `json:"quantity"`
	Status        string          `json:"status"`
	ReceiptCode   string          `json:"receiptCode,omitempty"`
	TotalPrice    decimal.Decimal `json:"totalPrice"`
	CreatedAt     time.Time       `json:"createdAt"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
	CancelledAt   *time.Time      `json:"cancelledAt,omitempty"`
}

func (app *Application) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest

	if err := app.readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.validator.Struct(req); err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	reservation, err := app.bookings.Create(r.Context(), req.CustomerName, req.CustomerEmail, req.ShowingId, req.Seats, req.Quantity)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toReservationResponse(reservation), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetReservations(w http.ResponseWriter, r *http.Request) {
	showingID, err := app.readInt64Query(r, "showingId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	reservations, err := app.bookings.List(r.Context(), showingID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]ReservationResponse, 0, len(reservations))
	for _, reservation := range reservations {
		resp = append(resp, toReservationResponse(reservation))
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetReservation(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	reservation, err := app.bookings.Get(r.Context(), id)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toReservationResponse(reservation), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req UpdateReservationRequest

	if err := app.readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.validator.Struct(req); err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	reservation, err := app.bookings.Update(r.Context(), id, req.CustomerName, req.Seats)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toReservationResponse(reservation), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.bookings.Delete(r.Context(), id); err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) PayReservation(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	reservation, err := app.bookings.Pay(r.Context(), id)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	app.sendPaymentReceipt(r, reservation)

	err = app.writeJSON(w, http.StatusOK, toReservationResponse(reservation), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CancelReservation(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	reservation, err := app.bookings.Cancel(r.Context(), id)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toReservationResponse(reservation), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) sendPaymentReceipt(r *http.Request, reservation *domain.Reservation) {
	if reservation.CustomerEmail == "" {
		return
	}

	data := map[string]any{
		"CustomerName": reservation.CustomerName,
		"ReceiptCode":  reservation.ReceiptCode,
		"Seats":        strings.Join(reservation.Seats, ", "),
		"Total":        reservation.TotalPrice().String(),
	}

	recipient := reservation.CustomerEmail

	app.background(func() {
		err := app.mailer.Send(recipient, "payment_receipt.tmpl", data)
		if err != nil {
			app.logger.Error("failed to send payment receipt", "error", err, "reservation_id", reservation.ID)
		}
	})
}

func toReservationResponse(reservation *domain.Reservation) ReservationResponse {
	return ReservationResponse{
		Id:            reservation.ID,
		CustomerName:  reservation.CustomerName,
		CustomerEmail: reservation.CustomerEmail,
		ShowingId:     reservation.ShowingID,
		Seats:         reservation.Seats,
		Quantity:      reservation.Quantity,
		Status:        string(reservation.Status),
		ReceiptCode:   reservation.ReceiptCode,
		TotalPrice:    reservation.TotalPrice(),
		CreatedAt:     reservation.CreatedAt,
		PaidAt:        reservation.PaidAt,
		CancelledAt:   reservation.CancelledAt,
	}
}
