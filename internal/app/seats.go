package app

import "net/http"

type SeatListResponse struct {
	ShowingId int64    `json:"showingId"`
	Seats     []string `json:"seats"`
}

func (app *Application) GetAvailableSeats(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	seats, err := app.bookings.AvailableSeats(r.Context(), id)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, SeatListResponse{ShowingId: id, Seats: seats}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetOccupiedSeats(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	seats, err := app.bookings.OccupiedSeats(r.Context(), id)
	if err != nil {
		app.bookingErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, SeatListResponse{ShowingId: id, Seats: seats}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
