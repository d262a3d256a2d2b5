package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/cineflex/cineflex-api/internal/domain"
	appvalidator "github.com/cineflex/cineflex-api/internal/validator"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type ConflictResponse struct {
	Message string   `json:"message"`
	Seats   []string `json:"seats,omitempty"`
}

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.Error(err.Error(), "method", method, "uri", uri)
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)

	message := "The server encountered a problem and could not process your request"
	app.errorResponse(w, r, http.StatusInternalServerError, message)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "The requested resource not found"
	app.errorResponse(w, r, http.StatusNotFound, message)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *Application) failedValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := ValidationErrorResponse{
		Message:          "Validation failed",
		ValidationErrors: make([]ValidationError, 0, len(validationErrors)),
	}

	for _, fieldError := range validationErrors {
		resp.ValidationErrors = append(resp.ValidationErrors, ValidationError{
			Field: fieldError.Field(),
			Issue: appvalidator.ValidationMessage(fieldError),
		})
	}

	err = app.writeJSON(w, http.StatusUnprocessableEntity, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) seatConflictResponse(w http.ResponseWriter, r *http.Request, conflict *domain.SeatConflictError) {
	resp := ConflictResponse{
		Message: conflict.Error(),
		Seats:   conflict.Seats,
	}

	err := app.writeJSON(w, http.StatusConflict, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// bookingErrorResponse maps the booking engine's error taxonomy onto HTTP
// status codes: missing records are 404, lifecycle and seat conflicts 409,
// and rejected input 422.
func (app *Application) bookingErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var (
		conflictErr *domain.SeatConflictError
		capacityErr *domain.CapacityError
		quantityErr *domain.QuantityMismatchError
	)

	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		app.notFoundResponse(w, r)
	case errors.As(err, &conflictErr):
		app.seatConflictResponse(w, r, conflictErr)
	case errors.Is(err, domain.ErrSeatAlreadyReserved), errors.Is(err, domain.ErrInvalidState):
		app.errorResponse(w, r, http.StatusConflict, err.Error())
	case errors.As(err, &capacityErr), errors.As(err, &quantityErr),
		errors.Is(err, domain.ErrDuplicateSeats), errors.Is(err, domain.ErrPastShowing):
		app.errorResponse(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		app.serverErrorResponse(w, r, err)
	}
}
