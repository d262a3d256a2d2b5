package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cineflex/cineflex-api/internal/domain"
)

const (
	showingDateLayout = "2006-01-02"
	showingTimeLayout = "15:04"
)

type ShowingRequest struct {
	MovieId  int64           `json:"movieId" validate:"required,gt=0"`
	Date     string          `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string          `json:"time" validate:"required,datetime=15:04"`
	Room     string          `json:"room"`
	Price    decimal.Decimal `json:"price"`
	Capacity int             `json:"capacity" validate:"omitempty,gt=0"`
}

type ShowingResponse struct {
	Id       int64           `json:"id"`
	MovieId  int64           `json:"movieId"`
	Date     string          `json:"date"`
	Time     string          `json:"time"`
	Room     string          `json:"room"`
	Price    decimal.Decimal `json:"price"`
	Capacity int             `json:"capacity"`
}

func (app *Application) CreateShowing(w http.ResponseWriter, r *http.Request) {
	var req ShowingRequest

	if err := app.readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.validator.Struct(req); err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	if _, err := app.movieRepo.GetById(r.Context(), req.MovieId); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	showing, err := toShowing(req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.showingRepo.Create(r.Context(), &showing); err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toShowingResponse(&showing), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetShowings(w http.ResponseWriter, r *http.Request) {
	movieID, err := app.readInt64Query(r, "movieId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	filters := domain.ShowingFilters{MovieID: movieID}

	if date := r.URL.Query().Get("date"); date != "" {
		parsed, err := time.Parse(showingDateLayout, date)
		if err != nil {
			app.badRequestResponse(w, r, errors.New("invalid date parameter"))
			return
		}
		filters.Date = &parsed
	}

	showings, err := app.showingRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]ShowingResponse, 0, len(showings))
	for _, showing := range showings {
		resp = append(resp, toShowingResponse(showing))
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetShowing(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	showing, err := app.showingRepo.GetById(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toShowingResponse(showing), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateShowing(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req ShowingRequest

	if err := app.readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.validator.Struct(req); err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	if _, err := app.movieRepo.GetById(r.Context(), req.MovieId); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	showing, err := toShowing(req)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}
	showing.ID = id

	if err := app.showingRepo.Update(r.Context(), &showing); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toShowingResponse(&showing), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteShowing(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.showingRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toShowing(req ShowingRequest) (domain.Showing, error) {
	date, err := time.Parse(showingDateLayout, req.Date)
	if err != nil {
		return domain.Showing{}, errors.New("invalid date")
	}

	clock, err := time.Parse(showingTimeLayout, req.Time)
	if err != nil {
		return domain.Showing{}, errors.New("invalid time")
	}

	showing := domain.Showing{
		MovieID:  req.MovieId,
		Date:     date,
		Time:     clock,
		Room:     req.Room,
		Price:    req.Price,
		Capacity: req.Capacity,
	}

	return showing, nil
}

func toShowingResponse(showing *domain.Showing) ShowingResponse {
	return ShowingResponse{
		Id:       showing.ID,
		MovieId:  showing.MovieID,
		Date:     showing.Date.Format(showingDateLayout),
		Time:     showing.Time.Format(showingTimeLayout),
		Room:     showing.Room,
		Price:    showing.Price,
		Capacity: showing.EffectiveCapacity(),
	}
}
