package app

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cineflex/cineflex-api/internal/domain"
)

const (
	movieCacheKey = "movies:all"
	movieCacheTTL = time.Minute
)

type MovieRequest struct {
	Title       string `json:"title" validate:"required"`
	Genre       string `json:"genre"`
	DurationMin int    `json:"durationMin" validate:"omitempty,gt=0"`
	Rating      string `json:"rating"`
	Synopsis    string `json:"synopsis" validate:"omitempty,max=2000"`
	PosterUrl   string `json:"posterUrl" validate:"omitempty,url"`
}

type MovieResponse struct {
	Id          int64     `json:"id"`
	Title       string    `json:"title"`
	Genre       string    `json:"genre"`
	DurationMin int       `json:"durationMin"`
	Rating      string    `json:"rating"`
	Synopsis    string    `json:"synopsis"`
	PosterUrl   string    `json:"posterUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (app *Application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var req MovieRequest

	if err := app.readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.validator.Struct(req); err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movie := toMovie(req)

	if err := app.movieRepo.Create(r.Context(), &movie); err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	app.invalidateMovieCache(r.Context())

	err := app.writeJSON(w, http.StatusCreated, toMovieResponse(&movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request) {
	filters := domain.MovieFilters{
		Genre: r.URL.Query().Get("genre"),
		Term:  r.URL.Query().Get("q"),
	}

	// Only the unfiltered catalog listing is cached; filtered queries go
	// straight to the database.
	cacheable := filters == (domain.MovieFilters{})

	if cacheable {
		if resp, ok := app.cachedMovieList(r.Context()); ok {
			err := app.writeJSON(w, http.StatusOK, resp, nil)
			if err != nil {
				app.serverErrorResponse(w, r, err)
			}
			return
		}
	}

	movies, err := app.movieRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := make([]MovieResponse, 0, len(movies))
	for _, movie := range movies {
		resp = append(resp, toMovieResponse(movie))
	}

	if cacheable {
		app.cacheMovieList(r.Context(), resp)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var req MovieRequest

	if err := app.readJSON(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.validator.Struct(req); err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movie := toMovie(req)
	movie.ID = id

	if err := app.movieRepo.Update(r.Context(), &movie); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	app.invalidateMovieCache(r.Context())

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(&movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.movieRepo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			app.notFoundResponse(w, r)
			return
		}

		app.serverErrorResponse(w, r, err)
		return
	}

	app.invalidateMovieCache(r.Context())

	w.WriteHeader(http.StatusNoContent)
}

func (app *Application) cachedMovieList(ctx context.Context) ([]MovieResponse, bool) {
	if app.redis == nil {
		return nil, false
	}

	payload, err := app.redis.Get(ctx, movieCacheKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			app.logger.Warn("movie cache read failed", "error", err)
		}
		return nil, false
	}

	var resp []MovieResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, false
	}

	return resp, true
}

func (app *Application) cacheMovieList(ctx context.Context, resp []MovieResponse) {
	if app.redis == nil {
		return
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		return
	}

	if err := app.redis.Set(ctx, movieCacheKey, payload, movieCacheTTL).Err(); err != nil {
		app.logger.Warn("movie cache write failed", "error", err)
	}
}

func (app *Application) invalidateMovieCache(ctx context.Context) {
	if app.redis == nil {
		return
	}

	if err := app.redis.Del(ctx, movieCacheKey).Err(); err != nil {
		app.logger.Warn("movie cache invalidation failed", "error", err)
	}
}

func toMovie(req MovieRequest) domain.Movie {
	return domain.Movie{
		Title:     req.Title,
		Genre:     req.Genre,
		Duration:  req.DurationMin,
		Rating:    req.Rating,
		Synopsis:  req.Synopsis,
		PosterUrl: req.PosterUrl,
	}
}

func toMovieResponse(movie *domain.Movie) MovieResponse {
	return MovieResponse{
		Id:          movie.ID,
		Title:       movie.Title,
		Genre:       movie.Genre,
		DurationMin: movie.Duration,
		Rating:      movie.Rating,
		Synopsis:    movie.Synopsis,
		PosterUrl:   movie.PosterUrl,
		CreatedAt:   movie.CreatedAt,
	}
}
