package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(otelchi.Middleware("cineflex-api", otelchi.WithChiRoutes(r)))
	r.Use(app.recoverPanic)

	r.Get("/healthcheck", app.GetHealth)

	r.Route("/movies", func(r chi.Router) {
		r.Post("/", app.CreateMovie)
		r.Get("/", app.GetMovies)
		r.Get("/{id}", app.GetMovie)
		r.Put("/{id}", app.UpdateMovie)
		r.Delete("/{id}", app.DeleteMovie)
	})

	r.Route("/showings", func(r chi.Router) {
		r.Post("/", app.CreateShowing)
		r.Get("/", app.GetShowings)
		r.Get("/{id}", app.GetShowing)
		r.Put("/{id}", app.UpdateShowing)
		r.Delete("/{id}", app.DeleteShowing)
		r.Get("/{id}/available-seats", app.GetAvailableSeats)
		r.Get("/{id}/occupied-seats", app.GetOccupiedSeats)
	})

	r.Route("/reservations", func(r chi.Router) {
		r.Post("/", app.CreateReservation)
		r.Get("/", app.GetReservations)
		r.Get("/{id}", app.GetReservation)
		r.Put("/{id}", app.UpdateReservation)
		r.Delete("/{id}", app.DeleteReservation)
		r.Put("/{id}/pay", app.PayReservation)
		r.Put("/{id}/cancel", app.CancelReservation)
	})

	return r
}
