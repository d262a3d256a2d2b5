package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/cineflex/cineflex-api/internal/domain"
	"github.com/cineflex/cineflex-api/internal/mocks"
)

type MoviesTestSuite struct {
	suite.Suite
	app       *Application
	movieRepo *mocks.MockMovieRepo
}

func (s *MoviesTestSuite) SetupTest() {
	s.movieRepo = new(mocks.MockMovieRepo)

	s.app = newTestApplication(func(a *Application) {
		a.movieRepo = s.movieRepo
	})
}

func TestMoviesSuite(t *testing.T) {
	suite.Run(t, new(MoviesTestSuite))
}

func (s *MoviesTestSuite) TestCreateMovie() {
	tests := []struct {
		name           string
		request        MovieRequest
		setupMocks     func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:           "should fail when title is missing",
			request:        MovieRequest{Genre: "Drama"},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "is required",
		},
		{
			name: "should fail when duration is not positive",
			request: MovieRequest{
				Title:       "Arrival",
				DurationMin: -10,
			},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be greater than 0",
		},
		{
			name: "should fail when database error occurs",
			request: MovieRequest{
				Title: "Arrival",
			},
			setupMocks: func() {
				s.movieRepo.On("Create", mock.Anything, mock.Anything).Return(fmt.Errorf("database error"))
			},
			wantStatus: http.StatusInternalServerError,
		},
		{
			name: "should create movie with valid input",
			request: MovieRequest{
				Title:       "Arrival",
				Genre:       "Sci-Fi",
				DurationMin: 116,
				Rating:      "PG-13",
			},
			setupMocks: func() {
				s.movieRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
					movie := args.Get(1).(*domain.Movie)
					movie.ID = 1
				}).Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.movieRepo.AssertExpectations(s.T())

			if tt.setupMocks != nil {
				tt.setupMocks()
			}

			w, r := executeRequest(s.T(), http.MethodPost, "/movies", tt.request)
			s.app.CreateMovie(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusCreated {
				var resp MovieResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
				s.Equal(int64(1), resp.Id)
				s.Equal("Arrival", resp.Title)
				s.Equal(116, resp.DurationMin)
				return
			}

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func (s *MoviesTestSuite) TestGetMovies() {
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	s.movieRepo.On("GetAll", mock.Anything, domain.MovieFilters{}).Return([]*domain.Movie{
		{ID: 1, Title: "Arrival", Genre: "Sci-Fi", Duration: 116, CreatedAt: createdAt},
		{ID: 2, Title: "Heat", Genre: "Crime", Duration: 170, CreatedAt: createdAt},
	}, nil)

	w, r := executeRequest(s.T(), http.MethodGet, "/movies", nil)
	s.app.GetMovies(w, r)

	s.Require().Equal(http.StatusOK, w.Code)

	var resp []MovieResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))

	want := []MovieResponse{
		{Id: 1, Title: "Arrival", Genre: "Sci-Fi", DurationMin: 116, CreatedAt: createdAt},
		{Id: 2, Title: "Heat", Genre: "Crime", DurationMin: 170, CreatedAt: createdAt},
	}

	diff := cmp.Diff(want, resp)
	s.Empty(diff, "Response mismatch (-want +got):\n%s", diff)
}

func (s *MoviesTestSuite) TestGetMovies_Filtered() {
	s.movieRepo.On("GetAll", mock.Anything, domain.MovieFilters{Genre: "Crime", Term: "heat"}).
		Return([]*domain.Movie{{ID: 2, Title: "Heat", Genre: "Crime"}}, nil)

	w, r := executeRequest(s.T(), http.MethodGet, "/movies?genre=Crime&q=heat", nil)
	s.app.GetMovies(w, r)

	s.Require().Equal(http.StatusOK, w.Code)

	var resp []MovieResponse
	s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
	s.Require().Len(resp, 1)
	s.Equal("Heat", resp[0].Title)
}

func (s *MoviesTestSuite) TestGetMovie() {
	tests := []struct {
		name       string
		movieID    int64
		setupMocks func()
		wantStatus int
	}{
		{
			name:    "should fail when movie is not found",
			movieID: 99,
			setupMocks: func() {
				s.movieRepo.On("GetById", mock.Anything, int64(99)).Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:    "should return movie with valid id",
			movieID: 1,
			setupMocks: func() {
				s.movieRepo.On("GetById", mock.Anything, int64(1)).
					Return(&domain.Movie{ID: 1, Title: "Arrival"}, nil)
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.movieRepo.AssertExpectations(s.T())

			tt.setupMocks()

			w, r := executeRequest(s.T(), http.MethodGet, fmt.Sprintf("/movies/%d", tt.movieID), nil)
			s.app.GetMovie(w, withIDParam(r, tt.movieID))

			s.Equal(tt.wantStatus, w.Code)
		})
	}
}

func (s *MoviesTestSuite) TestUpdateMovie() {
	s.movieRepo.On("Update", mock.Anything, mock.MatchedBy(func(movie *domain.Movie) bool {
		return movie.ID == 1 && movie.Title == "Arrival (Director's Cut)"
	})).Return(nil)

	w, r := executeRequest(s.T(), http.MethodPut, "/movies/1", MovieRequest{
		Title: "Arrival (Director's Cut)",
	})
	s.app.UpdateMovie(w, withIDParam(r, 1))

	s.Equal(http.StatusOK, w.Code)
	s.movieRepo.AssertExpectations(s.T())
}

func (s *MoviesTestSuite) TestUpdateMovie_NotFound() {
	s.movieRepo.On("Update", mock.Anything, mock.Anything).Return(domain.ErrRecordNotFound)

	w, r := executeRequest(s.T(), http.MethodPut, "/movies/99", MovieRequest{Title: "Arrival"})
	s.app.UpdateMovie(w, withIDParam(r, 99))

	s.Equal(http.StatusNotFound, w.Code)
}

func (s *MoviesTestSuite) TestDeleteMovie() {
	s.movieRepo.On("Delete", mock.Anything, int64(1)).Return(nil)

	w, r := executeRequest(s.T(), http.MethodDelete, "/movies/1", nil)
	s.app.DeleteMovie(w, withIDParam(r, 1))

	s.Equal(http.StatusNoContent, w.Code)
}

func (s *MoviesTestSuite) TestDeleteMovie_NotFound() {
	s.movieRepo.On("Delete", mock.Anything, int64(99)).Return(domain.ErrRecordNotFound)

	w, r := executeRequest(s.T(), http.MethodDelete, "/movies/99", nil)
	s.app.DeleteMovie(w, withIDParam(r, 99))

	s.Equal(http.StatusNotFound, w.Code)
}
