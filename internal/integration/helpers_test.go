package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/cineflex/cineflex-api/internal/domain"
	"github.com/cineflex/cineflex-api/internal/repository"
)

var volatileKeys = []string{"timestamp", "requestId", "createdAt", "paidAt", "cancelledAt", "receiptCode"}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func jsonBody(t testing.TB, v any) io.Reader {
	data, err := json.Marshal(v)
	require.NoError(t, err)

	return strings.NewReader(string(data))
}

func compareResponse(t *testing.T, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// volatile fields are generated per run and cannot be pinned
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		for _, key := range volatileKeys {
			if k == key {
				return true
			}
		}
		return false
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func decodeResponse[T any](t testing.TB, body io.Reader) T {
	var v T
	require.NoError(t, json.NewDecoder(body).Decode(&v))

	return v
}

// seedShowing inserts a movie and a future showing, returning the showing ID.
func seedShowing(t testing.TB, db *pgxpool.Pool, capacity int) int64 {
	ctx := context.Background()

	movieRepo := repository.NewPostgresMovieRepository(db)
	showingRepo := repository.NewPostgresShowingRepository(db)

	movie := domain.Movie{
		Title:    "Arrival",
		Genre:    "Sci-Fi",
		Duration: 116,
		Rating:   "PG-13",
	}
	require.NoError(t, movieRepo.Create(ctx, &movie))

	tomorrow := time.Now().AddDate(0, 0, 1)

	showing := domain.Showing{
		MovieID:  movie.ID,
		Date:     time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, time.UTC),
		Time:     time.Date(0, 1, 1, 20, 0, 0, 0, time.UTC),
		Room:     "Sala 1",
		Price:    decimal.RequireFromString("12.50"),
		Capacity: capacity,
	}
	require.NoError(t, showingRepo.Create(ctx, &showing))

	return showing.ID
}

func truncateAll(t testing.TB, db *pgxpool.Pool) {
	_, err := db.Exec(context.Background(), "TRUNCATE movies, showings, reservations, reservation_seats RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}
