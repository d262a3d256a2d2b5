package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/cineflex/cineflex-api/internal/domain"
)

type PostgresShowingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowingRepository(db *pgxpool.Pool) *PostgresShowingRepository {
	return &PostgresShowingRepository{
		db: db,
	}
}

func (p *PostgresShowingRepository) Create(ctx context.Context, showing *domain.Showing) error {
	query := `
		INSERT INTO showings (movie_id, show_date, show_time, room, price, capacity)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	return p.db.QueryRow(
		ctx,
		query,
		showing.MovieID,
		showing.Date,
		clockToPgTime(showing.Time),
		showing.Room,
		showing.Price.String(),
		showing.EffectiveCapacity(),
	).Scan(&showing.ID)
}

func (p *PostgresShowingRepository) GetAll(ctx context.Context, filters domain.ShowingFilters) ([]*domain.Showing, error) {
	query := `
		SELECT id, movie_id, show_date, show_time, room, price::text, capacity
		FROM showings
		WHERE ($1 = 0 OR movie_id = $1)
		AND ($2::date IS NULL OR show_date = $2)
		ORDER BY show_date, show_time
	`

	rows, err := p.db.Query(ctx, query, filters.MovieID, filters.Date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	showings := make([]*domain.Showing, 0)

	for rows.Next() {
		showing, err := scanShowing(rows)
		if err != nil {
			return nil, err
		}

		showings = append(showings, showing)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return showings, nil
}

func (p *PostgresShowingRepository) GetById(ctx context.Context, id int64) (*domain.Showing, error) {
	query := `
		SELECT id, movie_id, show_date, show_time, room, price::text, capacity
		FROM showings
		WHERE id = $1
	`

	showing, err := scanShowing(p.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return showing, nil
}

func (p *PostgresShowingRepository) Update(ctx context.Context, showing *domain.Showing) error {
	query := `
		UPDATE showings
		SET movie_id = $1, show_date = $2, show_time = $3, room = $4, price = $5, capacity = $6
		WHERE id = $7
	`

	tag, err := p.db.Exec(
		ctx,
		query,
		showing.MovieID,
		showing.Date,
		clockToPgTime(showing.Time),
		showing.Room,
		showing.Price.String(),
		showing.EffectiveCapacity(),
		showing.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresShowingRepository) Delete(ctx context.Context, id int64) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM showings WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresShowingRepository) ExistsById(ctx context.Context, id int64) (bool, error) {
	var exists bool

	err := p.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM showings WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func scanShowing(row pgx.Row) (*domain.Showing, error) {
	var (
		showing  domain.Showing
		showTime pgtype.Time
		price    string
	)

	err := row.Scan(
		&showing.ID,
		&showing.MovieID,
		&showing.Date,
		&showTime,
		&showing.Room,
		&price,
		&showing.Capacity,
	)
	if err != nil {
		return nil, err
	}

	showing.Time = pgTimeToClock(showTime)

	showing.Price, err = decimal.NewFromString(price)
	if err != nil {
		return nil, err
	}

	return &showing, nil
}

// clockToPgTime keeps only the clock part of t, as microseconds since
// midnight, which is how Postgres represents a time column.
func clockToPgTime(t time.Time) pgtype.Time {
	micros := int64(t.Hour())*int64(time.Hour/time.Microsecond) +
		int64(t.Minute())*int64(time.Minute/time.Microsecond) +
		int64(t.Second())*int64(time.Second/time.Microsecond)

	return pgtype.Time{Microseconds: micros, Valid: true}
}

func pgTimeToClock(t pgtype.Time) time.Time {
	micros := t.Microseconds
	hour := micros / int64(time.Hour/time.Microsecond)
	micros -= hour * int64(time.Hour/time.Microsecond)
	minute := micros / int64(time.Minute/time.Microsecond)
	micros -= minute * int64(time.Minute/time.Microsecond)
	second := micros / int64(time.Second/time.Microsecond)

	return time.Date(0, time.January, 1, int(hour), int(minute), int(second), 0, time.UTC)
}
