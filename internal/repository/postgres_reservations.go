package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/cineflex/cineflex-api/internal/domain"
)

type PostgresReservationRepository struct {
	db *pgxpool.Pool
}

func NewPostgresReservationRepository(db *pgxpool.Pool) *PostgresReservationRepository {
	return &PostgresReservationRepository{
		db: db,
	}
}

// Save upserts the reservation record and rewrites its rows in
// reservation_seats, which exist only while the reservation is active. The
// UNIQUE (showing_id, seat) constraint there backstops the booking
// service's serialization; a violation surfaces as ErrSeatAlreadyReserved.
func (p *PostgresReservationRepository) Save(ctx context.Context, reservation *domain.Reservation) error {
	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		if reservation.ID == 0 {
			query := `
				INSERT INTO reservations
					(customer_name, customer_email, showing_id, seats, quantity, status,
						receipt_code, created_at, paid_at, cancelled_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
				RETURNING id
			`

			err := tx.QueryRow(
				ctx,
				query,
				reservation.CustomerName,
				reservation.CustomerEmail,
				reservation.ShowingID,
				reservation.Seats,
				reservation.Quantity,
				reservation.Status,
				reservation.ReceiptCode,
				reservation.CreatedAt,
				reservation.PaidAt,
				reservation.CancelledAt,
			).Scan(&reservation.ID)
			if err != nil {
				return err
			}
		} else {
			query := `
				UPDATE reservations
				SET customer_name = $1, customer_email = $2, seats = $3, quantity = $4,
					status = $5, receipt_code = $6, paid_at = $7, cancelled_at = $8
				WHERE id = $9
			`

			tag, err := tx.Exec(
				ctx,
				query,
				reservation.CustomerName,
				reservation.CustomerEmail,
				reservation.Seats,
				reservation.Quantity,
				reservation.Status,
				reservation.ReceiptCode,
				reservation.PaidAt,
				reservation.CancelledAt,
				reservation.ID,
			)
			if err != nil {
				return err
			}

			if tag.RowsAffected() == 0 {
				return domain.ErrRecordNotFound
			}

			_, err = tx.Exec(ctx, `DELETE FROM reservation_seats WHERE reservation_id = $1`, reservation.ID)
			if err != nil {
				return err
			}
		}

		if !reservation.Status.Active() {
			return nil
		}

		rows := make([][]any, 0, len(reservation.Seats))
		for _, seat := range reservation.Seats {
			rows = append(rows, []any{reservation.ID, reservation.ShowingID, seat})
		}

		_, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{"reservation_seats"},
			[]string{"reservation_id", "showing_id", "seat"},
			pgx.CopyFromRows(rows),
		)

		return err
	})

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrSeatAlreadyReserved
		}

		return err
	}

	return nil
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}

const reservationColumns = `
	r.id, r.customer_name, r.customer_email, r.showing_id, r.seats, r.quantity,
	r.status, r.receipt_code, r.created_at, r.paid_at, r.cancelled_at, s.price::text
`

func (p *PostgresReservationRepository) GetById(ctx context.Context, id int64) (*domain.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations r
		JOIN showings s ON r.showing_id = s.id
		WHERE r.id = $1
	`

	reservation, err := scanReservation(p.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return reservation, nil
}

func (p *PostgresReservationRepository) GetAll(ctx context.Context, showingID int64) ([]*domain.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations r
		JOIN showings s ON r.showing_id = s.id
		WHERE ($1 = 0 OR r.showing_id = $1)
		ORDER BY r.created_at DESC, r.id DESC
	`

	return p.queryReservations(ctx, query, showingID)
}

func (p *PostgresReservationRepository) GetByShowingId(ctx context.Context, showingID int64) ([]*domain.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations r
		JOIN showings s ON r.showing_id = s.id
		WHERE r.showing_id = $1
	`

	return p.queryReservations(ctx, query, showingID)
}

func (p *PostgresReservationRepository) queryReservations(ctx context.Context, query string, args ...any) ([]*domain.Reservation, error) {
	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}

		reservations = append(reservations, reservation)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return reservations, nil
}

func (p *PostgresReservationRepository) Delete(ctx context.Context, id int64) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresReservationRepository) ExistsById(ctx context.Context, id int64) (bool, error) {
	var exists bool

	err := p.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM reservations WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func scanReservation(row pgx.Row) (*domain.Reservation, error) {
	var (
		reservation domain.Reservation
		price       string
	)

	err := row.Scan(
		&reservation.ID,
		&reservation.CustomerName,
		&reservation.CustomerEmail,
		&reservation.ShowingID,
		&reservation.Seats,
		&reservation.Quantity,
		&reservation.Status,
		&reservation.ReceiptCode,
		&reservation.CreatedAt,
		&reservation.PaidAt,
		&reservation.CancelledAt,
		&price,
	)
	if err != nil {
		return nil, err
	}

	reservation.UnitPrice, err = decimal.NewFromString(price)
	if err != nil {
		return nil, err
	}

	return &reservation, nil
}
