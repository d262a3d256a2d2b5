package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type ReservationStatus string

const (
	ReservationCreated   ReservationStatus = "CREATED"
	ReservationPaid      ReservationStatus = "PAID"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

// Active reports whether reservations in this status hold their seats.
// CANCELLED reservations release their seats; everything else keeps them.
func (s ReservationStatus) Active() bool {
	return s == ReservationCreated || s == ReservationPaid
}

type Reservation struct {
	ID            int64
	CustomerName  string
	CustomerEmail string
	ShowingID     int64
	Seats         []string
	Quantity      int
	Status        ReservationStatus
	ReceiptCode   string
	CreatedAt     time.Time
	PaidAt        *time.Time
	CancelledAt   *time.Time

	// UnitPrice is the showing's ticket price at read time, filled in by the
	// store. It is not persisted on the reservation itself.
	UnitPrice decimal.Decimal
}

// NewReservation constructs a reservation in the CREATED state. Seats are
// assumed to have passed the booking guard chain already. The customer email
// is optional; when present it receives the payment receipt.
func NewReservation(customerName, customerEmail string, showingID int64, seats []string, createdAt time.Time) Reservation {
	return Reservation{
		CustomerName:  customerName,
		CustomerEmail: customerEmail,
		ShowingID:     showingID,
		Seats:         seats,
		Quantity:      len(seats),
		Status:        ReservationCreated,
		CreatedAt:     createdAt,
	}
}

func (r Reservation) TotalPrice() decimal.Decimal {
	return r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity)))
}

// Pay transitions the reservation to PAID. It is legal only from CREATED;
// the paid timestamp is set exactly once, on the first successful transition.
func (r Reservation) Pay(now time.Time) (Reservation, error) {
	switch r.Status {
	case ReservationPaid:
		return r, fmt.Errorf("%w: reservation is already paid", ErrInvalidState)
	case ReservationCancelled:
		return r, fmt.Errorf("%w: cannot pay a cancelled reservation", ErrInvalidState)
	}

	r.Status = ReservationPaid
	if r.PaidAt == nil {
		r.PaidAt = &now
	}

	return r, nil
}

// Cancel transitions the reservation to CANCELLED, from either CREATED or
// PAID (the latter is the refund path). CANCELLED is terminal.
func (r Reservation) Cancel(now time.Time) (Reservation, error) {
	if r.Status == ReservationCancelled {
		return r, fmt.Errorf("%w: reservation is already cancelled", ErrInvalidState)
	}

	r.Status = ReservationCancelled
	if r.CancelledAt == nil {
		r.CancelledAt = &now
	}

	return r, nil
}

// Update replaces the customer name and seat set, deriving the quantity from
// the new seats. Only CREATED reservations may be edited; the caller is
// responsible for re-validating the new seats against current occupancy.
func (r Reservation) Update(customerName string, seats []string) (Reservation, error) {
	if r.Status != ReservationCreated {
		return r, fmt.Errorf("%w: only CREATED reservations can be edited", ErrInvalidState)
	}

	r.CustomerName = customerName
	r.Seats = seats
	r.Quantity = len(seats)

	return r, nil
}

// Deletable reports whether the reservation may be physically removed.
// PAID and CANCELLED records are retained for audit history.
func (r Reservation) Deletable() error {
	if r.Status != ReservationCreated {
		return fmt.Errorf("%w: only CREATED reservations can be deleted", ErrInvalidState)
	}

	return nil
}

type ReservationRepository interface {
	// Save inserts the reservation when its ID is zero and overwrites the
	// stored record otherwise, assigning the generated ID on insert.
	Save(ctx context.Context, reservation *Reservation) error
	GetById(ctx context.Context, id int64) (*Reservation, error)
	// GetAll returns reservations ordered by creation time descending,
	// optionally filtered by showing when showingID is non-zero.
	GetAll(ctx context.Context, showingID int64) ([]*Reservation, error)
	GetByShowingId(ctx context.Context, showingID int64) ([]*Reservation, error)
	Delete(ctx context.Context, id int64) error
	ExistsById(ctx context.Context, id int64) (bool, error)
}
