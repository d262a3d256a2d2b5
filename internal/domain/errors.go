package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrInvalidState   = errors.New("operation not allowed in current reservation state")
	ErrDuplicateSeats = errors.New("seats must not contain duplicates")
	ErrPastShowing    = errors.New("showing has already started")

	// ErrSeatAlreadyReserved is the store-level counterpart of
	// SeatConflictError, raised when the database uniqueness backstop
	// rejects a seat row.
	ErrSeatAlreadyReserved = errors.New("seat(s) are already reserved")
)

// SeatConflictError reports every requested seat that is already held by
// another active reservation, so the caller can adjust the whole request
// instead of discovering conflicts one at a time.
type SeatConflictError struct {
	Seats []string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seats already reserved: %s", strings.Join(e.Seats, ", "))
}

type CapacityError struct {
	Capacity  int
	Requested int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("requested %d seats but showing capacity is %d", e.Requested, e.Capacity)
}

type QuantityMismatchError struct {
	Quantity int
	Seats    int
}

func (e *QuantityMismatchError) Error() string {
	return fmt.Sprintf("quantity (%d) does not match number of seats (%d)", e.Quantity, e.Seats)
}
