package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCapacity is used when a showing is registered without an explicit
// seat count.
const DefaultCapacity = 50

type Showing struct {
	ID       int64
	MovieID  int64
	Date     time.Time
	Time     time.Time
	Room     string
	Price    decimal.Decimal
	Capacity int
}

// StartsAt combines the showing's date and clock time into a single instant,
// in the location of the date.
func (s Showing) StartsAt() time.Time {
	return time.Date(
		s.Date.Year(), s.Date.Month(), s.Date.Day(),
		s.Time.Hour(), s.Time.Minute(), s.Time.Second(), 0,
		s.Date.Location(),
	)
}

func (s Showing) EffectiveCapacity() int {
	if s.Capacity <= 0 {
		return DefaultCapacity
	}

	return s.Capacity
}

type ShowingFilters struct {
	MovieID int64
	Date    *time.Time
}

type ShowingRepository interface {
	Create(ctx context.Context, showing *Showing) error
	GetAll(ctx context.Context, filters ShowingFilters) ([]*Showing, error)
	GetById(ctx context.Context, id int64) (*Showing, error)
	Update(ctx context.Context, showing *Showing) error
	Delete(ctx context.Context, id int64) error
	ExistsById(ctx context.Context, id int64) (bool, error)
}
