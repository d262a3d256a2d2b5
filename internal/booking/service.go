package booking

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/cineflex/cineflex-api/internal/clock"
	"github.com/cineflex/cineflex-api/internal/domain"
)

// Service orchestrates the reservation lifecycle for showings. Every
// mutating operation runs its full guard chain and persists exactly one
// reservation record under the showing's lock, so two concurrent intents
// can never both claim the same seat.
type Service struct {
	showings     domain.ShowingRepository
	reservations domain.ReservationRepository
	clock        clock.Clock
	locks        *showingLocks
}

func NewService(
	showings domain.ShowingRepository,
	reservations domain.ReservationRepository,
	clk clock.Clock,
) *Service {
	return &Service{
		showings:     showings,
		reservations: reservations,
		clock:        clk,
		locks:        newShowingLocks(),
	}
}

// Create books the given seats on a showing for a customer. The quantity is
// optional; when supplied it must match the number of seats, otherwise it is
// derived from them.
func (s *Service) Create(
	ctx context.Context,
	customerName string,
	customerEmail string,
	showingID int64,
	seats []string,
	quantity *int,
) (*domain.Reservation, error) {

	showing, err := s.showings.GetById(ctx, showingID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(showingID)
	defer unlock()

	if err := s.validateBookingIntent(ctx, showing, seats, 0); err != nil {
		return nil, err
	}

	if quantity != nil && *quantity != len(seats) {
		return nil, &domain.QuantityMismatchError{Quantity: *quantity, Seats: len(seats)}
	}

	reservation := domain.NewReservation(customerName, customerEmail, showingID, seats, s.clock.Now())

	if err := s.reservations.Save(ctx, &reservation); err != nil {
		return nil, fmt.Errorf("saving reservation: %w", err)
	}

	reservation.UnitPrice = showing.Price

	return &reservation, nil
}

// List returns reservations ordered by creation time descending. A zero
// showingID returns reservations across all showings.
func (s *Service) List(ctx context.Context, showingID int64) ([]*domain.Reservation, error) {
	return s.reservations.GetAll(ctx, showingID)
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.reservations.GetById(ctx, id)
}

// Update replaces the customer name and seat set of a CREATED reservation,
// re-running the full guard chain against current occupancy with the
// reservation's own seats excluded. On any failure the stored record is left
// untouched.
func (s *Service) Update(ctx context.Context, id int64, customerName string, seats []string) (*domain.Reservation, error) {
	current, err := s.reservations.GetById(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(current.ShowingID)
	defer unlock()

	// Re-fetch under the lock: the record may have transitioned since the
	// unguarded read above.
	current, err = s.reservations.GetById(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := current.Update(customerName, seats)
	if err != nil {
		return nil, err
	}

	showing, err := s.showings.GetById(ctx, current.ShowingID)
	if err != nil {
		return nil, err
	}

	if err := s.validateBookingIntent(ctx, showing, seats, id); err != nil {
		return nil, err
	}

	if err := s.reservations.Save(ctx, &updated); err != nil {
		return nil, fmt.Errorf("saving reservation: %w", err)
	}

	updated.UnitPrice = showing.Price

	return &updated, nil
}

// Delete removes a reservation entirely. Only CREATED reservations can be
// deleted; PAID and CANCELLED records are kept for audit history.
func (s *Service) Delete(ctx context.Context, id int64) error {
	reservation, err := s.reservations.GetById(ctx, id)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(reservation.ShowingID)
	defer unlock()

	reservation, err = s.reservations.GetById(ctx, id)
	if err != nil {
		return err
	}

	if err := reservation.Deletable(); err != nil {
		return err
	}

	return s.reservations.Delete(ctx, id)
}

// Pay marks a CREATED reservation as paid, stamping the paid timestamp and
// assigning a receipt code on the first transition.
func (s *Service) Pay(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.transition(ctx, id, func(r domain.Reservation) (domain.Reservation, error) {
		paid, err := r.Pay(s.clock.Now())
		if err != nil {
			return r, err
		}

		if paid.ReceiptCode == "" {
			paid.ReceiptCode = uuid.NewString()
		}

		return paid, nil
	})
}

// Cancel moves a reservation to CANCELLED from either CREATED or PAID,
// releasing its seats.
func (s *Service) Cancel(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.transition(ctx, id, func(r domain.Reservation) (domain.Reservation, error) {
		return r.Cancel(s.clock.Now())
	})
}

func (s *Service) transition(
	ctx context.Context,
	id int64,
	fn func(domain.Reservation) (domain.Reservation, error),
) (*domain.Reservation, error) {

	reservation, err := s.reservations.GetById(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(reservation.ShowingID)
	defer unlock()

	reservation, err = s.reservations.GetById(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := fn(*reservation)
	if err != nil {
		return nil, err
	}

	if err := s.reservations.Save(ctx, &next); err != nil {
		return nil, fmt.Errorf("saving reservation: %w", err)
	}

	return &next, nil
}

// AvailableSeats returns the showing's seat space minus current occupancy,
// in generation order.
func (s *Service) AvailableSeats(ctx context.Context, showingID int64) ([]string, error) {
	showing, err := s.showings.GetById(ctx, showingID)
	if err != nil {
		return nil, err
	}

	occupied, err := s.occupiedSeatSet(ctx, showingID, 0)
	if err != nil {
		return nil, err
	}

	available := make([]string, 0, showing.EffectiveCapacity())
	for _, seat := range domain.GenerateSeats(showing.EffectiveCapacity()) {
		if _, taken := occupied[seat]; !taken {
			available = append(available, seat)
		}
	}

	return available, nil
}

// OccupiedSeats returns the seats currently held by CREATED or PAID
// reservations for the showing, sorted lexicographically.
func (s *Service) OccupiedSeats(ctx context.Context, showingID int64) ([]string, error) {
	exists, err := s.showings.ExistsById(ctx, showingID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrRecordNotFound
	}

	occupied, err := s.occupiedSeatSet(ctx, showingID, 0)
	if err != nil {
		return nil, err
	}

	seats := make([]string, 0, len(occupied))
	for seat := range occupied {
		seats = append(seats, seat)
	}
	sort.Strings(seats)

	return seats, nil
}

// validateBookingIntent runs the guard chain shared by Create and Update:
// the showing must not have started, the seats must be distinct, within
// capacity, and free of conflicts with other active reservations.
func (s *Service) validateBookingIntent(
	ctx context.Context,
	showing *domain.Showing,
	seats []string,
	excludeID int64,
) error {

	// "now" is read here, at validation time, so a request straddling the
	// showing's start is judged by the check-time clock.
	if showing.StartsAt().Before(s.clock.Now()) {
		return domain.ErrPastShowing
	}

	if err := ensureDistinct(seats); err != nil {
		return err
	}

	if capacity := showing.EffectiveCapacity(); len(seats) > capacity {
		return &domain.CapacityError{Capacity: capacity, Requested: len(seats)}
	}

	occupied, err := s.occupiedSeatSet(ctx, showing.ID, excludeID)
	if err != nil {
		return err
	}

	var conflicts []string
	for _, seat := range seats {
		if _, taken := occupied[seat]; taken {
			conflicts = append(conflicts, seat)
		}
	}

	if len(conflicts) > 0 {
		sort.Strings(conflicts)
		return &domain.SeatConflictError{Seats: conflicts}
	}

	return nil
}

// occupiedSeatSet recomputes the occupancy of a showing from the store: the
// union of seat sets of CREATED and PAID reservations, minus the excluded
// reservation's seats. It is deliberately never cached, so callers always
// validate against the latest committed state.
func (s *Service) occupiedSeatSet(ctx context.Context, showingID, excludeID int64) (map[string]struct{}, error) {
	reservations, err := s.reservations.GetByShowingId(ctx, showingID)
	if err != nil {
		return nil, fmt.Errorf("scanning reservations of showing %d: %w", showingID, err)
	}

	occupied := make(map[string]struct{})

	for _, r := range reservations {
		if r.ID == excludeID || !r.Status.Active() {
			continue
		}
		for _, seat := range r.Seats {
			occupied[seat] = struct{}{}
		}
	}

	return occupied, nil
}

func ensureDistinct(seats []string) error {
	seen := make(map[string]struct{}, len(seats))

	for _, seat := range seats {
		if _, dup := seen[seat]; dup {
			return domain.ErrDuplicateSeats
		}
		seen[seat] = struct{}{}
	}

	return nil
}
