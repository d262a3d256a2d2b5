package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/cineflex/cineflex-api/internal/domain"
)

// InMemoryReservationRepository is a store used by tests and local
// development. It keeps deep copies of records behind a mutex so callers
// never share slices with the store.
type InMemoryReservationRepository struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]domain.Reservation
}

func NewInMemoryReservationRepository() *InMemoryReservationRepository {
	return &InMemoryReservationRepository{
		nextID: 1,
		byID:   make(map[int64]domain.Reservation),
	}
}

func (m *InMemoryReservationRepository) Save(ctx context.Context, reservation *domain.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if reservation.ID == 0 {
		reservation.ID = m.nextID
		m.nextID++
	}

	m.byID[reservation.ID] = copyReservation(*reservation)

	return nil
}

func (m *InMemoryReservationRepository) GetById(ctx context.Context, id int64) (*domain.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	reservation, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	reservation = copyReservation(reservation)

	return &reservation, nil
}

func (m *InMemoryReservationRepository) GetAll(ctx context.Context, showingID int64) ([]*domain.Reservation, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	reservations := make([]*domain.Reservation, 0, len(m.byID))

	for _, reservation := range m.byID {
		if showingID != 0 && reservation.ShowingID != showingID {
			continue
		}
		r := copyReservation(reservation)
		reservations = append(reservations, &r)
	}

	sort.Slice(reservations, func(i, j int) bool {
		if !reservations[i].CreatedAt.Equal(reservations[j].CreatedAt) {
			return reservations[i].CreatedAt.After(reservations[j].CreatedAt)
		}
		return reservations[i].ID > reservations[j].ID
	})

	return reservations, nil
}

func (m *InMemoryReservationRepository) GetByShowingId(ctx context.Context, showingID int64) ([]*domain.Reservation, error) {
	return m.GetAll(ctx, showingID)
}

func (m *InMemoryReservationRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return domain.ErrRecordNotFound
	}

	delete(m.byID, id)

	return nil
}

func (m *InMemoryReservationRepository) ExistsById(ctx context.Context, id int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.byID[id]

	return ok, nil
}

func copyReservation(r domain.Reservation) domain.Reservation {
	seats := make([]string, len(r.Seats))
	copy(seats, r.Seats)
	r.Seats = seats

	if r.PaidAt != nil {
		paidAt := *r.PaidAt
		r.PaidAt = &paidAt
	}
	if r.CancelledAt != nil {
		cancelledAt := *r.CancelledAt
		r.CancelledAt = &cancelledAt
	}

	return r
}
