package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/cineflex/cineflex-api/internal/domain"
)

type MockShowingRepo struct {
	mock.Mock
	domain.ShowingRepository
}

func (m *MockShowingRepo) Create(ctx context.Context, showing *domain.Showing) error {
	args := m.Called(ctx, showing)
	return args.Error(0)
}

func (m *MockShowingRepo) GetAll(ctx context.Context, filters domain.ShowingFilters) ([]*domain.Showing, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Showing), args.Error(1)
}

func (m *MockShowingRepo) GetById(ctx context.Context, id int64) (*domain.Showing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Showing), args.Error(1)
}

func (m *MockShowingRepo) Update(ctx context.Context, showing *domain.Showing) error {
	args := m.Called(ctx, showing)
	return args.Error(0)
}

func (m *MockShowingRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockShowingRepo) ExistsById(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}
