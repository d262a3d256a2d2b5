package domain

import (
	"context"
	"time"
)

type Movie struct {
	ID        int64
	Title     string
	Genre     string
	Duration  int
	Rating    string
	Synopsis  string
	PosterUrl string
	CreatedAt time.Time
}

type MovieFilters struct {
	Genre string
	Term  string
}

type MovieRepository interface {
	Create(ctx context.Context, movie *Movie) error
	GetAll(ctx context.Context, filters MovieFilters) ([]*Movie, error)
	GetById(ctx context.Context, id int64) (*Movie, error)
	Update(ctx context.Context, movie *Movie) error
	Delete(ctx context.Context, id int64) error
}
