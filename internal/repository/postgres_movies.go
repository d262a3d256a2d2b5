package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cineflex/cineflex-api/internal/domain"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	query := `
		INSERT INTO movies (title, genre, duration_min, rating, synopsis, poster_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	return p.db.QueryRow(
		ctx,
		query,
		movie.Title,
		movie.Genre,
		movie.Duration,
		movie.Rating,
		movie.Synopsis,
		movie.PosterUrl,
	).Scan(&movie.ID, &movie.CreatedAt)
}

func (p *PostgresMovieRepository) GetAll(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, error) {
	query := `
		SELECT id, title, genre, duration_min, rating, synopsis, poster_url, created_at
		FROM movies
		WHERE ($1 = '' OR genre ILIKE $1)
		AND ($2 = '' OR title ILIKE '%' || $2 || '%')
		ORDER BY id
	`

	rows, err := p.db.Query(ctx, query, filters.Genre, filters.Term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]*domain.Movie, 0)

	for rows.Next() {
		var movie domain.Movie

		err = rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Genre,
			&movie.Duration,
			&movie.Rating,
			&movie.Synopsis,
			&movie.PosterUrl,
			&movie.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return movies, nil
}

func (p *PostgresMovieRepository) GetById(ctx context.Context, id int64) (*domain.Movie, error) {
	query := `
		SELECT id, title, genre, duration_min, rating, synopsis, poster_url, created_at
		FROM movies
		WHERE id = $1
	`

	var movie domain.Movie

	err := p.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Genre,
		&movie.Duration,
		&movie.Rating,
		&movie.Synopsis,
		&movie.PosterUrl,
		&movie.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &movie, nil
}

func (p *PostgresMovieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	query := `
		UPDATE movies
		SET title = $1, genre = $2, duration_min = $3, rating = $4, synopsis = $5, poster_url = $6
		WHERE id = $7
	`

	tag, err := p.db.Exec(
		ctx,
		query,
		movie.Title,
		movie.Genre,
		movie.Duration,
		movie.Rating,
		movie.Synopsis,
		movie.PosterUrl,
		movie.ID,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresMovieRepository) Delete(ctx context.Context, id int64) error {
	tag, err := p.db.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}
