package integration_test

import (
	"io"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cineflex/cineflex-api/internal/app"
	"github.com/cineflex/cineflex-api/internal/mailer"
)

type TestApp struct {
	App    *app.Application
	DB     *pgxpool.Pool
	Mailer *mailer.MockMailer
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mockMailer := mailer.NewMockMailer()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	application := app.New(cfg, logger, db, redisClient, mockMailer)

	return &TestApp{
		App:    application,
		DB:     db,
		Mailer: mockMailer,
	}, nil
}
