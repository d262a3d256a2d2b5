package main

import (
	"log/slog"
	"os"

	"github.com/cineflex/cineflex-api/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		logger.Error(err.Error())
		os.Exit(1)
	}
}
