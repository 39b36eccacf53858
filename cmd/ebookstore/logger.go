package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/VictoriaairotciV/ebookstore/internal/config"
)

// newLogger opens the side log file next to the database. Log output
// stays out of the interactive terminal.
func newLogger(settings config.Settings) (zerolog.Logger, func() error, error) {
	level, err := zerolog.ParseLevel(settings.LogLevel)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("parsing log level %q: %w", settings.LogLevel, err)
	}

	f, err := os.OpenFile(settings.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("opening log file: %w", err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	logger := zerolog.New(f).Level(level).With().Timestamp().Logger()

	return logger, f.Close, nil
}
