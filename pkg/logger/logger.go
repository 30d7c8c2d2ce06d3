package logger

import (
	"io"
	"os"

	"github.com/nikolayk812/storefront/internal/core"
	"github.com/rs/zerolog"
)

type Config struct {
	Env   core.Environment
	Level string // trace, debug, info, warn, error
	Out   io.Writer
}

// New builds a structured logger: readable console output in development,
// JSON lines otherwise.
func New(cfg Config) zerolog.Logger {
	var w io.Writer = os.Stderr
	if cfg.Out != nil {
		w = cfg.Out
	}

	if cfg.Env == core.Development {
		w = zerolog.ConsoleWriter{Out: w}
	}

	return zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
}

func parseLevel(s string) zerolog.Level {
	level, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.InfoLevel
	}

	return level
}
