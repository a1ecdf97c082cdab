package log

import (
	"os"

	"log/slog"
)

type Config struct {
	Level     int  `mapstructure:"level"`
	AddSource bool `mapstructure:"add_source"`
}

// New builds a JSON slog logger from config and installs it as the default.
func New(cfg Config) *slog.Logger {
	l := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.Level(cfg.Level),
		AddSource: cfg.AddSource,
	}))
	slog.SetDefault(l)
	return l
}
