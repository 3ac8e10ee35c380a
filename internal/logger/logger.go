// Package logger builds the logrus loggers used across nativestage.
package logger

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// Config selects the output, level and format of the logger.
type Config struct {
	Level  string // logrus level name; empty means "info"
	Format string // "json" or "text"
	Debug  bool   // forces debug level
	Out    io.Writer
}

// New returns a logger configured with cfg. The logrus standard logger is left untouched.
func New(cfg Config) *log.Logger {
	l := log.New()
	configure(l, cfg)
	return l
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *log.Logger {
	l := log.New()
	l.SetOutput(io.Discard)
	return l
}

func configure(l *log.Logger, cfg Config) {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}
	l.SetOutput(out)

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}
	if cfg.Debug {
		level = log.DebugLevel
	}
	l.SetLevel(level)

	if cfg.Format == "json" {
		l.SetFormatter(&log.JSONFormatter{})
	} else {
		l.SetFormatter(&log.TextFormatter{FullTimestamp: true, DisableColors: true})
	}
}
