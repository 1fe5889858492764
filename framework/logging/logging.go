// Package logging builds the application's *slog.Logger from config.
//
// The json format writes through phuslu/log's slog handler; text uses the
// standard library's slog.TextHandler.
//
//	logger, err := logging.New(cfg.Log, os.Stderr)
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	phuslog "github.com/phuslu/log"

	"github.com/km-arc/go-utilities/framework/config"
)

// ErrUnknownFormat is returned for a format other than json or text.
var ErrUnknownFormat = errors.New("logging: unknown format")

// New returns a logger writing to w (os.Stderr when nil) at cfg.Level.
func New(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(cfg.Format) {
	case "", "json":
		return slog.New(phuslog.SlogNewJSONHandler(w, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, cfg.Format)
}

// ParseLevel maps debug, info, warn and error (any case) to a slog.Level.
// An empty string is info.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("logging: level %q: %w", s, err)
	}
	return level, nil
}

// Discard returns a logger that drops everything, for tests.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
