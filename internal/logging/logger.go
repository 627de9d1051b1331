// Package logging configures the process-wide slog logger and carries
// structured fields on the context.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config selects the handler and destination.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // text or json
	// File, when set, receives the log instead of Output. Interactive
	// commands point this at a file so logs never land on the terminal.
	File   string
	Output io.Writer
}

// ConfigFromEnv reads IDEAFORGE_LOG_LEVEL, IDEAFORGE_LOG_FORMAT and
// IDEAFORGE_LOG_FILE.
func ConfigFromEnv() Config {
	return Config{
		Level:  os.Getenv("IDEAFORGE_LOG_LEVEL"),
		Format: os.Getenv("IDEAFORGE_LOG_FORMAT"),
		File:   os.Getenv("IDEAFORGE_LOG_FILE"),
	}
}

// Setup installs the default logger. The returned closer releases the log
// file, if one was opened.
func Setup(cfg Config) (io.Closer, error) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("logging: ensure log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("logging: open log file: %w", err)
		}
		out, closer = f, f
	}

	slog.SetDefault(slog.New(NewHandler(out, cfg)))
	return closer, nil
}

// NewHandler builds the context-enriching handler for cfg.
func NewHandler(w io.Writer, cfg Config) slog.Handler {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var h slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return &ContextHandler{Handler: h}
}

// Discard silences logging entirely.
func Discard() {
	slog.SetDefault(slog.New(slog.DiscardHandler))
}

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}

// ContextHandler adds the Fields stored on the context to every record.
type ContextHandler struct {
	slog.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	f := FieldsFrom(ctx)
	if f.SessionID != "" {
		r.AddAttrs(slog.String("session_id", f.SessionID))
	}
	if f.Module != "" {
		r.AddAttrs(slog.String("module", f.Module))
	}
	if f.Component != "" {
		r.AddAttrs(slog.String("component", f.Component))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithGroup(name)}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
