package telemetry

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// LogOptions configures NewLogger.
type LogOptions struct {
	Debug  bool
	Format string    // "json" (default) or "text"
	File   string    // appended to in addition to Output when set
	Output io.Writer // defaults to os.Stderr; command output owns stdout
	Quiet  bool      // drop Output and log only to File
}

// InitLogger installs the process-wide logger and returns the log file, if
// one was opened, for the caller to close on exit.
func InitLogger(opts LogOptions) io.Closer {
	logger, closer := NewLogger(opts)
	slog.SetDefault(logger)
	return closer
}

// NewLogger builds a logger from opts. The returned closer is never nil.
func NewLogger(opts LogOptions) (*slog.Logger, io.Closer) {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	hopts := &slog.HandlerOptions{Level: level}
	newHandler := func(w io.Writer) slog.Handler {
		if opts.Format == "text" {
			return slog.NewTextHandler(w, hopts)
		}
		return slog.NewJSONHandler(w, hopts)
	}

	var handlers []slog.Handler
	if !opts.Quiet {
		out := opts.Output
		if out == nil {
			out = os.Stderr
		}
		handlers = append(handlers, newHandler(out))
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err == nil {
			// file entries are always JSON so they stay machine readable
			handlers = append(handlers, slog.NewJSONHandler(f, hopts))
			closer = f
		} else {
			slog.Error("failed to open log file", "path", opts.File, "error", err)
		}
	}

	var handler slog.Handler
	switch len(handlers) {
	case 0:
		handler = slog.NewJSONHandler(io.Discard, hopts)
	case 1:
		handler = handlers[0]
	default:
		handler = &multiHandler{handlers: handlers}
	}
	return slog.New(handler), closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// multiHandler fans every record out to all handlers.
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, record slog.Record) error {
	for _, h := range m.handlers {
		if err := h.Handle(ctx, record.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		next[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: next}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	next := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		next[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: next}
}
