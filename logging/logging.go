// Package logging configures zenframe's structured logging. The engine is
// silent by default: loaders, writers and the extension registry log
// through L(), which discards records until Setup is called by the host
// application.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	slogseq "github.com/sokkalf/slog-seq"
)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// L returns the logger zenframe components write to
func L() *slog.Logger {
	return current.Load()
}

// Option configures Setup
type Option func(*config)

type config struct {
	level  slog.Level
	output io.Writer
	seqURL string
}

// WithLevel sets the minimum level for emitted records
func WithLevel(level slog.Level) Option {
	return func(c *config) { c.level = level }
}

// WithOutput directs console records to w instead of stdout
func WithOutput(w io.Writer) Option {
	return func(c *config) { c.output = w }
}

// WithSeq additionally ships records to a Seq server at the given URL
func WithSeq(url string) Option {
	return func(c *config) { c.seqURL = url }
}

// multiHandler forwards log records to multiple handlers
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

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if err := h.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}

// Setup initializes zenframe's logger and returns it along with a cleanup
// function which flushes any buffered records
func Setup(opts ...Option) (*slog.Logger, func()) {
	conf := &config{level: slog.LevelInfo, output: os.Stdout}
	for _, opt := range opts {
		opt(conf)
	}
	handlers := []slog.Handler{
		slog.NewTextHandler(conf.output, &slog.HandlerOptions{Level: conf.level}),
	}
	cleanup := func() {}
	if conf.seqURL != "" {
		_, seqHandler := slogseq.NewLogger(
			conf.seqURL,
			slogseq.WithBatchSize(50),
			slogseq.WithFlushInterval(500*time.Millisecond),
			slogseq.WithHandlerOptions(&slog.HandlerOptions{Level: conf.level}),
		)
		if seqHandler != nil {
			handlers = append(handlers, seqHandler)
			cleanup = func() { seqHandler.Close() }
		}
	}
	logger := slog.New(&multiHandler{handlers: handlers})
	current.Store(logger)
	return logger, cleanup
}
