// Package tracelog provides the slog.Handler the engine logs through.
// Grounded on rcornwell-S370/util/logger/logger.go: a mutex-guarded writer
// wrapping slog's text formatting, so concurrent callers (a device's Step
// and the scheduler's Warnf) never interleave a line.
package tracelog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Handler formats records as "timestamp level message attrs..." and writes
// them to out under a mutex.
type Handler struct {
	out   io.Writer
	level slog.Leveler
	mu    *sync.Mutex
	attrs []slog.Attr
}

// New builds a Handler writing to out at the given minimum level. A nil
// level defaults to slog.LevelInfo.
func New(out io.Writer, level slog.Leveler) *Handler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &Handler{out: out, level: level, mu: &sync.Mutex{}}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &Handler{out: h.out, level: h.level, mu: h.mu, attrs: next}
}

func (h *Handler) WithGroup(name string) slog.Handler {
	return h
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	parts := []string{
		r.Time.Format(time.RFC3339),
		r.Level.String() + ":",
		r.Message,
	}
	for _, a := range h.attrs {
		parts = append(parts, fmt.Sprintf("%s=%v", a.Key, a.Value))
	}
	r.Attrs(func(a slog.Attr) bool {
		parts = append(parts, fmt.Sprintf("%s=%v", a.Key, a.Value))
		return true
	})

	line := strings.Join(parts, " ") + "\n"

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, line)
	return err
}
