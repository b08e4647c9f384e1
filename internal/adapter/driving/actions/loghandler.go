package actions

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/sethvargo/go-githubactions"
)

// LogHandler is a slog.Handler that renders records as logfmt lines and maps
// levels onto workflow commands: debug records become ::debug:: (hidden unless
// step debug logging is on), warnings ::warning::, errors ::error::. Info
// records are plain log lines.
type LogHandler struct {
	mu     *sync.Mutex
	action *githubactions.Action
	buf    *bytes.Buffer
	inner  slog.Handler
}

// NewLogHandler returns a handler issuing records through action at the given
// minimum level.
func NewLogHandler(action *githubactions.Action, level slog.Leveler) *LogHandler {
	buf := &bytes.Buffer{}
	return &LogHandler{
		mu:     &sync.Mutex{},
		action: action,
		buf:    buf,
		inner: slog.NewTextHandler(buf, &slog.HandlerOptions{
			Level: level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				// Time and level are carried by the runner and the command prefix.
				if len(groups) == 0 && (a.Key == slog.TimeKey || a.Key == slog.LevelKey) {
					return slog.Attr{}
				}
				return a
			},
		}),
	}
}

// Enabled implements slog.Handler.
func (h *LogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *LogHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.buf.Reset()
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	line := strings.TrimRight(h.buf.String(), "\n")

	switch {
	case r.Level >= slog.LevelError:
		h.action.Errorf("%s", line)
	case r.Level >= slog.LevelWarn:
		h.action.Warningf("%s", line)
	case r.Level < slog.LevelInfo:
		h.action.Debugf("%s", line)
	default:
		h.action.Infof("%s", line)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LogHandler{mu: h.mu, action: h.action, buf: h.buf, inner: h.inner.WithAttrs(attrs)}
}

// WithGroup implements slog.Handler.
func (h *LogHandler) WithGroup(name string) slog.Handler {
	return &LogHandler{mu: h.mu, action: h.action, buf: h.buf, inner: h.inner.WithGroup(name)}
}
