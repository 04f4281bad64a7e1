package logger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorPurple = "\033[35m"
	colorWhite  = "\033[37m"
)

// Tag groups log records by subsystem, derived from the "type" attribute.
type Tag string

const (
	TagCommand Tag = "CMD"
	TagGame    Tag = "GAME"
	TagStore   Tag = "STORE"
	TagSystem  Tag = "SYS"
)

// Handler is a human-oriented console handler: colorized level, a subsystem
// tag and flattened attributes on a single line. Gateway chatter from the
// Discord client is dropped.
type Handler struct {
	level slog.Level
	attrs []slog.Attr
}

func NewHandler(level slog.Level) *Handler {
	return &Handler{level: level}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &Handler{level: h.level, attrs: append(append([]slog.Attr{}, h.attrs...), attrs...)}
}

func (h *Handler) WithGroup(string) slog.Handler { return h }

var noisyMessages = []string{
	"gateway event",
	"sending gateway command",
	"sending heartbeat",
	"received gateway message",
	"opening gateway connection",
	"new request",
	"new response",
	"locking rest bucket",
	"unlocking rest bucket",
}

func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	lower := strings.ToLower(r.Message)
	for _, noisy := range noisyMessages {
		if strings.Contains(lower, noisy) {
			return nil
		}
	}

	levelColor := colorGreen
	switch r.Level {
	case slog.LevelDebug:
		levelColor = colorPurple
	case slog.LevelWarn:
		levelColor = colorYellow
	case slog.LevelError:
		levelColor = colorRed
	}

	tag := TagSystem
	var b strings.Builder
	appendAttr := func(a slog.Attr) {
		switch a.Key {
		case "type":
			switch a.Value.String() {
			case "cmd":
				tag = TagCommand
			case "game":
				tag = TagGame
			case "store":
				tag = TagStore
			}
		default:
			fmt.Fprintf(&b, " %s=%v", a.Key, a.Value)
		}
	}
	for _, a := range h.attrs {
		appendAttr(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(a)
		return true
	})

	fmt.Printf("%s[zeni] [%s] [%s%s%s] [%s] %s%s%s\n",
		colorWhite,
		time.Now().Format("15:04:05"),
		levelColor,
		r.Level.String(),
		colorWhite,
		tag,
		r.Message,
		b.String(),
		colorReset,
	)
	return nil
}
