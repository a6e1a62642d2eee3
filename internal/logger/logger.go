// Package logger builds the slog logger used by stickctl and the demos.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Config selects the level, format and destination of a logger built by New.
type Config struct {
	Level  string
	Format string // "text", "json", "console"
	Output io.Writer
}

// New builds a logger from cfg. An empty Output writes to stderr so it does
// not mix with command output on stdout.
func New(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	level := parseLevel(cfg.Level)
	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(cfg.Output, &slog.HandlerOptions{Level: level})
	case "text":
		handler = slog.NewTextHandler(cfg.Output, &slog.HandlerOptions{Level: level})
	default:
		handler = &consoleHandler{w: cfg.Output, level: level, tag: styledTags(lipgloss.NewRenderer(cfg.Output))}
	}
	return slog.New(handler)
}

// ValidFormat reports whether f is a format New understands. Unknown formats
// fall back to console.
func ValidFormat(f string) bool {
	switch f {
	case "", "console", "text", "json":
		return true
	}
	return false
}

func parseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// consoleHandler outputs human-friendly log lines:
//
//	12:00:00 DEBUG stick drag start  component=thumbstick stick=left
type consoleHandler struct {
	w     io.Writer
	level slog.Level
	attrs []slog.Attr // keys already qualified by the group open when added
	group string
	tag   func(slog.Level) string // nil uses levelTag
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *consoleHandler) Handle(_ context.Context, r slog.Record) error {
	ts := r.Time.Format(time.TimeOnly)
	lvl := levelTag(r.Level)
	if h.tag != nil {
		lvl = h.tag(r.Level)
	}

	line := fmt.Sprintf("%s %s %s", ts, lvl, r.Message)
	for _, a := range h.attrs {
		line += formatAttr("", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		line += formatAttr(h.group, a)
		return true
	})

	line += "\n"
	_, err := fmt.Fprint(h.w, line)
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := h.clone()
	for _, a := range attrs {
		if h.group != "" {
			a.Key = h.group + "." + a.Key
		}
		c.attrs = append(c.attrs, a)
	}
	return c
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	c := h.clone()
	if h.group != "" {
		name = h.group + "." + name
	}
	c.group = name
	return c
}

func (h *consoleHandler) clone() *consoleHandler {
	return &consoleHandler{
		w:     h.w,
		level: h.level,
		attrs: append([]slog.Attr{}, h.attrs...),
		group: h.group,
		tag:   h.tag,
	}
}

func levelTag(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARN "
	case l >= slog.LevelInfo:
		return "INFO "
	default:
		return "DEBUG"
	}
}

// styledTags colors level tags for the renderer's terminal. Writers that are
// not terminals get the plain tags.
func styledTags(r *lipgloss.Renderer) func(slog.Level) string {
	errStyle := r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle := r.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle := r.NewStyle().Foreground(lipgloss.Color("12"))
	debugStyle := r.NewStyle().Faint(true)
	return func(l slog.Level) string {
		tag := levelTag(l)
		switch {
		case l >= slog.LevelError:
			return errStyle.Render(tag)
		case l >= slog.LevelWarn:
			return warnStyle.Render(tag)
		case l >= slog.LevelInfo:
			return infoStyle.Render(tag)
		default:
			return debugStyle.Render(tag)
		}
	}
}

func formatAttr(group string, a slog.Attr) string {
	key := a.Key
	if group != "" {
		key = group + "." + key
	}
	return fmt.Sprintf("  %s=%v", key, a.Value)
}
