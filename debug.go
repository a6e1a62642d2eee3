package thumbstick

import "log/slog"

var logger = slog.New(slog.DiscardHandler)

// SetLogger sets the logger used for engine lifecycle messages (drag start,
// drag end, rejected grabs). Passing nil restores the silent default.
// Engines log at Debug level only.
func SetLogger(l *slog.Logger) {
	if l == nil {
		logger = slog.New(slog.DiscardHandler)
		return
	}
	logger = l.With("component", "thumbstick")
}
