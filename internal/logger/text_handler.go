package logger

import (
	"io"
	"log/slog"
	"time"
)

// newTextHandler returns the console handler. Timestamps are left to the
// process supervisor (journald, docker), so the time attribute is dropped.
// Time valued fields are rendered in tz.
func newTextHandler(w io.Writer, level slog.Level, tz *time.Location) slog.Handler {
	return slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return replaceCommonAttr(a, tz)
		},
	})
}

// newJSONHandler returns the file handler with RFC3339 timestamps.
func newJSONHandler(w io.Writer, level slog.Level) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			return replaceCommonAttr(a, nil)
		},
	})
}

func replaceCommonAttr(a slog.Attr, tz *time.Location) slog.Attr {
	switch {
	case a.Key == slog.LevelKey:
		if lvl, ok := a.Value.Any().(slog.Level); ok && lvl <= traceLevelValue {
			return slog.String(slog.LevelKey, "TRACE")
		}
	case a.Value.Kind() == slog.KindTime && tz != nil:
		return slog.String(a.Key, a.Value.Time().In(tz).Format(time.RFC3339))
	}
	return a
}
