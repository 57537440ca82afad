package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/signadot/wbproto/debug"
)

var theLog = newLog(os.Stderr, slog.LevelInfo)

// newLog returns a text logger without timestamps.  Debug level is forced
// when pass debugging is on.
func newLog(w io.Writer, level slog.Level) *slog.Logger {
	if debug.Pass() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}
