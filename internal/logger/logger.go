package logger

import (
	"io"
	"log/slog"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logMaxSize    = 10 // MB
	logMaxBackups = 3
	logMaxAge     = 90 // days
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// New returns a text logger writing to a size-rotated file at logFile
// The console is left to the interactive menu. The returned closer releases the file.
func New(logLevel, logFile string) (*slog.Logger, io.Closer) {
	out := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackups,
		MaxAge:     logMaxAge,
	}
	return NewWithWriter(logLevel, out), out
}

// NewWithWriter returns a text logger writing to w
func NewWithWriter(logLevel string, w io.Writer) *slog.Logger {
	return slog.New(
		slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: logLevels[logLevel],
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey {
					// Drop sub-second precision to keep lines short
					a.Value = slog.StringValue(a.Value.Time().Format(time.RFC3339))
				}
				return a
			},
		}),
	)
}
