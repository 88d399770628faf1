// Package logger builds the JSON logger shared by the HTTP layer, migrations and tracing setup.
// Every entry is a single JSON object per line with ts, level and msg keys.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing to stdout at the given level ("debug", "info", "warn", "error").
// Unknown levels fall back to info.
func New(level string, loc *time.Location) *zap.Logger {
	return NewWithWriter(os.Stdout, level, loc)
}

// NewWithWriter is New with a custom destination, used by tests and the access log middleware.
func NewWithWriter(w io.Writer, level string, loc *time.Location) *zap.Logger {
	if loc == nil {
		loc = time.UTC
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig(loc)),
		zapcore.AddSync(w),
		parseLevel(level),
	)
	return zap.New(core)
}

func encoderConfig(loc *time.Location) zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		MessageKey:     "msg",
		NameKey:        "logger",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(t.In(loc).Format(time.RFC3339Nano))
		},
	}
}

func parseLevel(level string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(strings.ToLower(level)))
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}
