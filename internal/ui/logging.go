package ui

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger keeps the Debugf/Infof/Errorf surface over a zap core. Output goes
// to stderr so stdout carries only command results.
type Logger struct {
	Debug bool
	zap   *zap.SugaredLogger
}

// NewLogger builds a console logger, or a JSON one when format is "json".
func NewLogger(debug bool, format string) *Logger {
	return NewLoggerTo(os.Stderr, debug, format)
}

func NewLoggerTo(w io.Writer, debug bool, format string) *Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}

	var encoder zapcore.Encoder
	if format == "json" {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zapcore.EncoderConfig{
			LevelKey:       "level",
			MessageKey:     "msg",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		}
		if debug {
			cfg.TimeKey = "ts"
			cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		}
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zap.NewAtomicLevelAt(level))
	return &Logger{Debug: debug, zap: zap.New(core).Sugar()}
}

func (l *Logger) Debugf(format string, args ...any) {
	l.zap.Debugf(strings.TrimRight(format, "\n"), args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.zap.Infof(strings.TrimRight(format, "\n"), args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.zap.Errorf(strings.TrimRight(format, "\n"), args...)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() {
	_ = l.zap.Sync()
}
