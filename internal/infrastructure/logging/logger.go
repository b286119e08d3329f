package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the zap logger handed to every component.
type Logger struct {
	*zap.Logger
}

// New builds a logger writing to w: JSON lines in production, colored
// console output in development.
func New(level string, development bool, w zapcore.WriteSyncer) (*Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var enc zapcore.Encoder
	opts := []zap.Option{zap.AddCaller(), zap.ErrorOutput(zapcore.Lock(os.Stderr))}
	if development {
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
		enc = zapcore.NewConsoleEncoder(ec)
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.WarnLevel))
	} else {
		ec := zap.NewProductionEncoderConfig()
		ec.TimeKey = "time"
		ec.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(ec)
		opts = append(opts, zap.AddStacktrace(zapcore.DPanicLevel))
	}

	core := zapcore.NewCore(enc, w, zap.NewAtomicLevelAt(lvl))
	return &Logger{Logger: zap.New(core, opts...)}, nil
}

// NewFromLevel logs to stderr. An empty or unknown level means info.
func NewFromLevel(level string, development bool) *Logger {
	if level == "" {
		level = "info"
	}
	l, err := New(level, development, zapcore.Lock(os.Stderr))
	if err != nil {
		l, _ = New("info", development, zapcore.Lock(os.Stderr))
	}
	return l
}

func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Named scopes the logger to a component, e.g. "hover" or "relay.http".
func (l *Logger) Named(component string) *Logger {
	return &Logger{Logger: l.Logger.Named(component)}
}
