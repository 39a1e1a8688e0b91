package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	base  *zap.Logger
	sugar *zap.SugaredLogger
	mu    sync.RWMutex
)

// Options controls how SetupLogger builds the process logger.
type Options struct {
	Level       string // debug, info, warn, error
	Format      string // json, console
	Dir         string // daily log files are written here; empty disables file output
	ServiceName string
}

// DefaultOptions mirrors what the server uses when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Level:       "info",
		Format:      "json",
		Dir:         "logs",
		ServiceName: "bluemoon-http-service",
	}
}

// SetupLogger builds the global logger. Output goes to stdout and, when a
// directory is set, to <dir>/<YYYY-MM-DD>.log.
func SetupLogger(opts Options) error {
	var cfg zap.Config
	if opts.Format == "console" {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(parseLevel(opts.Level))
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		logFile := filepath.Join(opts.Dir, time.Now().Format("2006-01-02")+".log")
		cfg.OutputPaths = append(cfg.OutputPaths, logFile)
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	if opts.ServiceName != "" {
		l = l.With(zap.String("service_name", opts.ServiceName))
	}
	if hostname, err := os.Hostname(); err == nil && hostname != "" {
		l = l.With(zap.String("hostname", hostname))
	}

	Replace(l)
	return nil
}

// Replace swaps the global logger; tests use it with zap.NewNop().
func Replace(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	base = l
	sugar = l.Sugar()
}

// L returns the structured logger. Before SetupLogger it is a no-op logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if base == nil {
		return zap.NewNop()
	}
	return base.WithOptions(zap.AddCallerSkip(-1))
}

// Sync flushes buffered entries.
func Sync() {
	mu.RLock()
	defer mu.RUnlock()
	if base != nil {
		_ = base.Sync()
	}
}

// Info logs at info level.
func Info(format string, v ...interface{}) {
	s := current()
	if s != nil {
		s.Infof(format, v...)
	}
}

// Warning logs at warn level.
func Warning(format string, v ...interface{}) {
	s := current()
	if s != nil {
		s.Warnf(format, v...)
	}
}

// Error logs at error level.
func Error(format string, v ...interface{}) {
	s := current()
	if s != nil {
		s.Errorf(format, v...)
	}
}

func current() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

func parseLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
