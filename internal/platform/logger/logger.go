package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger so every package depends on one logging type.
type Logger struct {
	*zap.Logger
	config *LoggerConfig
}

var (
	globalLogger *Logger
	once         sync.Once
)

// NewLogger builds the process-wide logger from the environment. Only the
// first call configures it; later calls return the same instance.
func NewLogger() *Logger {
	once.Do(func() {
		cfg := DefaultConfig()
		globalLogger = build(cfg)
		globalLogger.Debug("Logger initialized",
			zap.Stringer("level", cfg.ZapLevel()),
			zap.String("format", cfg.Format),
			zap.String("output", cfg.OutputFile))
	})
	return globalLogger
}

// NewNop returns a logger that discards everything.
func NewNop() *Logger {
	return &Logger{Logger: zap.NewNop(), config: &LoggerConfig{Level: "info", Format: "json", OutputFile: outputStdout}}
}

func build(cfg *LoggerConfig) *Logger {
	zapConfig := zap.NewProductionConfig()
	zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapConfig.Level = zap.NewAtomicLevelAt(cfg.ZapLevel())
	zapConfig.Encoding = "json"
	if cfg.IsConsole() {
		zapConfig.Encoding = "console"
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	if cfg.ZapLevel() == zapcore.DebugLevel {
		zapConfig.Development = true
		zapConfig.Sampling = nil
	}

	zapConfig.OutputPaths = []string{outputStdout}
	zapConfig.ErrorOutputPaths = []string{outputStderr}
	if cfg.WritesToFile() {
		if err := os.MkdirAll(filepath.Dir(cfg.OutputFile), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "logger: cannot create directory for %s, logging to stdout only: %v\n", cfg.OutputFile, err)
		} else {
			zapConfig.OutputPaths = append(zapConfig.OutputPaths, cfg.OutputFile)
			zapConfig.ErrorOutputPaths = append(zapConfig.ErrorOutputPaths, cfg.OutputFile)
		}
	}
	zapConfig.InitialFields = map[string]interface{}{"service": cfg.ServiceName}

	zl, err := zapConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: build failed, using production defaults: %v\n", err)
		zl, _ = zap.NewProduction()
	}
	return &Logger{Logger: zl, config: cfg}
}

// Named adds a path segment to the logger's name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{Logger: l.Logger.Named(name), config: l.config}
}

// With adds structured context to the logger.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{Logger: l.Logger.With(fields...), config: l.config}
}
