package logger

import (
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

const (
	outputStdout = "stdout"
	outputStderr = "stderr"
)

// LoggerConfig is read from the LOG_* variables before viper is set up, so the
// configuration loader itself can log.
type LoggerConfig struct {
	Level       string
	Format      string
	OutputFile  string
	ServiceName string
}

// DefaultConfig reads LOG_LEVEL, LOG_FORMAT, LOG_OUTPUT_FILE and SERVICE_NAME.
func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:       strings.ToLower(envOr("LOG_LEVEL", "info")),
		Format:      strings.ToLower(envOr("LOG_FORMAT", "json")),
		OutputFile:  envOr("LOG_OUTPUT_FILE", outputStdout),
		ServiceName: envOr("SERVICE_NAME", "rental-service"),
	}
}

func envOr(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// IsConsole reports whether human readable output was requested.
func (c *LoggerConfig) IsConsole() bool {
	return c.Format == "console" || c.Format == "text"
}

// WritesToFile reports whether output goes to a file next to stdout.
func (c *LoggerConfig) WritesToFile() bool {
	return c.OutputFile != outputStdout && c.OutputFile != outputStderr
}

// ZapLevel parses Level, accepting "warning" and falling back to info.
func (c *LoggerConfig) ZapLevel() zapcore.Level {
	raw := c.Level
	if raw == "warning" {
		raw = "warn"
	}
	level, err := zapcore.ParseLevel(raw)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}
