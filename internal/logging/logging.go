// Package logging builds the zap loggers used across curate.
package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvLogLevel overrides the configured level when set.
const EnvLogLevel = "CURATE_LOG_LEVEL"

// Supported encodings.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

const defaultLogLevel = "warn"

// New constructs a logger writing to stderr so command output on stdout
// stays machine-readable. The level comes from CURATE_LOG_LEVEL, then
// level, then the default; unparsable values fall back to the default.
// format is "console" or "json"; anything else means console.
func New(level, format string) (*zap.Logger, error) {
	atom := zap.NewAtomicLevel()
	if err := atom.UnmarshalText([]byte(resolveLevel(level))); err != nil {
		_ = atom.UnmarshalText([]byte(defaultLogLevel))
	}

	encoderCfg := zapcore.EncoderConfig{
		MessageKey:    "message",
		TimeKey:       "timestamp",
		LevelKey:      "severity",
		NameKey:       "logger",
		EncodeTime:    zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		EncodeName:    zapcore.FullNameEncoder,
		StacktraceKey: "stacktrace",
	}

	encoding := FormatConsole
	if strings.EqualFold(strings.TrimSpace(format), FormatJSON) {
		encoding = FormatJSON
	}

	cfg := zap.Config{
		Level:             atom,
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     true,
		DisableStacktrace: true,
	}
	return cfg.Build()
}

func resolveLevel(level string) string {
	if env := strings.TrimSpace(os.Getenv(EnvLogLevel)); env != "" {
		return strings.ToLower(env)
	}
	if level = strings.TrimSpace(level); level != "" {
		return strings.ToLower(level)
	}
	return defaultLogLevel
}
