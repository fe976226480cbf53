// Package logging builds the zap loggers used by the commands.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Output formats.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Config selects the level and encoding.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json or console
}

// DefaultConfig logs info and above to the console.
func DefaultConfig() Config {
	return Config{Level: "info", Format: FormatConsole}
}

// ConfigFromEnv overlays GME_LOG_LEVEL and GME_LOG_FORMAT on the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("GME_LOG_LEVEL"); v != "" {
		cfg.Level = v
	}
	if v := os.Getenv("GME_LOG_FORMAT"); v != "" {
		cfg.Format = v
	}
	return cfg
}

// New returns a logger with RFC3339 times and caller information.
//
// JSON output splits by level: errors go to stderr, everything else to
// stdout. Console output goes to stderr only so it never mixes with command
// output.
func New(cfg Config) (*zap.Logger, error) {
	return build(cfg, zapcore.Lock(os.Stdout), zapcore.Lock(os.Stderr))
}

func build(cfg Config, stdout, stderr zapcore.WriteSyncer) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.RFC3339TimeEncoder

	switch cfg.Format {
	case FormatJSON:
		encoder := zapcore.NewJSONEncoder(encCfg)
		isErrorLevel := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl >= zapcore.ErrorLevel && lvl >= level
		})
		isInfoLevel := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
			return lvl < zapcore.ErrorLevel && lvl >= level
		})
		core := zapcore.NewTee(
			zapcore.NewCore(encoder, stderr, isErrorLevel),
			zapcore.NewCore(encoder, stdout, isInfoLevel),
		)
		return zap.New(core, zap.AddCaller()), nil

	case FormatConsole, "":
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder := zapcore.NewConsoleEncoder(encCfg)
		core := zapcore.NewCore(encoder, stderr, level)
		return zap.New(core), nil

	default:
		return nil, fmt.Errorf("invalid log format %q (want json or console)", cfg.Format)
	}
}
