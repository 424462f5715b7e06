package logging

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/go-olink/olink"
)

const (
	EnvLogLevel     = "OLINK_LOG_LEVEL"
	EnvLogTimestamp = "OLINK_LOG_TIMESTAMP"
	EnvLogNoColor   = "OLINK_LOG_NOCOLOR"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

var configureOnce sync.Once
var rootLogger zerolog.Logger

// ConfigureRuntime installs the console-writer root logger a deployed
// node should log through, applying any OLINK_LOG_* overrides.
func ConfigureRuntime() zerolog.Logger {
	return Configure(ProfileRuntime)
}

// ConfigureTests installs a debug-level, timestamp-free root logger
// suited to test output.
func ConfigureTests() zerolog.Logger {
	return Configure(ProfileTest)
}

// Configure builds the root zerolog.Logger for profile. It is safe to
// call repeatedly; only the first call's profile takes effect.
func Configure(profile Profile) zerolog.Logger {
	configureOnce.Do(func() {
		rootLogger = build(profile)
	})
	return rootLogger
}

func build(profile Profile) zerolog.Logger {
	level, timestamp, noColor := defaults(profile)
	applyEnvOverrides(&level, &timestamp, &noColor)

	output := zerolog.ConsoleWriter{Out: os.Stdout, NoColor: noColor}
	if timestamp {
		output.TimeFormat = time.RFC3339
	}
	logger := zerolog.New(output).Level(level).With().Str("component", "olink").Logger()
	if timestamp {
		logger = logger.With().Timestamp().Logger()
	}
	return logger
}

func defaults(profile Profile) (level zerolog.Level, timestamp, noColor bool) {
	if profile == ProfileTest {
		return zerolog.DebugLevel, false, true
	}
	return zerolog.InfoLevel, true, false
}

func applyEnvOverrides(level *zerolog.Level, timestamp, noColor *bool) {
	if lvl, ok := parseLevel(os.Getenv(EnvLogLevel)); ok {
		*level = lvl
	}
	if v, ok := parseBool(os.Getenv(EnvLogTimestamp)); ok {
		*timestamp = v
	}
	if v, ok := parseBool(os.Getenv(EnvLogNoColor)); ok {
		*noColor = v
	}
}

func parseLevel(raw string) (zerolog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return zerolog.InfoLevel, false
	case "debug":
		return zerolog.DebugLevel, true
	case "info":
		return zerolog.InfoLevel, true
	case "warn", "warning":
		return zerolog.WarnLevel, true
	case "error":
		return zerolog.ErrorLevel, true
	case "disabled", "disable", "off", "none":
		return zerolog.Disabled, true
	default:
		return zerolog.InfoLevel, false
	}
}

func parseBool(raw string) (bool, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// NodeLogger adapts a zerolog.Logger into the olink.LogFunc BaseNode
// expects, mapping olink's four levels onto zerolog's.
func NodeLogger(zl zerolog.Logger) olink.LogFunc {
	return func(level olink.Level, message string) {
		var event *zerolog.Event
		switch level {
		case olink.LevelDebug:
			event = zl.Debug()
		case olink.LevelInfo:
			event = zl.Info()
		case olink.LevelWarning:
			event = zl.Warn()
		case olink.LevelError:
			event = zl.Error()
		default:
			event = zl.Info()
		}
		event.Msg(message)
	}
}
