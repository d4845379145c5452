package logging

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	EnvLogLevel     = "SUMPDUMP_LOG_LEVEL"
	EnvLogTimestamp = "SUMPDUMP_LOG_TIMESTAMP"
	EnvLogNoColor   = "SUMPDUMP_LOG_NOCOLOR"
)

type Profile int

const (
	ProfileRuntime Profile = iota
	ProfileTest
)

var configureOnce sync.Once

func ConfigureRuntime() {
	Configure(ProfileRuntime)
}

func ConfigureTests() {
	Configure(ProfileTest)
}

// Configure sets up the global zerolog logger on stderr. Diagnostics
// share the error stream so sample dumps on stdout stay clean.
func Configure(profile Profile) {
	configureOnce.Do(func() {
		level, timestamp, noColor := defaults(profile)
		applyEnvOverrides(&level, &timestamp, &noColor)

		out := zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
			NoColor:    noColor,
		}
		ctx := zerolog.New(out).With()
		if timestamp {
			ctx = ctx.Timestamp()
		}
		log.Logger = ctx.Logger().Level(level)
	})
}

func defaults(profile Profile) (zerolog.Level, bool, bool) {
	noColor := !isatty.IsTerminal(os.Stderr.Fd())
	switch profile {
	case ProfileTest:
		return zerolog.DebugLevel, false, true
	default:
		return zerolog.InfoLevel, true, noColor
	}
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
	case "trace":
		return zerolog.TraceLevel, true
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
