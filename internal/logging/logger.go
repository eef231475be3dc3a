package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

const (
	// LevelEnv overrides the default log level.
	LevelEnv = "CARGO_WS_LOG_LEVEL"

	// JSONEnv switches the logger to JSON output when set to "1".
	JSONEnv = "CARGO_WS_JSON_LOG"
)

// New creates an hclog logger with cargo-ws defaults. An empty level falls
// back to Level().
func New(name, level string, output io.Writer) hclog.Logger {
	if output == nil {
		output = os.Stderr
	}
	if strings.TrimSpace(level) == "" {
		level = Level()
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      hclog.LevelFromString(level),
		JSONFormat: os.Getenv(JSONEnv) == "1",
		Output:     output,
		TimeFormat: "2006-01-02T15:04:05Z",
		TimeFn: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// Level returns the configured log level from the environment.
func Level() string {
	level := os.Getenv(LevelEnv)
	if level == "" {
		level = "warn"
	}
	return level
}

// Discard returns a logger that drops everything. Components fall back to it
// when no logger is configured.
func Discard() hclog.Logger {
	return hclog.NewNullLogger()
}
