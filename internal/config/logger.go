package config

import (
	"io"

	"github.com/charmbracelet/log"
)

// LogLevelEnv names the variable holding the log level.
const LogLevelEnv = "DODGE_LOG_LEVEL"

// NewLogger builds the process logger writing to w. The level comes from
// DODGE_LOG_LEVEL and defaults to info; unknown names also fall back to info.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(GetEnv(LogLevelEnv, "info"))
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
	})
}
