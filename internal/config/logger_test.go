package config

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevel(t *testing.T) {
	tests := []struct {
		env  string
		want log.Level
	}{
		{"debug", log.DebugLevel},
		{"warn", log.WarnLevel},
		{"nonsense", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv(LogLevelEnv, tt.env)
			if got := NewLogger(&bytes.Buffer{}, "test").GetLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewLoggerWritesPrefix(t *testing.T) {
	t.Setenv(LogLevelEnv, "info")
	var buf bytes.Buffer
	NewLogger(&buf, "ssh").Info("listening", "port", 2222)

	out := buf.String()
	if !strings.Contains(out, "ssh") || !strings.Contains(out, "listening") || !strings.Contains(out, "port=2222") {
		t.Errorf("unexpected log line %q", out)
	}
}
