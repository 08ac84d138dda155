package logger

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(level slog.Level) (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(NewHandler(Options{App: "Test", Level: level, Output: &buf})), &buf
}

func TestHandler_Format(t *testing.T) {
	log, buf := newTestLogger(slog.LevelDebug)

	log.Info("Request served", slog.String("type", "http"), slog.Int("status", 200))

	line := buf.String()
	assert.Contains(t, line, "[Test]")
	assert.Contains(t, line, "INFO")
	assert.Contains(t, line, "[HTTP] Request served")
	assert.Contains(t, line, "status=200")
	assert.NotContains(t, line, "type=")
	assert.True(t, strings.HasSuffix(line, colorReset+"\n"))
}

func TestHandler_TypeTags(t *testing.T) {
	tests := map[string]LogType{
		"http":    TypeHTTP,
		"db":      TypeDB,
		"ws":      TypeWS,
		"event":   TypeEvent,
		"error":   TypeError,
		"":        TypeSystem,
		"storage": TypeSystem,
	}
	for in, want := range tests {
		assert.Equal(t, want, typeFor(in), in)
	}
}

func TestHandler_LevelFilter(t *testing.T) {
	log, buf := newTestLogger(slog.LevelWarn)

	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown")
	assert.Contains(t, buf.String(), "WARN")
}

func TestHandler_ErrorDetails(t *testing.T) {
	log, buf := newTestLogger(slog.LevelDebug)

	log.Error("Query failed", slog.Any("error", errors.New("connection refused")))
	line := buf.String()
	assert.Contains(t, line, "ERROR")
	assert.Contains(t, line, "logger_test.go:")
	assert.Contains(t, line, ": connection refused")

	buf.Reset()
	log.Warn("Retrying", slog.Any("error", errors.New("timeout")))
	assert.Contains(t, buf.String(), "error=timeout")
}

func TestHandler_WithAttrsAndGroup(t *testing.T) {
	log, buf := newTestLogger(slog.LevelDebug)

	log.With(slog.String("type", "ws")).WithGroup("conn").Info("Client connected", slog.String("id", "abc"))
	line := buf.String()
	assert.Contains(t, line, "[WS] Client connected")
	assert.Contains(t, line, "conn.id=abc")
}
