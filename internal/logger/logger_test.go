package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw      string
		expected slog.Level
		wantErr  bool
	}{
		{raw: "debug", expected: slog.LevelDebug},
		{raw: "", expected: slog.LevelInfo},
		{raw: " INFO ", expected: slog.LevelInfo},
		{raw: "warning", expected: slog.LevelWarn},
		{raw: "error", expected: slog.LevelError},
		{raw: "verbose", expected: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		level, err := ParseLevel(tt.raw)
		if tt.wantErr {
			require.Error(t, err)
		} else {
			require.NoError(t, err)
		}
		assert.Equal(t, tt.expected, level, tt.raw)
	}
}

func TestNewPretty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(&buf, "pretty", slog.LevelInfo)

	log.Debug("hidden")
	log.With("component", "tail").WithGroup("read").Info("window computed", "bytes", 4096)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "window computed")
	assert.Contains(t, out, "component")
	assert.Contains(t, out, "read.bytes")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestNewJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := New(&buf, "json", slog.LevelWarn)

	log.Info("skipped")
	log.Warn("read failed", "file", "app.log")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "read failed", record["msg"])
	assert.Equal(t, "app.log", record["file"])
}

func TestPrettyHandlerFormatting(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	log.With("request_id", "abc").WithGroup("tail").Debug("read window",
		"file", "app.log",
		"cause", "permission denied",
		slog.Group("window", "bytes", 1024),
	)

	out := buf.String()
	assert.NotContains(t, out, "\033[", "non-terminal writers get plain text")
	assert.Contains(t, out, "DEBUG read window")
	assert.Contains(t, out, " request_id=abc")
	assert.Contains(t, out, " tail.file=app.log")
	assert.Contains(t, out, ` tail.cause="permission denied"`)
	assert.Contains(t, out, " tail.window.bytes=1024")
}
