package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		level   slog.Level
		enabled bool
		wantErr bool
	}{
		{input: "", enabled: false},
		{input: "off", enabled: false},
		{input: "debug", level: slog.LevelDebug, enabled: true},
		{input: "TRACE", level: slog.LevelDebug, enabled: true},
		{input: "info", level: slog.LevelInfo, enabled: true},
		{input: " Warn ", level: slog.LevelWarn, enabled: true},
		{input: "error", level: slog.LevelError, enabled: true},
		{input: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, enabled, err := ParseLevel(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.enabled, enabled)
			if tt.enabled {
				assert.Equal(t, tt.level, level)
			}
		})
	}
}

func TestNew_Off(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "off", FormatText)
	require.NoError(t, err)

	logger.Error("should vanish")
	assert.Empty(t, buf.String())
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "warn", FormatText)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "path", "/tmp/a.db")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "msg=shown")
	assert.Contains(t, out, "path=/tmp/a.db")
}

func TestNew_AutoIsJSONWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "info", FormatAuto)
	require.NoError(t, err)

	logger.Info("hello", "n", 3)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.EqualValues(t, 3, rec["n"])
}

func TestNew_InvalidInputs(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "verbose", FormatText)
	require.Error(t, err)

	_, err = New(&bytes.Buffer{}, "info", "xml")
	require.Error(t, err)
}

func TestOrDiscard(t *testing.T) {
	assert.NotNil(t, OrDiscard(nil))

	logger := slog.New(slog.DiscardHandler)
	assert.Same(t, logger, OrDiscard(logger))
}
