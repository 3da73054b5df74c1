package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_JSONToWriter(t *testing.T) {
	var buf bytes.Buffer
	logger, cleanup, err := Setup(Options{Level: slog.LevelInfo, Writer: &buf})
	require.NoError(t, err)
	defer cleanup()

	logger.Debug("hidden")
	logger.Info("types analyzed", "types_count", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "types analyzed", rec["msg"])
	assert.Equal(t, float64(3), rec["types_count"])
}

func TestSetup_AlsoWritesFile(t *testing.T) {
	var buf bytes.Buffer
	file := filepath.Join(t.TempDir(), "logs", "partials.log")
	logger, cleanup, err := Setup(Options{Level: slog.LevelDebug, File: file, Format: "text", Writer: &buf})
	require.NoError(t, err)

	logger.Debug("split point leaves type unchanged", "type", "Order")
	cleanup()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "type=Order")
	assert.Equal(t, buf.String(), string(data))
}

func TestSetup_UnknownFormat(t *testing.T) {
	_, _, err := Setup(Options{Format: "xml", Writer: &bytes.Buffer{}})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"", slog.LevelInfo, false},
		{"debug", slog.LevelDebug, false},
		{"WARN", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
