package infrastructure

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"allweather.app/internal/ports"
	"allweather.app/pkg/logger"
)

func TestSlogLoggerAdapter(t *testing.T) {
	var buf bytes.Buffer
	adapter := NewSlogLoggerAdapter(logger.NewWithWriter(&buf, slog.LevelInfo))

	adapter.Debug("hidden")
	adapter.Info("New booking", ports.F("booking_id", "BK-1"), ports.F("notified", []string{"whatsapp"}))
	adapter.Warn("Forecast unavailable", ports.F("error", fmt.Errorf("timeout")))
	adapter.Error("boom")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "New booking", entry["msg"])
	assert.Equal(t, "BK-1", entry["booking_id"])
	assert.Equal(t, "allweather-booking", entry["service"])

	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
	assert.Equal(t, "timeout", entry["error"])
}

func TestNewSlogLoggerAdapter_DefaultsToSlogDefault(t *testing.T) {
	assert.Equal(t, slog.Default(), NewSlogLoggerAdapter(nil).logger)
}
