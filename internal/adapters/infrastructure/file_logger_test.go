package infrastructure

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"allweather.app/internal/ports"
	"allweather.app/pkg/errors"
)

func readLogLines(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var entries []map[string]interface{}
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())
	return entries
}

func TestNewFileLoggerAdapter(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name        string
		logPath     string
		expectError bool
	}{
		{name: "valid_path", logPath: filepath.Join(dir, "providers.log")},
		{name: "nested_path", logPath: filepath.Join(dir, "nested", "deep", "providers.log")},
		{name: "empty_path", logPath: "", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewFileLoggerAdapter(tt.logPath)

			if tt.expectError {
				assert.True(t, errors.IsConfigurationError(err))
				assert.Nil(t, logger)
				return
			}
			require.NoError(t, err)
			defer logger.Close()
			assert.FileExists(t, tt.logPath)
		})
	}
}

func TestFileLoggerAdapter_StructuredEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "providers.log")
	logger, err := NewFileLoggerAdapter(path)
	require.NoError(t, err)
	logger.now = func() time.Time { return time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC) }

	logger.Debug("Forecast request started", ports.F("provider", "openweathermap"))
	logger.Info("Chat message sent", ports.F("channel", "whatsapp"), ports.F("duration_ms", int64(120)))
	logger.Warn("Forecast is stale")
	logger.Error("Chat message failed", ports.F("error", fmt.Errorf("status 401")))
	require.NoError(t, logger.Close())

	entries := readLogLines(t, path)
	require.Len(t, entries, 4)

	assert.Equal(t, "DEBUG", entries[0]["level"])
	assert.Equal(t, "openweathermap", entries[0]["provider"])
	assert.Equal(t, "2026-10-14T09:30:00Z", entries[0]["timestamp"])
	assert.Equal(t, "INFO", entries[1]["level"])
	assert.Equal(t, float64(120), entries[1]["duration_ms"])
	assert.Equal(t, "WARN", entries[2]["level"])
	assert.Equal(t, "Forecast is stale", entries[2]["message"])
	assert.Equal(t, "status 401", entries[3]["error"])
}

func TestFileLoggerAdapter_ReservedKeysWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "providers.log")
	logger, err := NewFileLoggerAdapter(path)
	require.NoError(t, err)

	logger.Info("real message", ports.F("message", "spoofed"), ports.F("level", "DEBUG"))
	require.NoError(t, logger.Close())

	entries := readLogLines(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, "real message", entries[0]["message"])
	assert.Equal(t, "INFO", entries[0]["level"])
}

func TestFileLoggerAdapter_ConcurrentLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "providers.log")
	logger, err := NewFileLoggerAdapter(path)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 10; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 20; i++ {
				logger.Info("concurrent", ports.F("goroutine", g), ports.F("i", i))
			}
		}(g)
	}
	wg.Wait()
	require.NoError(t, logger.Close())

	assert.Len(t, readLogLines(t, path), 200)
}

func TestFileLoggerAdapter_AppendModeAndClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "providers.log")

	first, err := NewFileLoggerAdapter(path)
	require.NoError(t, err)
	first.Info("first")
	require.NoError(t, first.Close())
	first.Info("dropped after close")
	assert.NoError(t, first.Close())

	second, err := NewFileLoggerAdapter(path)
	require.NoError(t, err)
	second.Info("second")
	require.NoError(t, second.Close())

	entries := readLogLines(t, path)
	require.Len(t, entries, 2)
	assert.Equal(t, "first", entries[0]["message"])
	assert.Equal(t, "second", entries[1]["message"])
}

func TestFileLoggerAdapter_UnmarshalableField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "providers.log")
	logger, err := NewFileLoggerAdapter(path)
	require.NoError(t, err)

	logger.Info("bad", ports.F("fn", func() {}))
	require.NoError(t, logger.Close())

	entries := readLogLines(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, "ERROR", entries[0]["level"])
	assert.Contains(t, entries[0]["message"], "failed to marshal log entry")
}

func TestMultiLogger(t *testing.T) {
	dir := t.TempDir()
	a, err := NewFileLoggerAdapter(filepath.Join(dir, "a.log"))
	require.NoError(t, err)
	b, err := NewFileLoggerAdapter(filepath.Join(dir, "b.log"))
	require.NoError(t, err)

	multi := MultiLogger{a, b}
	multi.Debug("d")
	multi.Info("i")
	multi.Warn("w")
	multi.Error("e")
	require.NoError(t, a.Close())
	require.NoError(t, b.Close())

	assert.Len(t, readLogLines(t, filepath.Join(dir, "a.log")), 4)
	assert.Len(t, readLogLines(t, filepath.Join(dir, "b.log")), 4)
}
