package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHandler keeps every record it is asked to handle.
type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
	attrs   []slog.Attr
	group   string
	enabled bool
}

func (h *recordingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.enabled
}

func (h *recordingHandler) Handle(ctx context.Context, record slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, record)
	return nil
}

func (h *recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &recordingHandler{enabled: h.enabled, attrs: append(h.attrs, attrs...), group: h.group}
}

func (h *recordingHandler) WithGroup(name string) slog.Handler {
	return &recordingHandler{enabled: h.enabled, attrs: h.attrs, group: name}
}

func (h *recordingHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.records)
}

func TestMultiHandler(t *testing.T) {
	h1 := &recordingHandler{enabled: true}
	h2 := &recordingHandler{enabled: false}
	multi := &multiHandler{handlers: []slog.Handler{h1, h2}}

	assert.True(t, multi.Enabled(context.Background(), slog.LevelInfo))

	record := slog.NewRecord(time.Now(), slog.LevelError, "size completed", 0)
	require.NoError(t, multi.Handle(context.Background(), record))
	assert.Equal(t, 1, h1.count())
	assert.Equal(t, 1, h2.count())

	withAttrs, ok := multi.WithAttrs([]slog.Attr{slog.Int("size", 1000)}).(*multiHandler)
	require.True(t, ok)
	for _, h := range withAttrs.handlers {
		assert.Equal(t, []slog.Attr{slog.Int("size", 1000)}, h.(*recordingHandler).attrs)
	}

	withGroup, ok := multi.WithGroup("trial").(*multiHandler)
	require.True(t, ok)
	for _, h := range withGroup.handlers {
		assert.Equal(t, "trial", h.(*recordingHandler).group)
	}

	h1.enabled = false
	assert.False(t, multi.Enabled(context.Background(), slog.LevelInfo))
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mergebench.log")

	logger, closer := NewLogger(LogOptions{Debug: true, File: path, Quiet: true})
	defer closer.Close()
	logger.Debug("trial completed", "size", 10, "elapsed_ms", 0)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(content), &entry))
	assert.Equal(t, "trial completed", entry["msg"])
	assert.Equal(t, "DEBUG", entry["level"])
	assert.EqualValues(t, 10, entry["size"])
}

func TestNewLogger_InfoLevelDropsDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := NewLogger(LogOptions{Output: &buf})
	logger.Debug("hidden")
	logger.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, _ := NewLogger(LogOptions{Output: &buf, Format: "text"})
	logger.Error("VERIFICATION DEFECT", "size", 1000, "run", 2)

	assert.Contains(t, buf.String(), "level=ERROR")
	assert.Contains(t, buf.String(), "size=1000 run=2")
}

func TestNewLogger_FanOut(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "fanout.log")

	logger, closer := NewLogger(LogOptions{Output: &buf, Format: "text", File: path})
	logger.Info("size completed", "size", 5000)
	require.NoError(t, closer.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "size=5000")
	assert.Contains(t, string(content), `"size":5000`)
}

func TestNewLogger_NoHandlers(t *testing.T) {
	logger, closer := NewLogger(LogOptions{Quiet: true})
	require.NotNil(t, logger)
	assert.NoError(t, closer.Close())
	logger.Info("discarded")
}

func TestNewLogger_FileError(t *testing.T) {
	originalLogger := slog.Default()
	defer slog.SetDefault(originalLogger)

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))

	logger, _ := NewLogger(LogOptions{File: filepath.Join(t.TempDir(), "missing", "test.log"), Quiet: true})
	assert.NotNil(t, logger)
	assert.Contains(t, buf.String(), "failed to open log file")
}

func TestInitLogger(t *testing.T) {
	originalLogger := slog.Default()
	defer slog.SetDefault(originalLogger)

	var buf bytes.Buffer
	closer := InitLogger(LogOptions{Output: &buf})
	defer closer.Close()

	slog.Info("suite recorded", "history", "sqlite")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "suite recorded", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
}
