package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Config{Level: "debug", Format: FormatJSON}, &buf)
	l = ComponentLogger(l, "viewmodel")

	l.Debug().Str("operation", "recompute").Msg("done")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "viewmodel", entry["component"])
	assert.Equal(t, "recompute", entry["operation"])
	assert.Equal(t, "done", entry["message"])
}

func TestNewLogger_InvalidLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Config{Level: "loud"}, &buf)
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())

	l.Debug().Msg("hidden")
	assert.Zero(t, buf.Len())
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Config{Level: "info"}, &buf)
	ctx := l.WithContext(context.Background())

	FromContext(ctx).Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")

	// no logger attached: the default logger is used and must not panic
	FromContext(context.Background()).Info().Msg("ignored")
}

func TestTraceID(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, TraceIDFromContext(ctx))

	generated := GetOrGenerateTraceID(ctx)
	assert.Len(t, generated, 26)

	ctx = ContextWithTraceID(ctx, "trace-1")
	assert.Equal(t, "trace-1", TraceIDFromContext(ctx))
	assert.Equal(t, "trace-1", GetOrGenerateTraceID(ctx))
}

func TestNewLoggerWithPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "accountdesk.log")
	res := NewLoggerWithPath(Config{Level: "info", Output: OutputFile, File: path})
	t.Cleanup(func() { _ = res.Close() })

	assert.True(t, res.UsingFile)
	assert.Equal(t, path, res.FilePath)
	assert.False(t, res.FallbackUsed)

	stderr := NewLoggerWithPath(Config{Level: "info"})
	assert.False(t, stderr.UsingFile)
	require.NoError(t, stderr.Close())
}

func TestTraceHook(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Config{Level: "info"}, &buf)
	ctx := ContextWithTraceID(context.Background(), "01TRACE")

	l.Info().Ctx(ctx).Msg("with trace")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "01TRACE", entry["trace_id"])
}
