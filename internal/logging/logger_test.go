package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHandler_AddsFields(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, Config{Format: "json", Level: "debug"}))

	ctx := WithFields(context.Background(), Fields{SessionID: "s-1", Component: "conversation"})
	ctx = WithFields(ctx, Fields{Module: "target_customer"})
	log.DebugContext(ctx, "question applied", "index", 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "s-1", rec["session_id"])
	assert.Equal(t, "target_customer", rec["module"])
	assert.Equal(t, "conversation", rec["component"])
	assert.Equal(t, "question applied", rec["msg"])
}

func TestContextHandler_WithAttrsKeepsEnrichment(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, Config{Format: "json"})).With("provider", "mock")

	log.InfoContext(WithFields(context.Background(), Fields{SessionID: "s-2"}), "hello")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "mock", rec["provider"])
	assert.Equal(t, "s-2", rec["session_id"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("chatty"))
}

func TestSetup_File(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "logs", "ideaforge.log")
	closer, err := Setup(Config{File: path, Level: "info"})
	require.NoError(t, err)

	slog.Info("written to file")
	require.NoError(t, closer.Close())
	assert.FileExists(t, path)
}
