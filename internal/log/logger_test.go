package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendAndReadAll(t *testing.T) {
	l, err := NewLogger(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, l.Append(LogEvent{Event: EventSessionCreated, SessionID: "S1", Total: 10}))
	require.NoError(t, l.Append(LogEvent{Event: EventQuestionServed, SessionID: "S1", Ordinal: 1}))

	events, err := l.ReadAll()
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, EventSessionCreated, events[0].Event)
	assert.False(t, events[0].Time.IsZero())
	assert.Equal(t, 1, events[1].Ordinal)
}

func TestReadAllMissingFile(t *testing.T) {
	l, err := NewLogger(t.TempDir())
	require.NoError(t, err)

	events, err := l.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestReadAllReportsBadLine(t *testing.T) {
	l, err := NewLogger(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(l.Path(), []byte("{\"event\":\"ok\"}\nnot json\n"), 0644))

	_, err = l.ReadAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestConcurrentAppends(t *testing.T) {
	l, err := NewLogger(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			assert.NoError(t, l.Append(LogEvent{Event: EventAnswerSubmitted, Ordinal: n + 1}))
		}(i)
	}
	wg.Wait()

	events, err := l.ReadAll()
	require.NoError(t, err)
	assert.Len(t, events, 20)
}

func TestForSession(t *testing.T) {
	l, err := NewLogger(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, l.Append(LogEvent{Event: EventSessionCreated, SessionID: "A"}))
	require.NoError(t, l.Append(LogEvent{Event: EventSessionCreated, SessionID: "B"}))
	require.NoError(t, l.Append(LogEvent{Event: EventTimerExpired, SessionID: "A"}))

	events, err := l.ForSession("A")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, EventTimerExpired, events[1].Event)
}

func TestSetupWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := Setup(&buf, slog.LevelInfo)
	logger.Debug("hidden")
	logger.Info("shown", slog.String("op", "create session"))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "shown", rec["msg"])
	assert.Equal(t, "create session", rec["op"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
}

func TestOpenDebugLog(t *testing.T) {
	dir := t.TempDir()
	f, err := OpenDebugLog(dir)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, filepath.Join(dir, ".mockround", "debug.log"), f.Name())
}
