package telemetry

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestTracker_AppendsOneLinePerEvent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	tr := NewTracker(path, "session-1", true)

	tr.Record("activate", map[string]any{"tool": "web_fetch"})
	tr.Record("purge", map[string]any{"removed": 2})

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	require.NoError(t, sc.Err())
	require.Len(t, lines, 2)

	first := gjson.Parse(lines[0])
	assert.Equal(t, "session-1", first.Get("session_id").String())
	assert.Equal(t, "activate", first.Get("event").String())
	assert.Equal(t, "web_fetch", first.Get("fields.tool").String())
	assert.NotEmpty(t, first.Get("timestamp").String())

	assert.Equal(t, int64(2), gjson.Parse(lines[1]).Get("fields.removed").Int())
}

func TestTracker_DisabledWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	tr := NewTracker(path, "session-1", false)

	tr.Record("activate", nil)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestTracker_NilSafe(t *testing.T) {
	var tr *Tracker

	assert.NotPanics(t, func() { tr.Record("activate", nil) })
}

func TestTracker_EmptyPathDisables(t *testing.T) {
	tr := NewTracker("", "session-1", true)

	assert.NotPanics(t, func() { tr.Record("activate", nil) })
}
