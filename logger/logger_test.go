package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	charmlog "github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCharmlogLevel(t *testing.T) {
	assert.Equal(t, charmlog.DebugLevel, DebugLevel.ToCharmlogLevel())
	assert.Equal(t, charmlog.WarnLevel, WarnLevel.ToCharmlogLevel())
	assert.Equal(t, charmlog.InfoLevel, LogLevel("verbose").ToCharmlogLevel())
}

func TestNewFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&Config{Level: WarnLevel, Output: &buf})

	l.Info("converted split", "split", "dev")
	assert.Empty(t, buf.String())

	l.Warn("Relation with N to M cause/effects. Skipping.", "id", "7")
	assert.Contains(t, buf.String(), "Skipping")
	assert.Contains(t, buf.String(), "id=7")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l := New(&Config{Level: InfoLevel, Output: &buf, JSON: true})

	l.Info("converted split", "split", "train")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "converted split", rec["msg"])
	assert.Equal(t, "train", rec["split"])
}

func TestDiscard(t *testing.T) {
	l := Discard()
	assert.NotPanics(t, func() { l.Error("dropped") })
}
