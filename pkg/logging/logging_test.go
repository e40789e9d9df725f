package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitForCLI_WritesSubsystemAndError(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelDebug, &buf)

	Error("Bookmarks", errors.New("disk full"), "failed to persist %d bookmarks", 3)

	out := buf.String()
	assert.Contains(t, out, "failed to persist 3 bookmarks")
	assert.Contains(t, out, "subsystem=Bookmarks")
	assert.Contains(t, out, "disk full")
}

func TestInitForCLI_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	InitForCLI(LevelWarn, &buf)

	Debug("Selection", "hidden")
	Info("Selection", "also hidden")
	Warn("Selection", "visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}

func TestInitForTUI_DeliversEntries(t *testing.T) {
	ch := InitForTUI(LevelInfo)
	defer CloseTUIChannel()

	Debug("Drawer", "filtered out")
	Info("Drawer", "opened tab %s", "logs-1")

	select {
	case entry := <-ch:
		assert.Equal(t, LevelInfo, entry.Level)
		assert.Equal(t, "Drawer", entry.Subsystem)
		assert.Equal(t, "opened tab logs-1", entry.Message)
		assert.True(t, strings.Contains(entry.String(), "[Drawer] opened tab logs-1"))
	default:
		t.Fatal("expected a log entry on the UI channel")
	}

	select {
	case entry := <-ch:
		t.Fatalf("unexpected extra entry: %+v", entry)
	default:
	}
}

func TestInitForTUI_DropsWhenFull(t *testing.T) {
	_ = InitForTUI(LevelDebug)
	defer CloseTUIChannel()

	for i := 0; i < uiChannelBufferSize+10; i++ {
		Debug("Flood", "entry %d", i)
	}
	require.Equal(t, int64(10), DroppedTUIEntries())
}

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "ERROR", LevelError.String())
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}
