//go:build e2e && unix

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestManualReloadPicksUpChanges(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	require.NoError(t, tf.WriteDefaultWard(), "Failed to write ward export")

	err = tf.StartApp(workspace)
	require.NoError(t, err, "Failed to start app")

	require.True(t, tf.Ready(), "Should render the title bar")
	require.True(t, tf.OutputContainsPlain("Dr. Smith", 5*time.Second), "Initial snapshot should load")

	// The backend export gains a person; without watch mode nothing
	// happens until a reload
	require.NoError(t, tf.WriteRoster(
		fixturePerson{ID: "P001", Name: "Dr. Smith", Role: "physician", Email: "a@x.com"},
		fixturePerson{ID: "P002", Name: "Nurse Lee", Role: "nurse", Email: "b@x.com"},
		fixturePerson{ID: "P003", Name: "Tech Jones", Role: "technician", Email: "c@x.com"},
	), "Failed to rewrite roster")

	// 'r' requests a reload through the same path as the timer tick
	require.NoError(t, tf.SendKeys(KeyReload), "Failed to request reload")
	require.True(t, tf.OutputContainsPlain("Tech Jones", 5*time.Second), "New person should appear after reload")
	require.True(t, tf.SeePlain("Technicians (1)"), "New role section should appear")
}

func TestShortIntervalAutoReload(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	require.NoError(t, tf.WriteDefaultWard(), "Failed to write ward export")

	// Crank the refresh timer down so the test can see a tick fire
	err = tf.StartApp("-interval", "1", workspace)
	require.NoError(t, err, "Failed to start app")

	require.True(t, tf.Ready(), "Should render the title bar")
	require.True(t, tf.OutputContainsPlain("Dr. Smith", 5*time.Second), "Initial snapshot should load")

	require.NoError(t, tf.WriteRoster(
		fixturePerson{ID: "P001", Name: "Dr. Smith", Role: "physician", Email: "a@x.com"},
		fixturePerson{ID: "P004", Name: "Dr. Patel", Role: "physician", Email: "d@x.com"},
	), "Failed to rewrite roster")

	// No keypress: the visible view reloads on its own cadence
	require.True(t, tf.OutputContainsPlain("Dr. Patel", 10*time.Second), "Tick should reload the export")
}

func TestFailedReloadKeepsStaleView(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	require.NoError(t, tf.WriteDefaultWard(), "Failed to write ward export")

	err = tf.StartApp(workspace)
	require.NoError(t, err, "Failed to start app")

	require.True(t, tf.Ready(), "Should render the title bar")
	require.True(t, tf.OutputContainsPlain("Dr. Smith", 5*time.Second), "Initial snapshot should load")

	// The roster file is required; deleting it makes the next load fail
	require.NoError(t, os.Remove(filepath.Join(workspace, "roster.jsonl")), "Failed to break the export")

	require.NoError(t, tf.SendKeys(KeyReload), "Failed to request reload")
	require.True(t, tf.OutputContainsPlain("reload failed", 5*time.Second), "Failure should be surfaced")

	// Stale data stays on screen
	require.True(t, tf.SeePlain("Dr. Smith"), "Stale snapshot should remain visible")
}
