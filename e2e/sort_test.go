//go:build e2e && unix

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSortSelection(t *testing.T) {
	t.Parallel()
	tf := NewTUITest(t)
	defer tf.Cleanup()

	workspace, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	require.NoError(t, tf.WriteDefaultWard(), "Failed to write ward export")

	err = tf.StartApp(workspace)
	require.NoError(t, err, "Failed to start app")

	require.True(t, tf.Ready(), "Should render the title bar")
	require.True(t, tf.OutputContainsPlain("Dr. Smith", 5*time.Second), "Roster should load")

	// 's' opens the sort selector on the current option
	require.NoError(t, tf.SendKeys(KeySort), "Failed to open sort selector")
	require.True(t, tf.OutputContainsPlain("Sort by: Name", 3*time.Second), "Selector should start on name sort")

	// j cycles to the next option, applied immediately
	require.NoError(t, tf.Down(), "Failed to cycle sort option")
	require.True(t, tf.OutputContainsPlain("Sort by: Role", 3*time.Second), "Selector should move to role sort")

	require.NoError(t, tf.Down(), "Failed to cycle sort option")
	require.True(t, tf.OutputContainsPlain("Sort by: Status", 3*time.Second), "Selector should move to status sort")

	// Enter accepts and drops back to the list; the selector line stops
	// appearing in fresh frames
	require.NoError(t, tf.SendEnter(), "Failed to accept sort")
	require.True(t, tf.WaitFor(func(string) bool {
		plain := tf.SnapshotPlain()
		tail := plain
		if len(tail) > 400 {
			tail = tail[len(tail)-400:]
		}
		return !strings.Contains(tail, "Sort by:")
	}, 3*time.Second), "Selector should close after accepting")
}
