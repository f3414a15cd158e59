package daemon

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherCoalescesRapidEdits(t *testing.T) {
	dir := t.TempDir()

	var triggers atomic.Int32
	w, err := NewWatcher(dir, 100*time.Millisecond, func() { triggers.Add(1) })
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	// A burst of descriptor edits must collapse into one trigger.
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "repo.yml"), []byte("source: x\n"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return triggers.Load() >= 1 },
		2*time.Second, 20*time.Millisecond)
	// Allow a full debounce window to pass and confirm no extra trigger fires.
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), triggers.Load())
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()

	var triggers atomic.Int32
	w, err := NewWatcher(dir, 50*time.Millisecond, func() { triggers.Add(1) })
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hi"), 0o644))
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(0), triggers.Load())
}

func TestWatcherMissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "absent"), time.Second, func() {})
	assert.Error(t, err)
}
