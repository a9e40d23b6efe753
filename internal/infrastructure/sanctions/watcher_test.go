package sanctions

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/FinCrime-Intelligence/internal/infrastructure/monitoring/logging"
)

func TestWatcher_ReloadsOnFileChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sdn.csv")
	row := "1,OLD NAME,Entity,[SDGT],-0-,-0-,-0-,-0-,-0-,-0-,-0-,-0-\n"
	require.NoError(t, os.WriteFile(path, []byte(row), 0o644))

	loader := NewLoader(&stubEncoder{}, logging.NewNopLogger())
	records, err := loader.LoadFile(context.Background(), path)
	require.NoError(t, err)
	index := NewMemoryIndex(records)
	require.Equal(t, 1, index.Size())

	w, err := NewWatcher(path, loader, index, logging.NewNopLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Run(ctx)
	}()

	// Grow the file to two rows; the watcher should rebuild the index.
	two := row + "2,NEW NAME,Entity,[SDGT],-0-,-0-,-0-,-0-,-0-,-0-,-0-,-0-\n"
	require.NoError(t, os.WriteFile(path, []byte(two), 0o644))

	assert.Eventually(t, func() bool { return index.Size() == 2 },
		5*time.Second, 50*time.Millisecond, "index was not reloaded")

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop on context cancellation")
	}
}

func TestWatcher_KeepsPreviousSetOnBadReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sdn.csv")
	row := "1,NAME,Entity,[SDGT],-0-,-0-,-0-,-0-,-0-,-0-,-0-,-0-\n"
	require.NoError(t, os.WriteFile(path, []byte(row), 0o644))

	loader := NewLoader(&stubEncoder{}, logging.NewNopLogger())
	records, err := loader.LoadFile(context.Background(), path)
	require.NoError(t, err)
	index := NewMemoryIndex(records)

	w, err := NewWatcher(path, loader, index, logging.NewNopLogger())
	require.NoError(t, err)

	// Corrupt the file, then drive a reload directly: the index keeps the
	// previous set.
	require.NoError(t, os.WriteFile(path, []byte("malformed,row\n"), 0o644))
	w.reload(context.Background())
	assert.Equal(t, 1, index.Size())
}

func TestWatcher_IgnoresUnrelatedFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sdn.csv")
	row := "1,NAME,Entity,[SDGT],-0-,-0-,-0-,-0-,-0-,-0-,-0-,-0-\n"
	require.NoError(t, os.WriteFile(path, []byte(row), 0o644))

	loader := NewLoader(&stubEncoder{}, logging.NewNopLogger())
	records, err := loader.LoadFile(context.Background(), path)
	require.NoError(t, err)
	index := NewMemoryIndex(records)

	w, err := NewWatcher(path, loader, index, logging.NewNopLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(other, []byte("unrelated"), 0o644))

	time.Sleep(2 * reloadDebounce)
	assert.Equal(t, 1, index.Size())
}
