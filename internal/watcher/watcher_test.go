package watcher_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/quickselect/internal/pubsub"
	"github.com/zjrosen/quickselect/internal/watcher"
)

func startWatcher(t *testing.T, path string) (*watcher.Watcher, <-chan pubsub.Event[watcher.Change]) {
	t.Helper()

	w, err := watcher.New(watcher.Config{Path: path, Debounce: 50 * time.Millisecond})
	require.NoError(t, err, "failed to create watcher")
	t.Cleanup(func() { _ = w.Stop() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	events := w.Broker().Subscribe(ctx)

	require.NoError(t, w.Start(), "failed to start watcher")
	return w, events
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("(a)"), 0o644))

	_, events := startWatcher(t, path)

	// Rapid writes should coalesce into a single notification
	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("(%d)", i)), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case event := <-events:
		require.Equal(t, pubsub.ChangedEvent, event.Type)
		abs, err := filepath.Abs(path)
		require.NoError(t, err)
		require.Equal(t, abs, event.Payload.Path)
		require.NoError(t, event.Payload.Error)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification but got timeout")
	}

	select {
	case event := <-events:
		t.Fatalf("unexpected second notification: %v", event.Type)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(other, []byte("initial"), 0o644))

	_, events := startWatcher(t, path)

	require.NoError(t, os.WriteFile(other, []byte("other content"), 0o644))

	select {
	case <-events:
		t.Fatal("should not notify for unrelated files")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_ReportsRemoval(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	_, events := startWatcher(t, path)

	require.NoError(t, os.Remove(path))

	select {
	case event := <-events:
		require.Equal(t, pubsub.RemovedEvent, event.Type)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected removal notification")
	}
}

func TestWatcher_SeesRenameReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	_, events := startWatcher(t, path)

	tmp := filepath.Join(dir, ".notes.txt.swp")
	require.NoError(t, os.WriteFile(tmp, []byte("new"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case event := <-events:
		require.Equal(t, pubsub.ChangedEvent, event.Type)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification after rename")
	}
}

func TestWatcher_Stop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	w, err := watcher.New(watcher.DefaultConfig(path))
	require.NoError(t, err)
	events := w.Broker().Subscribe(context.Background())
	require.NoError(t, w.Start())

	done := make(chan struct{})
	go func() {
		assert.NoError(t, w.Stop(), "Stop returned error")
		assert.NoError(t, w.Stop(), "second Stop returned error")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Stop() timed out - possible deadlock")
	}

	_, ok := <-events
	require.False(t, ok, "broker should be closed after Stop")
}

func TestNew_RejectsNonPositiveDebounce(t *testing.T) {
	_, err := watcher.New(watcher.Config{Path: "x.txt"})
	require.ErrorContains(t, err, "debounce must be positive")
}

func TestStart_MissingDirectory(t *testing.T) {
	w, err := watcher.New(watcher.DefaultConfig(filepath.Join(t.TempDir(), "nope", "file.txt")))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	require.Error(t, w.Start())
}

func TestNew_ResolvesAbsolutePath(t *testing.T) {
	cfg := watcher.DefaultConfig("notes.txt")
	require.Equal(t, 200*time.Millisecond, cfg.Debounce)

	w, err := watcher.New(cfg)
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(w.Path()))
	require.Equal(t, filepath.Join(wd, "notes.txt"), w.Path())
}
