package watch

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, docs, configPath string, debounce time.Duration) *atomic.Int32 {
	t.Helper()
	var builds atomic.Int32
	w, err := New(docs, configPath, func(context.Context) error {
		builds.Add(1)
		return nil
	}, WithDebounce(debounce), WithLogger(slog.New(slog.DiscardHandler)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})
	return &builds
}

func TestWatcher_RebuildsOnDocsChange(t *testing.T) {
	docs := t.TempDir()
	builds := startWatcher(t, docs, "", 20*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(docs, "index.md"), []byte("# a\n"), 0o644))
	assert.Eventually(t, func() bool { return builds.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	docs := t.TempDir()
	builds := startWatcher(t, docs, "", 200*time.Millisecond)

	for i := range 5 {
		require.NoError(t, os.WriteFile(filepath.Join(docs, "page.md"), []byte{byte('a' + i)}, 0o644))
	}
	assert.Eventually(t, func() bool { return builds.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(400 * time.Millisecond)
	assert.Equal(t, int32(1), builds.Load())
}

func TestWatcher_WatchesNewDirectories(t *testing.T) {
	docs := t.TempDir()
	builds := startWatcher(t, docs, "", 20*time.Millisecond)

	sub := filepath.Join(docs, "guide")
	require.NoError(t, os.Mkdir(sub, 0o755))
	assert.Eventually(t, func() bool { return builds.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)

	before := builds.Load()
	require.NoError(t, os.WriteFile(filepath.Join(sub, "setup.md"), []byte("x"), 0o644))
	assert.Eventually(t, func() bool { return builds.Load() > before }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_RebuildsOnConfigChange(t *testing.T) {
	root := t.TempDir()
	docs := filepath.Join(root, "docs")
	require.NoError(t, os.Mkdir(docs, 0o755))
	configPath := filepath.Join(root, "mkdocs.yml")
	require.NoError(t, os.WriteFile(configPath, []byte("site_name: a\n"), 0o644))

	builds := startWatcher(t, docs, configPath, 20*time.Millisecond)

	require.NoError(t, os.WriteFile(configPath, []byte("site_name: b\n"), 0o644))
	assert.Eventually(t, func() bool { return builds.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_Relevant(t *testing.T) {
	w := &Watcher{docsDir: "/site/docs", configPath: "/site/mkdocs.yml"}

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"page write", fsnotify.Event{Name: "/site/docs/index.md", Op: fsnotify.Write}, true},
		{"nested create", fsnotify.Event{Name: "/site/docs/a/b.png", Op: fsnotify.Create}, true},
		{"config write", fsnotify.Event{Name: "/site/mkdocs.yml", Op: fsnotify.Write}, true},
		{"config rename", fsnotify.Event{Name: "/site/mkdocs.yml", Op: fsnotify.Rename}, true},
		{"chmod only", fsnotify.Event{Name: "/site/docs/index.md", Op: fsnotify.Chmod}, false},
		{"hidden file", fsnotify.Event{Name: "/site/docs/.index.md.swp", Op: fsnotify.Write}, false},
		{"hidden dir", fsnotify.Event{Name: "/site/docs/.git/index", Op: fsnotify.Write}, false},
		{"output dir", fsnotify.Event{Name: "/site/site/index.html", Op: fsnotify.Write}, false},
		{"other file next to config", fsnotify.Event{Name: "/site/README.md", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.relevant(tt.event))
		})
	}
}

func TestNew_MissingDocsDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), "", func(context.Context) error { return nil })
	require.Error(t, err)
}
