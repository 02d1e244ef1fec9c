package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmouel/lazychanges/internal/config"
)

// fakeResolver answers the rev-parse queries the watcher issues.
type fakeResolver struct {
	root   string
	gitDir string
}

func (f *fakeResolver) RunGit(_ context.Context, args []string, _ string, _ []int, _, _ bool) string {
	for _, arg := range args {
		if arg == "--show-toplevel" {
			return f.root
		}
		if arg == "--git-dir" {
			return f.gitDir
		}
	}
	return ""
}

func newStartedWatcher(t *testing.T) (*WorkTreeWatchService, string) {
	t.Helper()
	root := t.TempDir()
	gitDir := filepath.Join(root, ".git")
	require.NoError(t, os.MkdirAll(gitDir, 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))

	w := NewWorkTreeWatchService(&fakeResolver{root: root, gitDir: gitDir}, t.Logf)
	cfg := config.DefaultConfig()
	started, err := w.Start(context.Background(), cfg)
	require.NoError(t, err)
	require.True(t, started)
	t.Cleanup(w.Stop)
	return w, root
}

func TestWatchServiceStartRegistersTree(t *testing.T) {
	w, root := newStartedWatcher(t)

	w.Mu.Lock()
	_, hasRoot := w.Paths[root]
	_, hasSrc := w.Paths[filepath.Join(root, "src")]
	_, hasGitDir := w.Paths[w.GitDir]
	w.Mu.Unlock()

	assert.True(t, hasRoot)
	assert.True(t, hasSrc)
	assert.True(t, hasGitDir)
}

func TestWatchServiceSkipsAutoRefreshDisabled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.AutoRefresh = false

	w := NewWorkTreeWatchService(&fakeResolver{root: t.TempDir()}, nil)
	started, err := w.Start(context.Background(), cfg)
	require.NoError(t, err)
	assert.False(t, started)
}

func TestWatchServiceSignalsOnFileWrite(t *testing.T) {
	w, root := newStartedWatcher(t)

	events := w.NextEvent()
	require.NotNil(t, events)

	require.NoError(t, os.WriteFile(filepath.Join(root, "file.txt"), []byte("x"), 0o644))

	select {
	case <-events:
	case <-time.After(3 * time.Second):
		t.Fatal("expected a watch event after writing a file")
	}
}

func TestWatchServiceNextEventOnlyOnce(t *testing.T) {
	w, _ := newStartedWatcher(t)

	require.NotNil(t, w.NextEvent())
	assert.Nil(t, w.NextEvent())

	w.ResetWaiting()
	assert.NotNil(t, w.NextEvent())
}

func TestWatchServiceShouldRefreshDebounces(t *testing.T) {
	w := NewWorkTreeWatchService(nil, nil)
	now := time.Now()

	assert.True(t, w.ShouldRefresh(now))
	assert.False(t, w.ShouldRefresh(now.Add(WatchDebounce/2)))
	assert.True(t, w.ShouldRefresh(now.Add(2*WatchDebounce)))
}

func TestWatchServiceIsUnderRoot(t *testing.T) {
	w := NewWorkTreeWatchService(nil, nil)
	w.Root = filepath.Join("/", "repo")

	assert.True(t, w.IsUnderRoot(filepath.Join("/", "repo", "a.go")))
	assert.True(t, w.IsUnderRoot(w.Root))
	assert.False(t, w.IsUnderRoot(filepath.Join("/", "repository", "a.go")))
	assert.False(t, w.IsUnderRoot(""))
}

func TestWatchServiceIgnoredDirs(t *testing.T) {
	w := NewWorkTreeWatchService(nil, nil)

	assert.True(t, w.isIgnoredDir(filepath.Join("x", ".git")))
	assert.True(t, w.isIgnoredDir(filepath.Join("x", "node_modules")))
	assert.False(t, w.isIgnoredDir(filepath.Join("x", "src")))
}
