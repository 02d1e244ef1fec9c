package services

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/chmouel/lazychanges/internal/config"
	"github.com/fsnotify/fsnotify"
)

// WatchDebounce is the debounce window for watcher events.
const WatchDebounce = 600 * time.Millisecond

// RepoPathResolver resolves repository paths for the watcher.
type RepoPathResolver interface {
	RunGit(ctx context.Context, args []string, cwd string, okReturncodes []int, strip, silent bool) string
}

// WorkTreeWatchService watches the working tree and the git directory and
// signals when the status panel should refresh.
type WorkTreeWatchService struct {
	Started     bool
	Waiting     bool
	Root        string
	GitDir      string
	Events      chan struct{}
	Done        chan struct{}
	Paths       map[string]struct{}
	Mu          sync.Mutex
	Watcher     *fsnotify.Watcher
	LastRefresh time.Time
	git         RepoPathResolver
	logf        func(string, ...any)
}

// NewWorkTreeWatchService creates a new WorkTreeWatchService.
func NewWorkTreeWatchService(git RepoPathResolver, logf func(string, ...any)) *WorkTreeWatchService {
	return &WorkTreeWatchService{
		git:  git,
		logf: logf,
	}
}

// Start initialises the watcher and starts the background goroutine.
func (w *WorkTreeWatchService) Start(ctx context.Context, cfg *config.AppConfig) (bool, error) {
	if w.Started || cfg == nil || !cfg.AutoRefresh {
		return false, nil
	}
	root := w.resolveRepoRoot(ctx)
	if root == "" {
		w.debugf("auto refresh: unable to resolve repository root")
		return false, nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return false, err
	}

	w.Started = true
	w.Watcher = watcher
	w.Root = root
	w.GitDir = w.resolveGitDir(ctx, root)
	w.Events = make(chan struct{}, 1)
	w.Done = make(chan struct{})
	w.Paths = make(map[string]struct{})
	w.addWatchTree(root)
	if w.GitDir != "" {
		// Non recursive: index and HEAD changes live at the top level.
		w.addWatchDir(w.GitDir)
	}

	go w.run()
	return true, nil
}

// Stop stops the watcher and closes channels.
func (w *WorkTreeWatchService) Stop() {
	if !w.Started {
		return
	}
	close(w.Done)
	w.Started = false
	if w.Watcher != nil {
		_ = w.Watcher.Close()
	}
}

// NextEvent returns the event channel if waiting is not already active.
func (w *WorkTreeWatchService) NextEvent() <-chan struct{} {
	if w.Events == nil || w.Waiting {
		return nil
	}
	w.Waiting = true
	return w.Events
}

// ResetWaiting clears the waiting flag after an event is processed.
func (w *WorkTreeWatchService) ResetWaiting() {
	w.Waiting = false
}

// ShouldRefresh checks debounce timing for watcher events.
func (w *WorkTreeWatchService) ShouldRefresh(now time.Time) bool {
	if !w.LastRefresh.IsZero() && now.Sub(w.LastRefresh) < WatchDebounce {
		return false
	}
	w.LastRefresh = now
	return true
}

// MaybeWatchNewDir registers newly created directories under the watch root.
func (w *WorkTreeWatchService) MaybeWatchNewDir(path string) {
	if !w.IsUnderRoot(path) || w.isIgnoredDir(path) {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	w.addWatchDir(path)
}

// Signal notifies listeners of watcher activity.
func (w *WorkTreeWatchService) Signal() {
	select {
	case <-w.Done:
		return
	default:
	}
	select {
	case w.Events <- struct{}{}:
	default:
	}
}

// IsUnderRoot reports whether the path is under the watch root.
func (w *WorkTreeWatchService) IsUnderRoot(path string) bool {
	if path == "" || w.Root == "" {
		return false
	}
	return path == w.Root || strings.HasPrefix(path, w.Root+string(filepath.Separator))
}

func (w *WorkTreeWatchService) isIgnoredDir(path string) bool {
	base := filepath.Base(path)
	return base == ".git" || base == "node_modules"
}

func (w *WorkTreeWatchService) run() {
	for {
		select {
		case <-w.Done:
			return
		case event, ok := <-w.Watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				w.MaybeWatchNewDir(event.Name)
			}
			w.Signal()
		case err, ok := <-w.Watcher.Errors:
			if !ok {
				return
			}
			w.debugf("watcher error: %v", err)
		}
	}
}

func (w *WorkTreeWatchService) addWatchDir(path string) {
	if path == "" {
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}

	w.Mu.Lock()
	defer w.Mu.Unlock()

	if _, ok := w.Paths[path]; ok {
		return
	}
	if err := w.Watcher.Add(path); err != nil {
		w.debugf("watcher add failed for %s: %v", path, err)
		return
	}
	w.Paths[path] = struct{}{}
}

func (w *WorkTreeWatchService) addWatchTree(root string) {
	if root == "" {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if path != root && w.isIgnoredDir(path) {
			return filepath.SkipDir
		}
		w.addWatchDir(path)
		return nil
	})
}

func (w *WorkTreeWatchService) resolveRepoRoot(ctx context.Context) string {
	if w.git == nil {
		return ""
	}
	return strings.TrimSpace(w.git.RunGit(ctx, []string{"git", "rev-parse", "--show-toplevel"}, "", []int{0}, true, false))
}

func (w *WorkTreeWatchService) resolveGitDir(ctx context.Context, root string) string {
	gitDir := strings.TrimSpace(w.git.RunGit(ctx, []string{"git", "rev-parse", "--git-dir"}, "", []int{0}, true, false))
	if gitDir == "" {
		return ""
	}
	if filepath.IsAbs(gitDir) {
		return gitDir
	}
	return filepath.Join(root, gitDir)
}

func (w *WorkTreeWatchService) debugf(format string, args ...any) {
	if w.logf == nil {
		return
	}
	w.logf(format, args...)
}
