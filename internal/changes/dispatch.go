package changes

import "github.com/chmouel/lazychanges/internal/models"

// FileDiscarder is the collaborator that performs destructive discards.
type FileDiscarder interface {
	DiscardFiles(files []models.ChangedFile)
}

// IgnoreStore appends patterns to the repository ignore file. One call
// may carry a single pattern or a batch.
type IgnoreStore interface {
	AddIgnorePatterns(patterns ...string)
}

// Shell performs OS-level file operations.
type Shell interface {
	RevealInFileManager(path string)
	OpenWithDefaultProgram(path string)
}

// SnapshotFunc returns the live FileSet at dispatch time.
type SnapshotFunc func() *models.FileSet

// Dispatcher executes menu actions. Targets carry paths, not records:
// every discard re-resolves its paths against the snapshot returned by
// the snapshot function at execution time, and paths that no longer
// resolve are dropped. A dispatch that resolves nothing is a silent
// no-op. The dispatcher never deduplicates requests; firing the same
// action twice simply reaches the collaborator twice.
type Dispatcher struct {
	snapshot SnapshotFunc
	discards FileDiscarder
	ignores  IgnoreStore
	shell    Shell
}

// NewDispatcher wires a dispatcher to its collaborators.
func NewDispatcher(snapshot SnapshotFunc, discards FileDiscarder, ignores IgnoreStore, shell Shell) *Dispatcher {
	return &Dispatcher{
		snapshot: snapshot,
		discards: discards,
		ignores:  ignores,
		shell:    shell,
	}
}

// Dispatch executes a single menu action. Disabled actions and
// separators do nothing.
func (d *Dispatcher) Dispatch(action MenuAction) {
	if !action.Enabled || action.IsSeparator() {
		return
	}
	switch action.Kind {
	case ActionDiscard:
		d.Discard(action.Target)
	case ActionIgnore:
		d.Ignore(action.Target)
	case ActionIgnorePattern:
		if action.Pattern != "" && d.ignores != nil {
			d.ignores.AddIgnorePatterns(action.Pattern)
		}
	case ActionReveal:
		if action.Target.Path != "" && d.shell != nil {
			d.shell.RevealInFileManager(action.Target.Path)
		}
	case ActionOpen:
		if action.Target.Path != "" && d.shell != nil {
			d.shell.OpenWithDefaultProgram(action.Target.Path)
		}
	}
}

// Discard resolves the target against the live snapshot and forwards
// the surviving records to the discard collaborator.
func (d *Dispatcher) Discard(target Target) {
	if d.discards == nil {
		return
	}
	files := d.resolve(target)
	if len(files) == 0 {
		return
	}
	d.discards.DiscardFiles(files)
}

// Ignore submits the target's paths as ignore patterns, one pattern per
// path for a batch and a single pattern otherwise.
func (d *Dispatcher) Ignore(target Target) {
	if d.ignores == nil {
		return
	}
	if target.Batch {
		patterns := make([]string, 0, len(target.Paths))
		for _, p := range target.Paths {
			if p != "" {
				patterns = append(patterns, p)
			}
		}
		if len(patterns) > 0 {
			d.ignores.AddIgnorePatterns(patterns...)
		}
		return
	}
	if target.Path != "" {
		d.ignores.AddIgnorePatterns(target.Path)
	}
}

func (d *Dispatcher) resolve(target Target) []models.ChangedFile {
	var fs *models.FileSet
	if d.snapshot != nil {
		fs = d.snapshot()
	}
	if fs.Len() == 0 {
		return nil
	}
	paths := target.Paths
	if !target.Batch {
		paths = []string{target.Path}
	}
	files := make([]models.ChangedFile, 0, len(paths))
	for _, p := range paths {
		if f, ok := fs.ByPath(p); ok {
			files = append(files, f)
		}
	}
	return files
}
