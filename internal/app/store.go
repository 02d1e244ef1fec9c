package app

import (
	"github.com/chmouel/lazychanges/internal/models"
)

// includeStore owns the per-path inclusion state across snapshot
// refreshes. Files default to included; toggles are recorded as
// overrides keyed by path so a refreshed snapshot keeps the user's
// choices. It implements changes.IncludeMutator.
type includeStore struct {
	defaultInclude bool
	overrides      map[string]bool
}

func newIncludeStore() *includeStore {
	return &includeStore{
		defaultInclude: true,
		overrides:      make(map[string]bool),
	}
}

// SetAllIncluded resets every file to the given state. Per-path
// overrides are cleared since they are all superseded.
func (s *includeStore) SetAllIncluded(include bool) {
	s.defaultInclude = include
	s.overrides = make(map[string]bool)
}

// SetIncluded records a per-path override. Unknown paths are accepted
// and swept out on the next prune.
func (s *includeStore) SetIncluded(path string, include bool) {
	if path == "" {
		return
	}
	s.overrides[path] = include
}

// Included reports the effective inclusion for a path.
func (s *includeStore) Included(path string) bool {
	if v, ok := s.overrides[path]; ok {
		return v
	}
	return s.defaultInclude
}

// Apply stamps the effective inclusion state onto freshly parsed files.
func (s *includeStore) Apply(files []models.ChangedFile) []models.ChangedFile {
	for i := range files {
		if s.Included(files[i].Path) {
			files[i].Include = models.Included
		} else {
			files[i].Include = models.Excluded
		}
	}
	return files
}

// Prune drops overrides for paths that are no longer in the snapshot.
func (s *includeStore) Prune(fs *models.FileSet) {
	for path := range s.overrides {
		if _, ok := fs.ByPath(path); !ok {
			delete(s.overrides, path)
		}
	}
}
