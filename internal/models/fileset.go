package models

// FileSet is an ordered snapshot of the changed files in the working
// directory. The order is the display order. A FileSet is treated as
// immutable once built; state changes produce a fresh snapshot.
type FileSet struct {
	files  []ChangedFile
	byID   map[string]int
	byPath map[string]int
}

// NewFileSet builds a snapshot from the given files, keeping their order.
// Files with an empty path are skipped; on duplicate IDs the first entry wins.
func NewFileSet(files []ChangedFile) *FileSet {
	fs := &FileSet{
		files:  make([]ChangedFile, 0, len(files)),
		byID:   make(map[string]int, len(files)),
		byPath: make(map[string]int, len(files)),
	}
	for _, f := range files {
		if f.Path == "" {
			continue
		}
		if _, ok := fs.byID[f.ID]; ok {
			continue
		}
		fs.files = append(fs.files, f)
		idx := len(fs.files) - 1
		fs.byID[f.ID] = idx
		fs.byPath[f.Path] = idx
	}
	return fs
}

// Len returns the number of files in the snapshot.
func (fs *FileSet) Len() int {
	if fs == nil {
		return 0
	}
	return len(fs.files)
}

// Files returns the ordered file records. Callers must not mutate the
// returned slice.
func (fs *FileSet) Files() []ChangedFile {
	if fs == nil {
		return nil
	}
	return fs.files
}

// At returns the file at the given row index.
func (fs *FileSet) At(idx int) (ChangedFile, bool) {
	if fs == nil || idx < 0 || idx >= len(fs.files) {
		return ChangedFile{}, false
	}
	return fs.files[idx], true
}

// ByID looks up a file by its snapshot identifier.
func (fs *FileSet) ByID(id string) (ChangedFile, bool) {
	if fs == nil {
		return ChangedFile{}, false
	}
	idx, ok := fs.byID[id]
	if !ok {
		return ChangedFile{}, false
	}
	return fs.files[idx], true
}

// ByPath looks up a file by its repository-relative path.
func (fs *FileSet) ByPath(path string) (ChangedFile, bool) {
	if fs == nil {
		return ChangedFile{}, false
	}
	idx, ok := fs.byPath[path]
	if !ok {
		return ChangedFile{}, false
	}
	return fs.files[idx], true
}

// IndexOfID returns the row index for an identifier, or -1 when the file
// is no longer part of the snapshot.
func (fs *FileSet) IndexOfID(id string) int {
	if fs == nil {
		return -1
	}
	idx, ok := fs.byID[id]
	if !ok {
		return -1
	}
	return idx
}
