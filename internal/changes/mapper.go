package changes

import "github.com/chmouel/lazychanges/internal/models"

// RowIndices maps selected file identifiers onto row indices in the
// given snapshot. The output preserves the order of ids; identifiers
// that are no longer part of the snapshot contribute nothing. A file
// can vanish between the user's click and the next render (discarded,
// committed externally), and a stale selection must neither crash the
// highlight pass nor point at the wrong row.
func RowIndices(ids []string, fs *models.FileSet) []int {
	if len(ids) == 0 || fs.Len() == 0 {
		return nil
	}
	rows := make([]int, 0, len(ids))
	for _, id := range ids {
		if idx := fs.IndexOfID(id); idx >= 0 {
			rows = append(rows, idx)
		}
	}
	return rows
}

// ResolveIDs maps selected identifiers onto their file records, in the
// order of ids, dropping identifiers the snapshot no longer contains.
func ResolveIDs(ids []string, fs *models.FileSet) []models.ChangedFile {
	if len(ids) == 0 || fs.Len() == 0 {
		return nil
	}
	files := make([]models.ChangedFile, 0, len(ids))
	for _, id := range ids {
		if f, ok := fs.ByID(id); ok {
			files = append(files, f)
		}
	}
	return files
}
