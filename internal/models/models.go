// Package models defines the data objects shared across lazychanges packages.
package models

// FileStatus classifies a changed file relative to HEAD.
type FileStatus int

// File status values, derived from git status codes.
const (
	StatusNew FileStatus = iota
	StatusModified
	StatusDeleted
	StatusRenamed
	StatusCopied
	StatusConflicted
	StatusUntracked
)

// String returns a short human-readable name for the status.
func (s FileStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusModified:
		return "modified"
	case StatusDeleted:
		return "deleted"
	case StatusRenamed:
		return "renamed"
	case StatusCopied:
		return "copied"
	case StatusConflicted:
		return "conflicted"
	case StatusUntracked:
		return "untracked"
	default:
		return "unknown"
	}
}

// Indicator returns the single-letter marker shown next to a file in the list.
func (s FileStatus) Indicator() string {
	switch s {
	case StatusNew:
		return "A"
	case StatusModified:
		return "M"
	case StatusDeleted:
		return "D"
	case StatusRenamed:
		return "R"
	case StatusCopied:
		return "C"
	case StatusConflicted:
		return "U"
	case StatusUntracked:
		return "?"
	default:
		return " "
	}
}

// IncludeState tracks how much of a file's change is included in the next commit.
type IncludeState int

// Include states. PartiallyIncluded covers hunk-level selection and only
// matters for the tri-state collapse; lazychanges never splits hunks itself.
const (
	Included IncludeState = iota
	Excluded
	PartiallyIncluded
)

// ChangedFile represents one entry of the working-directory changes list.
type ChangedFile struct {
	ID      string // stable within a FileSet snapshot
	Path    string // repository-relative
	OldPath string // previous path for renames and copies
	Status  FileStatus
	Include IncludeState
}
