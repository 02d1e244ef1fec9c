package changes

import "github.com/chmouel/lazychanges/internal/models"

// AggregateState is the tri-state inclusion summary over a FileSet,
// rendered as the header checkbox of the changes list.
type AggregateState int

// Aggregate inclusion states.
const (
	IncludeNone AggregateState = iota
	IncludeAll
	IncludeMixed
)

// String returns a short name for the aggregate state.
func (a AggregateState) String() string {
	switch a {
	case IncludeAll:
		return "all"
	case IncludeMixed:
		return "mixed"
	default:
		return "none"
	}
}

// IncludeMutator is the collaborator that owns per-file inclusion state.
// Implementations are expected to treat unknown paths as a no-op.
type IncludeMutator interface {
	SetAllIncluded(include bool)
	SetIncluded(path string, include bool)
}

// SelectionModel derives the aggregate checkbox state from a FileSet
// snapshot and forwards inclusion toggles. It keeps no state of its own.
type SelectionModel struct {
	mutator IncludeMutator
}

// NewSelectionModel wires a selection model to its inclusion collaborator.
func NewSelectionModel(mutator IncludeMutator) *SelectionModel {
	return &SelectionModel{mutator: mutator}
}

// AggregateState recomputes the tri-state summary from the per-file
// states. An empty snapshot reports IncludeNone so the header checkbox
// renders unchecked.
func (s *SelectionModel) AggregateState(fs *models.FileSet) AggregateState {
	return Aggregate(fs)
}

// Aggregate is the pure derivation behind SelectionModel.AggregateState.
func Aggregate(fs *models.FileSet) AggregateState {
	if fs.Len() == 0 {
		return IncludeNone
	}
	allIncluded := true
	allExcluded := true
	for _, f := range fs.Files() {
		switch f.Include {
		case models.Included:
			allExcluded = false
		case models.Excluded:
			allIncluded = false
		default:
			allIncluded = false
			allExcluded = false
		}
		if !allIncluded && !allExcluded {
			return IncludeMixed
		}
	}
	if allIncluded {
		return IncludeAll
	}
	return IncludeNone
}

// ToggleAll asks the collaborator to flip every file's inclusion.
func (s *SelectionModel) ToggleAll(include bool) {
	if s.mutator == nil {
		return
	}
	s.mutator.SetAllIncluded(include)
}

// ToggleFile asks the collaborator to flip a single file's inclusion.
// A path that is not in the current snapshot is the collaborator's
// problem; it must treat it as a no-op.
func (s *SelectionModel) ToggleFile(path string, include bool) {
	if s.mutator == nil {
		return
	}
	s.mutator.SetIncluded(path, include)
}
