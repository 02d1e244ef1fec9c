package changes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmouel/lazychanges/internal/models"
)

type fakeCollaborators struct {
	discarded [][]models.ChangedFile
	patterns  [][]string
	revealed  []string
	opened    []string
}

func (f *fakeCollaborators) DiscardFiles(files []models.ChangedFile) {
	f.discarded = append(f.discarded, files)
}

func (f *fakeCollaborators) AddIgnorePatterns(patterns ...string) {
	f.patterns = append(f.patterns, patterns)
}

func (f *fakeCollaborators) RevealInFileManager(path string) {
	f.revealed = append(f.revealed, path)
}

func (f *fakeCollaborators) OpenWithDefaultProgram(path string) {
	f.opened = append(f.opened, path)
}

func newTestDispatcher(fs *models.FileSet) (*Dispatcher, *fakeCollaborators) {
	collab := &fakeCollaborators{}
	d := NewDispatcher(func() *models.FileSet { return fs }, collab, collab, collab)
	return d, collab
}

func TestDiscardResolvesAgainstLiveSnapshot(t *testing.T) {
	live := fileSet(
		changed("1", "a.txt", models.Included),
		changed("2", "b.txt", models.Included),
	)
	collab := &fakeCollaborators{}
	d := NewDispatcher(func() *models.FileSet { return live }, collab, collab, collab)

	// The menu was built against an older snapshot that still had c.txt.
	d.Discard(BatchTarget([]string{"a.txt", "c.txt", "b.txt"}))

	require.Len(t, collab.discarded, 1)
	paths := make([]string, 0, len(collab.discarded[0]))
	for _, f := range collab.discarded[0] {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{"a.txt", "b.txt"}, paths)
}

func TestDiscardSinglePathMissIsSilentNoop(t *testing.T) {
	d, collab := newTestDispatcher(fileSet(changed("1", "a.txt", models.Included)))

	d.Discard(SingleTarget("vanished.txt"))

	assert.Empty(t, collab.discarded)
}

func TestDiscardSinglePath(t *testing.T) {
	d, collab := newTestDispatcher(fileSet(changed("1", "a.txt", models.Included)))

	d.Discard(SingleTarget("a.txt"))

	require.Len(t, collab.discarded, 1)
	require.Len(t, collab.discarded[0], 1)
	assert.Equal(t, "a.txt", collab.discarded[0][0].Path)
}

func TestDiscardAgainstEmptySnapshot(t *testing.T) {
	d, collab := newTestDispatcher(models.NewFileSet(nil))
	d.Discard(BatchTarget([]string{"a.txt"}))
	assert.Empty(t, collab.discarded)
}

func TestDispatchSkipsDisabledActions(t *testing.T) {
	d, collab := newTestDispatcher(fileSet(changed("1", "a.txt", models.Included)))

	d.Dispatch(MenuAction{Kind: ActionDiscard, Enabled: false, Target: SingleTarget("a.txt")})
	d.Dispatch(MenuAction{Kind: ActionSeparator, Enabled: true})

	assert.Empty(t, collab.discarded)
	assert.Empty(t, collab.patterns)
}

func TestDispatchIgnoreSingleAndBatch(t *testing.T) {
	d, collab := newTestDispatcher(fileSet(changed("1", "a.txt", models.Included)))

	d.Dispatch(MenuAction{Kind: ActionIgnore, Enabled: true, Target: SingleTarget("docs/readme.md")})
	d.Dispatch(MenuAction{Kind: ActionIgnore, Enabled: true, Target: BatchTarget([]string{"a.txt", "b.txt"})})

	require.Len(t, collab.patterns, 2)
	assert.Equal(t, []string{"docs/readme.md"}, collab.patterns[0])
	assert.Equal(t, []string{"a.txt", "b.txt"}, collab.patterns[1])
}

func TestDispatchIgnorePattern(t *testing.T) {
	d, collab := newTestDispatcher(fileSet(changed("1", "x.png", models.Included)))

	d.Dispatch(MenuAction{Kind: ActionIgnorePattern, Enabled: true, Pattern: "*.png"})

	require.Len(t, collab.patterns, 1)
	assert.Equal(t, []string{"*.png"}, collab.patterns[0])
}

func TestDispatchShellActions(t *testing.T) {
	d, collab := newTestDispatcher(fileSet(changed("1", "a.txt", models.Included)))

	d.Dispatch(MenuAction{Kind: ActionReveal, Enabled: true, Target: SingleTarget("a.txt")})
	d.Dispatch(MenuAction{Kind: ActionOpen, Enabled: true, Target: SingleTarget("a.txt")})

	assert.Equal(t, []string{"a.txt"}, collab.revealed)
	assert.Equal(t, []string{"a.txt"}, collab.opened)
}

func TestDispatchDoesNotDeduplicateRequests(t *testing.T) {
	d, collab := newTestDispatcher(fileSet(changed("1", "a.txt", models.Included)))

	action := MenuAction{Kind: ActionDiscard, Enabled: true, Target: SingleTarget("a.txt")}
	d.Dispatch(action)
	d.Dispatch(action)

	assert.Len(t, collab.discarded, 2)
}

func TestDispatcherWithoutCollaboratorsIsNoop(t *testing.T) {
	d := NewDispatcher(nil, nil, nil, nil)
	d.Dispatch(MenuAction{Kind: ActionDiscard, Enabled: true, Target: SingleTarget("a.txt")})
	d.Dispatch(MenuAction{Kind: ActionReveal, Enabled: true, Target: SingleTarget("a.txt")})
	d.Dispatch(MenuAction{Kind: ActionIgnore, Enabled: true, Target: SingleTarget("a.txt")})
}
