package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chmouel/lazychanges/internal/models"
)

func newTestService() (*Service, *[]string) {
	messages := &[]string{}
	notify := func(message, severity string) {
		*messages = append(*messages, severity+": "+message)
	}
	notifyOnce := func(key, message, severity string) {
		notify(message, severity)
	}
	return NewService(notify, notifyOnce), messages
}

func TestParseStatusBranchHeaders(t *testing.T) {
	raw := "# branch.oid 1234567\n" +
		"# branch.head main\n" +
		"# branch.upstream origin/main\n" +
		"# branch.ab +2 -1\n"

	status := ParseStatus(raw)
	assert.Equal(t, "main", status.Branch)
	assert.Equal(t, "origin/main", status.Upstream)
	assert.Equal(t, 2, status.Ahead)
	assert.Equal(t, 1, status.Behind)
	assert.Empty(t, status.Files)
}

func TestParseStatusEntries(t *testing.T) {
	raw := "# branch.head main\n" +
		"1 .M N... 100644 100644 100644 aaa bbb cmd/main.go\n" +
		"1 A. N... 000000 100644 100644 000 ccc docs/new.md\n" +
		"1 .D N... 100644 100644 000000 ddd eee gone.txt\n" +
		"2 R. N... 100644 100644 100644 fff ggg R100 renamed.go\toriginal.go\n" +
		"u UU N... 100644 100644 100644 100644 hhh iii jjj conflict.go\n" +
		"? untracked.log\n"

	status := ParseStatus(raw)
	require.Len(t, status.Files, 6)

	assert.Equal(t, "cmd/main.go", status.Files[0].Path)
	assert.Equal(t, models.StatusModified, status.Files[0].Status)

	assert.Equal(t, models.StatusNew, status.Files[1].Status)
	assert.Equal(t, models.StatusDeleted, status.Files[2].Status)

	assert.Equal(t, "renamed.go", status.Files[3].Path)
	assert.Equal(t, "original.go", status.Files[3].OldPath)
	assert.Equal(t, models.StatusRenamed, status.Files[3].Status)

	assert.Equal(t, "conflict.go", status.Files[4].Path)
	assert.Equal(t, models.StatusConflicted, status.Files[4].Status)

	assert.Equal(t, "untracked.log", status.Files[5].Path)
	assert.Equal(t, models.StatusUntracked, status.Files[5].Status)

	for _, file := range status.Files {
		assert.Equal(t, file.Path, file.ID)
		assert.Equal(t, models.Included, file.Include)
	}
}

func TestParseStatusSkipsMalformedLines(t *testing.T) {
	raw := "1 .M\n" +
		"2 R. N... 100644 100644 100644 fff ggg R100\n" +
		"garbage\n" +
		"? valid.txt\n"

	status := ParseStatus(raw)
	require.Len(t, status.Files, 1)
	assert.Equal(t, "valid.txt", status.Files[0].Path)
}

func TestParseStatusEmpty(t *testing.T) {
	status := ParseStatus("")
	assert.Empty(t, status.Files)
	assert.Equal(t, "", status.Branch)

	status = ParseStatus("   \n")
	assert.Empty(t, status.Files)
}

func TestStatusFromXY(t *testing.T) {
	tests := []struct {
		xy   string
		want models.FileStatus
	}{
		{".M", models.StatusModified},
		{"M.", models.StatusModified},
		{"MM", models.StatusModified},
		{"A.", models.StatusNew},
		{"AM", models.StatusNew},
		{".D", models.StatusDeleted},
		{"R.", models.StatusRenamed},
		{"C.", models.StatusCopied},
		{"UU", models.StatusConflicted},
	}

	for _, tt := range tests {
		t.Run(tt.xy, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromXY(tt.xy))
		})
	}
}

func seedRepoRoot(s *Service, root string) {
	s.rootOnce.Do(func() { s.root = root })
}

func TestAddIgnorePatternsCreatesFile(t *testing.T) {
	dir := t.TempDir()
	svc, _ := newTestService()
	seedRepoRoot(svc, dir)

	err := svc.AddIgnorePatterns(context.Background(), dir, ".gitignore", "*.log", "build/")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, "*.log\nbuild/\n", string(data))
}

func TestAddIgnorePatternsAppendsAndRepairsNewline(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".gitignore")
	require.NoError(t, os.WriteFile(path, []byte("existing"), 0o644))

	svc, _ := newTestService()
	seedRepoRoot(svc, dir)

	err := svc.AddIgnorePatterns(context.Background(), dir, ".gitignore", "*.tmp")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "existing\n*.tmp\n", string(data))
}

func TestAddIgnorePatternsSkipsBlankPatterns(t *testing.T) {
	dir := t.TempDir()
	svc, _ := newTestService()
	seedRepoRoot(svc, dir)

	err := svc.AddIgnorePatterns(context.Background(), dir, ".gitignore", "  ", "")
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(dir, ".gitignore"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestAddIgnorePatternsCustomFile(t *testing.T) {
	dir := t.TempDir()
	svc, _ := newTestService()
	seedRepoRoot(svc, dir)

	err := svc.AddIgnorePatterns(context.Background(), dir, ".ignore", "node_modules/")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ".ignore"))
	require.NoError(t, err)
	assert.Equal(t, "node_modules/\n", string(data))
}

func TestRunGitRejectsNonGitCommands(t *testing.T) {
	svc, messages := newTestService()

	out := svc.RunGit(context.Background(), []string{"rm", "-rf", "/"}, "", []int{0}, true, false)
	assert.Empty(t, out)
	require.Len(t, *messages, 1)
	assert.Contains(t, (*messages)[0], "Unsupported command")
}

func TestRunCommandCheckedRejectsNonGitCommands(t *testing.T) {
	svc, messages := newTestService()

	ok := svc.RunCommandChecked(context.Background(), []string{"sh", "-c", "true"}, "", "oops")
	assert.False(t, ok)
	require.Len(t, *messages, 1)
	assert.Contains(t, (*messages)[0], "oops")
}

func TestCommitRejectsEmptyMessage(t *testing.T) {
	svc, messages := newTestService()

	ok := svc.Commit(context.Background(), "", "   ", []models.ChangedFile{{Path: "a.go"}})
	assert.False(t, ok)
	require.Len(t, *messages, 1)
	assert.Contains(t, (*messages)[0], "Commit message is empty")
}

func TestCommitRejectsEmptySelection(t *testing.T) {
	svc, messages := newTestService()

	ok := svc.Commit(context.Background(), "", "fix things", nil)
	assert.False(t, ok)
	require.Len(t, *messages, 1)
	assert.Contains(t, (*messages)[0], "Nothing selected")
}
