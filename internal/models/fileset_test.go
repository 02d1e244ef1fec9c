package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileSetKeepsOrder(t *testing.T) {
	fs := NewFileSet([]ChangedFile{
		{ID: "b", Path: "second.txt"},
		{ID: "a", Path: "first.txt"},
		{ID: "c", Path: "third.txt"},
	})

	require.Equal(t, 3, fs.Len())
	assert.Equal(t, "second.txt", fs.Files()[0].Path)
	assert.Equal(t, "first.txt", fs.Files()[1].Path)
	assert.Equal(t, "third.txt", fs.Files()[2].Path)
}

func TestNewFileSetSkipsInvalidEntries(t *testing.T) {
	fs := NewFileSet([]ChangedFile{
		{ID: "a", Path: "kept.txt"},
		{ID: "b", Path: ""},
		{ID: "a", Path: "duplicate-id.txt"},
	})

	require.Equal(t, 1, fs.Len())
	assert.Equal(t, "kept.txt", fs.Files()[0].Path)
}

func TestFileSetLookups(t *testing.T) {
	fs := NewFileSet([]ChangedFile{
		{ID: "a", Path: "one.txt", Status: StatusModified},
		{ID: "b", Path: "two.txt", Status: StatusDeleted},
	})

	byID, ok := fs.ByID("b")
	require.True(t, ok)
	assert.Equal(t, "two.txt", byID.Path)

	byPath, ok := fs.ByPath("one.txt")
	require.True(t, ok)
	assert.Equal(t, "a", byPath.ID)

	_, ok = fs.ByID("missing")
	assert.False(t, ok)
	_, ok = fs.ByPath("missing.txt")
	assert.False(t, ok)

	assert.Equal(t, 1, fs.IndexOfID("b"))
	assert.Equal(t, -1, fs.IndexOfID("missing"))

	at, ok := fs.At(0)
	require.True(t, ok)
	assert.Equal(t, "one.txt", at.Path)
	_, ok = fs.At(5)
	assert.False(t, ok)
}

func TestNilFileSetIsSafe(t *testing.T) {
	var fs *FileSet
	assert.Equal(t, 0, fs.Len())
	assert.Nil(t, fs.Files())
	assert.Equal(t, -1, fs.IndexOfID("a"))
	_, ok := fs.ByPath("a")
	assert.False(t, ok)
	_, ok = fs.ByID("a")
	assert.False(t, ok)
	_, ok = fs.At(0)
	assert.False(t, ok)
}
