package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPathHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/logs/debug.log")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs", "debug.log"), got)

	got, err = ExpandPath("~")
	require.NoError(t, err)
	assert.Equal(t, home, got)
}

func TestExpandPathEmpty(t *testing.T) {
	got, err := ExpandPath("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTruncateMiddle(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short.txt", 20, "short.txt"},
		{"internal/app/very/long/path/file.go", 15, "interna…file.go"},
		{"abcdef", 1, "…"},
		{"abcdef", 0, ""},
	}
	for _, tt := range tests {
		got := TruncateMiddle(tt.input, tt.maxLen)
		assert.Equal(t, tt.expected, got, "TruncateMiddle(%q, %d)", tt.input, tt.maxLen)
		assert.LessOrEqual(t, len([]rune(got)), max(tt.maxLen, 0))
	}
}
