package changes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chmouel/lazychanges/internal/models"
)

func TestRowIndicesPreservesSelectionOrder(t *testing.T) {
	fs := fileSet(
		changed("a", "one.txt", models.Included),
		changed("b", "two.txt", models.Included),
		changed("c", "three.txt", models.Included),
	)

	assert.Equal(t, []int{2, 0}, RowIndices([]string{"c", "a"}, fs))
	assert.Equal(t, []int{0, 1, 2}, RowIndices([]string{"a", "b", "c"}, fs))
}

func TestRowIndicesDropsVanishedIDs(t *testing.T) {
	fs := fileSet(
		changed("a", "one.txt", models.Included),
		changed("b", "two.txt", models.Included),
	)

	ids := []string{"gone", "b", "also-gone", "a"}
	rows := RowIndices(ids, fs)

	// Absent identifiers shorten the output, they never produce a
	// sentinel index.
	assert.Equal(t, []int{1, 0}, rows)
	assert.Len(t, rows, len(ids)-2)
	for _, row := range rows {
		assert.GreaterOrEqual(t, row, 0)
		assert.Less(t, row, fs.Len())
	}
}

func TestRowIndicesEmptyInputs(t *testing.T) {
	fs := fileSet(changed("a", "one.txt", models.Included))

	assert.Nil(t, RowIndices(nil, fs))
	assert.Nil(t, RowIndices([]string{"a"}, models.NewFileSet(nil)))
	assert.Nil(t, RowIndices([]string{"a"}, nil))
}

func TestResolveIDs(t *testing.T) {
	fs := fileSet(
		changed("a", "one.txt", models.Included),
		changed("b", "two.txt", models.Excluded),
	)

	files := ResolveIDs([]string{"b", "missing", "a"}, fs)
	if assert.Len(t, files, 2) {
		assert.Equal(t, "two.txt", files[0].Path)
		assert.Equal(t, "one.txt", files[1].Path)
	}
}
