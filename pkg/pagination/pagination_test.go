package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	testCases := []struct {
		name         string
		page         int
		limit        int
		expectedDocs int
		hasPrev      bool
		hasNext      bool
		prevPage     int
		nextPage     int
	}{
		{name: "first page", page: 1, limit: 10, expectedDocs: 10, hasNext: true, nextPage: 2},
		{name: "middle page", page: 2, limit: 10, expectedDocs: 10, hasPrev: true, prevPage: 1, hasNext: true, nextPage: 3},
		{name: "last partial page", page: 3, limit: 10, expectedDocs: 5, hasPrev: true, prevPage: 2},
		{name: "page past the end", page: 4, limit: 10, expectedDocs: 0, hasPrev: true, prevPage: 3},
		{name: "defaults applied", page: 0, limit: 0, expectedDocs: 10, hasNext: true, nextPage: 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			page := Paginate(items, tc.page, tc.limit)

			assert.Len(t, page.Docs, tc.expectedDocs)
			assert.Equal(t, 25, page.TotalDocs)
			assert.Equal(t, 3, page.TotalPages)
			assert.Equal(t, tc.hasPrev, page.HasPrevPage)
			assert.Equal(t, tc.hasNext, page.HasNextPage)

			if tc.hasPrev {
				assert.NotNil(t, page.PrevPage)
				assert.Equal(t, tc.prevPage, *page.PrevPage)
			} else {
				assert.Nil(t, page.PrevPage)
			}

			if tc.hasNext {
				assert.NotNil(t, page.NextPage)
				assert.Equal(t, tc.nextPage, *page.NextPage)
			} else {
				assert.Nil(t, page.NextPage)
			}
		})
	}
}

func TestPaginatePreservesOrder(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	page := Paginate(items, 2, 2)

	assert.Equal(t, []string{"c", "d"}, page.Docs)
}

func TestPaginateEmptyCollection(t *testing.T) {
	page := Paginate([]int{}, 1, 10)

	assert.Empty(t, page.Docs)
	assert.Equal(t, 0, page.TotalDocs)
	assert.Equal(t, 0, page.TotalPages)
	assert.False(t, page.HasPrevPage)
	assert.False(t, page.HasNextPage)
}

func TestNewPageMatchesPaginateMetadata(t *testing.T) {
	items := make([]int, 25)
	inMemory := Paginate(items, 2, 10)
	precut := NewPage(items[10:20], 25, 2, 10)

	assert.Equal(t, inMemory.TotalPages, precut.TotalPages)
	assert.Equal(t, inMemory.HasPrevPage, precut.HasPrevPage)
	assert.Equal(t, inMemory.HasNextPage, precut.HasNextPage)
	assert.Equal(t, *inMemory.NextPage, *precut.NextPage)
	assert.Equal(t, *inMemory.PrevPage, *precut.PrevPage)
}
