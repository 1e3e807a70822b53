package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shopbot/internal/pagination"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPageCountAndUnion(t *testing.T) {
	cases := []struct {
		n, perPage, pages int
	}{
		{0, 8, 0},
		{1, 8, 1},
		{8, 8, 1},
		{9, 8, 2},
		{16, 8, 2},
		{17, 8, 3},
		{5, 1, 5},
		{7, 3, 3},
	}
	for _, c := range cases {
		items := seq(c.n)
		first := pagination.Paginate(items, 1, c.perPage)
		assert.Equal(t, c.pages, first.Pages, "n=%d per=%d", c.n, c.perPage)

		// every item appears exactly once, in order, across all pages
		var union []int
		for p := 1; p <= first.Pages; p++ {
			union = append(union, pagination.Paginate(items, p, c.perPage).Items...)
		}
		assert.Equal(t, items, seq(c.n)) // input untouched
		if c.n == 0 {
			assert.Empty(t, union)
		} else {
			assert.Equal(t, items, union)
		}
	}
}

func TestPageClampedToOne(t *testing.T) {
	p := pagination.Paginate(seq(10), 0, 4)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, []int{0, 1, 2, 3}, p.Items)

	p = pagination.Paginate(seq(10), -5, 4)
	assert.Equal(t, 1, p.Page)
}

func TestPageBeyondEndIsEmpty(t *testing.T) {
	p := pagination.Paginate(seq(10), 9, 4)
	assert.Empty(t, p.Items)
	assert.Equal(t, 3, p.Pages)
	assert.True(t, p.HasPrev())
	assert.False(t, p.HasNext())
}

func TestPrevNext(t *testing.T) {
	p := pagination.Paginate(seq(20), 2, 8)
	assert.True(t, p.HasPrev())
	assert.True(t, p.HasNext())
	assert.Equal(t, 1, p.PrevPage())
	assert.Equal(t, 3, p.NextPage())

	first := pagination.Paginate(seq(20), 1, 8)
	assert.False(t, first.HasPrev())
	assert.Equal(t, 0, first.PrevPage())

	last := pagination.Paginate(seq(20), 3, 8)
	assert.False(t, last.HasNext())
	assert.Equal(t, 0, last.NextPage())
	assert.Equal(t, []int{16, 17, 18, 19}, last.Items)
}
