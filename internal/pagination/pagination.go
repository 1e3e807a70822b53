// Package pagination slices ordered sequences into fixed-size windows.
package pagination

type Page[T any] struct {
	Items   []T
	Page    int // 1-based, clamped to >= 1
	Pages   int // ceil(len/perPage); 0 for an empty sequence
	PerPage int
}

// Paginate returns the window of items for the given 1-based page. A page
// at or below 0 is treated as page 1; a page past the end yields an empty
// window, not an error.
func Paginate[T any](items []T, page, perPage int) Page[T] {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}
	pages := (len(items) + perPage - 1) / perPage

	start := (page - 1) * perPage
	if start > len(items) {
		start = len(items)
	}
	stop := start + perPage
	if stop > len(items) {
		stop = len(items)
	}
	return Page[T]{Items: items[start:stop], Page: page, Pages: pages, PerPage: perPage}
}

func (p Page[T]) HasPrev() bool { return p.Page > 1 }
func (p Page[T]) HasNext() bool { return p.Page < p.Pages }

// PrevPage and NextPage report the neighbouring page numbers; 0 means none.
func (p Page[T]) PrevPage() int {
	if p.HasPrev() {
		return p.Page - 1
	}
	return 0
}

func (p Page[T]) NextPage() int {
	if p.HasNext() {
		return p.Page + 1
	}
	return 0
}
