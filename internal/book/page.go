package book

import (
	"errors"
	"fmt"
)

// DefaultPageSize is the number of contacts shown per page.
const DefaultPageSize = 3

var (
	// ErrLastPage is returned by Next on the last page.
	ErrLastPage = errors.New("already on the last page")

	// ErrFirstPage is returned by Prev on the first page.
	ErrFirstPage = errors.New("already on the first page")

	// ErrPageOutOfRange is returned by Goto for a page that does not exist.
	ErrPageOutOfRange = errors.New("page out of range")
)

// Pager tracks the current page over an ordered listing of a fixed length.
// It only does arithmetic; it never touches the book.
type Pager struct {
	total int
	size  int
	page  int // 1-based
}

// NewPager returns a pager on page 1 for total items. A size below 1 uses
// DefaultPageSize.
func NewPager(total, size int) *Pager {
	if size < 1 {
		size = DefaultPageSize
	}
	if total < 0 {
		total = 0
	}
	return &Pager{total: total, size: size, page: 1}
}

// Pages returns the number of pages, ceil(total/size). Zero items means
// zero pages.
func (p *Pager) Pages() int {
	return (p.total + p.size - 1) / p.size
}

// Page returns the current 1-based page number.
func (p *Pager) Page() int {
	return p.page
}

// Size returns the page size.
func (p *Pager) Size() int {
	return p.size
}

// Bounds returns the half-open index range [start, end) of the current page.
func (p *Pager) Bounds() (start, end int) {
	start = p.size * (p.page - 1)
	if start > p.total {
		start = p.total
	}
	end = start + p.size
	if end > p.total {
		end = p.total
	}
	return start, end
}

// Next advances one page. On the last page it returns ErrLastPage and
// stays put.
func (p *Pager) Next() error {
	if p.page >= p.Pages() {
		return ErrLastPage
	}
	p.page++
	return nil
}

// Prev goes back one page. On the first page it returns ErrFirstPage and
// stays put.
func (p *Pager) Prev() error {
	if p.page <= 1 {
		return ErrFirstPage
	}
	p.page--
	return nil
}

// Goto jumps to page n.
func (p *Pager) Goto(n int) error {
	if n < 1 || n > p.Pages() {
		return fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, n, p.Pages())
	}
	p.page = n
	return nil
}

// Window returns the items on the pager's current page.
func Window[T any](items []T, p *Pager) []T {
	start, end := p.Bounds()
	if end > len(items) {
		end = len(items)
	}
	if start > end {
		start = end
	}
	return items[start:end]
}
