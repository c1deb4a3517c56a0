package views

import "fmt"

// numLinks is how many numbered links to show on each side of the current
// page.
const numLinks = 2

// Pagination describes the numbered navigation under a listing: total row
// count, page size, the current page anchor, and the list route numbers
// get appended to.
type Pagination struct {
	Total    int
	PerPage  int
	Current  int
	BasePath string
}

// PageLink is one numbered link in the navigation.
type PageLink struct {
	Number int
	Path   string
	Active bool
}

// TotalPages returns how many pages the listing spans; an empty listing
// still has one page.
func (p Pagination) TotalPages() int {
	if p.Total <= 0 || p.PerPage <= 0 {
		return 1
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}

// PagePath builds the path for a page number. Page one is the bare list
// route.
func (p Pagination) PagePath(n int) string {
	if n <= 1 {
		return p.BasePath
	}
	return fmt.Sprintf("%s/%d", p.BasePath, n)
}

// Pages returns the window of numbered links around the current page,
// clamped to the listing's bounds.
func (p Pagination) Pages() []PageLink {
	last := p.TotalPages()
	cur := p.Current
	if cur < 1 {
		cur = 1
	}
	if cur > last {
		cur = last
	}

	start := cur - numLinks
	if start < 1 {
		start = 1
	}
	end := cur + numLinks
	if end > last {
		end = last
	}

	links := make([]PageLink, 0, end-start+1)
	for n := start; n <= end; n++ {
		links = append(links, PageLink{Number: n, Path: p.PagePath(n), Active: n == cur})
	}
	return links
}

// ShowLinks reports whether navigation is worth drawing at all.
func (p Pagination) ShowLinks() bool {
	return p.TotalPages() > 1
}

func (p Pagination) HasPrev() bool {
	return p.Current > 1
}

func (p Pagination) HasNext() bool {
	return p.Current < p.TotalPages()
}

func (p Pagination) PrevPath() string {
	return p.PagePath(p.Current - 1)
}

func (p Pagination) NextPath() string {
	return p.PagePath(p.Current + 1)
}

// HasFirst reports whether a jump-to-first link is worth drawing: only when
// the numbered window no longer includes page one.
func (p Pagination) HasFirst() bool {
	return p.Current-numLinks > 1
}

// HasLast is the counterpart for the final page.
func (p Pagination) HasLast() bool {
	return p.Current+numLinks < p.TotalPages()
}

func (p Pagination) FirstPath() string {
	return p.PagePath(1)
}

func (p Pagination) LastPath() string {
	return p.PagePath(p.TotalPages())
}
