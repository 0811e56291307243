package viewmodel

import (
	"net/url"
	"strconv"

	"github.com/target/schoolsite-ui/internal/domain/content"
)

// PageLink is one numbered page control.
type PageLink struct {
	Number  int
	URL     string
	Current bool
}

// Pagination contains pagination metadata for list views.
type Pagination struct {
	Page       int
	PageSize   int
	TotalPages int
	TotalCount int
	HasPrev    bool
	HasNext    bool
	StartIndex int // 1-based, for "Showing x-y of n"
	EndIndex   int
	PrevURL    string
	NextURL    string
	Links      []PageLink
}

// NewPagination builds page controls for w. Links point at basePath with a
// "page" query parameter; other parameters in query are preserved.
func NewPagination(w content.Window, basePath string, query url.Values) Pagination {
	p := Pagination{
		Page:       w.Page,
		PageSize:   w.PageSize,
		TotalPages: w.TotalPages,
		TotalCount: w.TotalItems,
		HasPrev:    w.HasPrev(),
		HasNext:    w.HasNext(),
	}
	if w.End > w.Start {
		p.StartIndex = w.Start + 1
		p.EndIndex = w.End
	}

	link := func(n int) string {
		q := url.Values{}
		for k, v := range query {
			q[k] = v
		}
		q.Set("page", strconv.Itoa(n))
		return basePath + "?" + q.Encode()
	}
	if p.HasPrev {
		p.PrevURL = link(w.Page - 1)
	}
	if p.HasNext {
		p.NextURL = link(w.Page + 1)
	}
	for _, n := range w.Pages() {
		p.Links = append(p.Links, PageLink{Number: n, URL: link(n), Current: n == w.Page})
	}
	return p
}

// Show reports whether the controls are worth rendering.
func (p Pagination) Show() bool { return p.TotalPages > 1 }
