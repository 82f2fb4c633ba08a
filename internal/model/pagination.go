package model

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Pagination describes one page of a result set.
type Pagination struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasPrev bool  `json:"has_prev"`
	HasNext bool  `json:"has_next"`
	PrevNum *int  `json:"prev_num"`
	NextNum *int  `json:"next_num"`
}

// NewPagination computes page metadata. A page past the end is valid and
// simply has no items.
func NewPagination(page, perPage int, total int64) Pagination {
	p := Pagination{Page: page, PerPage: perPage, Total: total}
	if perPage > 0 {
		p.Pages = int((total + int64(perPage) - 1) / int64(perPage))
	}
	p.HasPrev = page > 1
	p.HasNext = page < p.Pages
	if p.HasPrev {
		prev := page - 1
		p.PrevNum = &prev
	}
	if p.HasNext {
		next := page + 1
		p.NextNum = &next
	}
	return p
}

// Offset is the number of rows to skip for this page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// PageNumbers lists the page numbers to render in a pager.
func (p Pagination) PageNumbers() []int {
	nums := make([]int, 0, p.Pages)
	for i := 1; i <= p.Pages; i++ {
		nums = append(nums, i)
	}
	return nums
}

// LinePage is one page of lines.
type LinePage struct {
	Items      []Line
	Pagination Pagination
}
