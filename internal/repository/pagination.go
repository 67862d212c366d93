package repository

// Page describes one page of a paginated listing.  Out of range page
// numbers are clamped to the last page and an empty result still has one
// page, so Number is always within [1, NumPages].
type Page struct {
	Number   int   `json:"page"`
	Size     int   `json:"page_size"`
	NumPages int   `json:"num_pages"`
	Total    int64 `json:"total"`
}

// NewPage clamps requested against total rows split into pages of size.
func NewPage(requested int, total int64, size int) Page {
	if size < 1 {
		size = 1
	}
	pages := int((total + int64(size) - 1) / int64(size))
	if pages < 1 {
		pages = 1
	}
	n := requested
	if n < 1 || n > pages {
		n = pages
	}
	return Page{Number: n, Size: size, NumPages: pages, Total: total}
}

func (p Page) Offset() int { return (p.Number - 1) * p.Size }

func (p Page) HasNext() bool     { return p.Number < p.NumPages }
func (p Page) HasPrevious() bool { return p.Number > 1 }
