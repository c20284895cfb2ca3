package queries

import "shareit/internal/pkg/errs"

var ErrInvalidPage = errs.NewKind("from must be >= 0 and size must be >= 1", errs.ErrInvalidInput)

// Page is an offset window. The offset snaps down to a multiple of Size.
type Page struct {
	From int
	Size int
}

func NewPage(from, size int) (Page, error) {
	if from < 0 || size < 1 {
		return Page{}, ErrInvalidPage
	}
	return Page{From: from, Size: size}, nil
}

// Number is the zero-based page index, from / size using floor division.
func (p Page) Number() int {
	return p.From / p.Size
}

func (p Page) Offset() int {
	return p.Number() * p.Size
}

func (p Page) Limit() int {
	return p.Size
}
