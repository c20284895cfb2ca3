package request

import "shareit/internal/pkg/ptr"

type PageQuery struct {
	From int  `form:"from" binding:"min=0"`
	Size *int `form:"size" binding:"omitempty,min=1"`
}

// Resolve applies the default size and the upper bound.
func (q PageQuery) Resolve(defaultSize, maxSize int) (from, size int, ok bool) {
	size = ptr.Deref(q.Size, defaultSize)
	if size > maxSize {
		return 0, 0, false
	}
	return q.From, size, true
}
