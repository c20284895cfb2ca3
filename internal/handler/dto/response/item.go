package response

import (
	"time"

	"shareit/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type BookingShortResponse struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

type CommentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type ItemResponse struct {
	ID          int64                 `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Available   bool                  `json:"available"`
	LastBooking *BookingShortResponse `json:"lastBooking"`
	NextBooking *BookingShortResponse `json:"nextBooking"`
	Comments    []CommentResponse     `json:"comments"`
}

func FromItemView(v *queries.ItemView) (*ItemResponse, error) {
	res := &ItemResponse{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Available:   v.Available,
		LastBooking: fromBookingRef(v.LastBooking),
		NextBooking: fromBookingRef(v.NextBooking),
		Comments:    make([]CommentResponse, 0, len(v.Comments)),
	}
	if len(v.Comments) == 0 {
		return res, nil
	}
	if err := copier.Copy(&res.Comments, v.Comments); err != nil {
		return nil, err
	}
	return res, nil
}

func FromItemViews(views []*queries.ItemView) ([]*ItemResponse, error) {
	res := make([]*ItemResponse, len(views))
	for i, v := range views {
		item, err := FromItemView(v)
		if err != nil {
			return nil, err
		}
		res[i] = item
	}
	return res, nil
}

func fromBookingRef(ref *queries.BookingRef) *BookingShortResponse {
	if ref == nil {
		return nil
	}
	return &BookingShortResponse{
		ID:       ref.ID,
		BookerID: ref.BookerID,
		Start:    ref.Start,
		End:      ref.End,
	}
}
