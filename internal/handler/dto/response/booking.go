package response

import (
	"time"

	"shareit/internal/usecase/queries"
)

type RefResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID     int64       `json:"id"`
	Start  time.Time   `json:"start"`
	End    time.Time   `json:"end"`
	Status string      `json:"status"`
	Item   RefResponse `json:"item"`
	Booker RefResponse `json:"booker"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:     v.ID,
		Start:  v.Start,
		End:    v.End,
		Status: v.Status.String(),
		Item:   RefResponse{ID: v.Item.ID, Name: v.Item.Name},
		Booker: RefResponse{ID: v.Booker.ID, Name: v.Booker.Name},
	}
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	res := make([]*BookingResponse, len(views))
	for i, v := range views {
		res[i] = FromBookingView(v)
	}
	return res
}
