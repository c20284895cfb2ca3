package request

import (
	"time"

	"shareit/internal/usecase/commands"
)

// Start and End stay pointers so a missing timestamp reaches the validator.
type CreateBookingRequest struct {
	ItemID int64      `json:"itemId" binding:"required"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

func (r CreateBookingRequest) ToCommand() commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		ItemID: r.ItemID,
		Start:  r.Start,
		End:    r.End,
	}
}

type DecideQuery struct {
	Approved *bool `form:"approved" binding:"required"`
}

type ListBookingsQuery struct {
	PageQuery
	State string `form:"state"`
}

// StateOrDefault falls back to ALL when the parameter is absent.
func (q ListBookingsQuery) StateOrDefault() string {
	if q.State == "" {
		return "ALL"
	}
	return q.State
}
