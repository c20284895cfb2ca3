package commands

import "time"

// CreateBookingRequest carries the raw payload; Start and End may be absent.
type CreateBookingRequest struct {
	ItemID int64
	Start  *time.Time
	End    *time.Time
}
