package shared

import (
	"time"

	"shareit/internal/domain/booking"
)

// Write-side snapshots keep commands independent of read-side view types
type ItemSnapshot struct {
	ID        int64
	OwnerID   int64
	Name      string
	Available bool
}

type UserSnapshot struct {
	ID   int64
	Name string
}

type BookingSnapshot struct {
	ID         int64
	ItemID     int64
	ItemName   string
	OwnerID    int64
	BookerID   int64
	BookerName string
	Start      time.Time
	End        time.Time
	Status     booking.Status
}

func (s ItemSnapshot) Spec() booking.ItemSpec {
	return booking.ItemSpec{ID: s.ID, OwnerID: s.OwnerID, Available: s.Available}
}
