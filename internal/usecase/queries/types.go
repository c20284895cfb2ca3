package queries

import (
	"time"

	"shareit/internal/domain/booking"
)

type UserRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ItemRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BookingView pairs a booking with its item and booker snapshots
type BookingView struct {
	ID      int64          `json:"id"`
	Start   time.Time      `json:"start"`
	End     time.Time      `json:"end"`
	Status  booking.Status `json:"status"`
	Item    ItemRef        `json:"item"`
	Booker  UserRef        `json:"booker"`
	OwnerID int64          `json:"-"`
}

// BookingRef is the short form attached to item views as last/next booking
type BookingRef struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"booker_id"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

type CommentView struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"author_name"`
	Created    time.Time `json:"created"`
}

type ItemView struct {
	ID          int64          `json:"id"`
	OwnerID     int64          `json:"-"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Available   bool           `json:"available"`
	LastBooking *BookingRef    `json:"last_booking"`
	NextBooking *BookingRef    `json:"next_booking"`
	Comments    []*CommentView `json:"comments"`
}

// Role selects whose bookings a listing is about.
type Role int

const (
	RoleBooker Role = iota
	RoleItemOwner
)

func (r Role) String() string {
	switch r {
	case RoleBooker:
		return "BOOKER"
	case RoleItemOwner:
		return "ITEM_OWNER"
	default:
		return "UNKNOWN"
	}
}

// BookingFilter is what a store needs to run one listing query.
type BookingFilter struct {
	Role   Role
	State  booking.State
	UserID int64
	Now    time.Time
	Limit  int
	Offset int
}
