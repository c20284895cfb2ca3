//go:build unit || e2e

package builder

import (
	"time"

	"shareit/internal/domain/booking"
	reqdto "shareit/internal/handler/dto/request"
	"shareit/internal/pkg/ptr"
	"shareit/internal/usecase/commands"
	"shareit/internal/usecase/queries"
)

type BookingBuilder struct {
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

func NewBookingBuilder() *BookingBuilder {
	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second)
	return &BookingBuilder{
		ID:         1,
		ItemID:     10,
		ItemName:   "Drill",
		OwnerID:    1,
		BookerID:   2,
		BookerName: "booker",
		Start:      start,
		End:        start.Add(48 * time.Hour),
		Status:     booking.StatusWaiting,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithItem(itemID int64) *BookingBuilder {
	b.ItemID = itemID
	return b
}

func (b *BookingBuilder) WithPeriod(start, end time.Time) *BookingBuilder {
	b.Start = start
	b.End = end
	return b
}

func (b *BookingBuilder) WithStatus(status booking.Status) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ItemID: b.ItemID,
		Start:  ptr.To(b.Start),
		End:    ptr.To(b.End),
	}
}

func (b *BookingBuilder) BuildCommand() commands.CreateBookingRequest {
	return b.BuildCreateRequestDTO().ToCommand()
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:      b.ID,
		Start:   b.Start,
		End:     b.End,
		Status:  b.Status,
		Item:    queries.ItemRef{ID: b.ItemID, Name: b.ItemName},
		Booker:  queries.UserRef{ID: b.BookerID, Name: b.BookerName},
		OwnerID: b.OwnerID,
	}
}
