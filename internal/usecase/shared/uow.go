package shared

import (
	"context"

	"shareit/internal/domain/booking"
	"shareit/internal/infra/db"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Bookings() BookingRepository
	Reads() CommandReads
	DB() db.DBTX
}

// CommandReads are consistent with the surrounding transaction.
type CommandReads interface {
	ItemByID(ctx context.Context, id int64) (*ItemSnapshot, error)
	UserByID(ctx context.Context, id int64) (*UserSnapshot, error)
	// BookingForUpdate locks the booking row until the transaction ends.
	BookingForUpdate(ctx context.Context, id int64) (*BookingSnapshot, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (int64, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, id int64, status booking.Status) error
}
