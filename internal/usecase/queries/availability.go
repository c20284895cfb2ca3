package queries

import (
	"context"
	"time"

	"shareit/internal/infra"
	"shareit/internal/pkg/clock"
)

// ApprovedBookingReader finds APPROVED bookings of an item owned by ownerID.
// Both return nil, nil when nothing matches.
type ApprovedBookingReader interface {
	// LastApproved: start < now, latest start first.
	LastApproved(ctx context.Context, itemID, ownerID int64, now time.Time) (*BookingRef, error)
	// NextApproved: start > now, earliest start first.
	NextApproved(ctx context.Context, itemID, ownerID int64, now time.Time) (*BookingRef, error)
}

type AvailabilityResolver interface {
	Resolve(ctx context.Context, itemID, viewerID int64) (last, next *BookingRef, err error)
}

type availabilityResolverImpl struct {
	items    ItemReadStore
	bookings ApprovedBookingReader
	clock    clock.Clock
}

func NewAvailabilityResolver(items ItemReadStore, bookings ApprovedBookingReader, clk clock.Clock) AvailabilityResolver {
	return &availabilityResolverImpl{items: items, bookings: bookings, clock: clk}
}

// Resolve returns nil, nil unless viewerID owns the item.
func (r *availabilityResolverImpl) Resolve(ctx context.Context, itemID, viewerID int64) (*BookingRef, *BookingRef, error) {
	item, err := r.items.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, nil
		}
		return nil, nil, err
	}
	if item.OwnerID != viewerID {
		return nil, nil, nil
	}

	now := r.clock.Now()
	last, err := r.bookings.LastApproved(ctx, itemID, viewerID, now)
	if err != nil {
		return nil, nil, err
	}
	next, err := r.bookings.NextApproved(ctx, itemID, viewerID, now)
	if err != nil {
		return nil, nil, err
	}
	return last, next, nil
}
