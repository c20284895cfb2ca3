package commands

import (
	"context"
	"log/slog"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
	"shareit/internal/pkg/metrics"
	"shareit/internal/usecase/queries"
	"shareit/internal/usecase/shared"
)

type BookingCommands interface {
	Create(ctx context.Context, req CreateBookingRequest, userID int64) (*queries.BookingView, error)
	Decide(ctx context.Context, bookingID int64, approved bool, actorID int64) (*queries.BookingView, error)
}

type bookingUseCaseImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	logger *slog.Logger
}

func NewBookingUseCase(uow shared.UnitOfWork, clk clock.Clock, logger *slog.Logger) BookingCommands {
	return &bookingUseCaseImpl{uow: uow, clock: clk, logger: logger}
}

// Create validates timestamps before touching storage, then resolves item and
// booker inside the transaction and persists a WAITING booking.
func (uc *bookingUseCaseImpl) Create(ctx context.Context, req CreateBookingRequest, userID int64) (*queries.BookingView, error) {
	period, err := booking.NewPeriod(req.Start, req.End, uc.clock.Now())
	if err != nil {
		return nil, err
	}

	view, err := shared.WithinResult(ctx, uc.uow, func(ctx context.Context, tx shared.Tx) (*queries.BookingView, error) {
		item, derr := tx.Reads().ItemByID(ctx, req.ItemID)
		if derr != nil {
			return nil, notFoundOr(derr, "item with id %d not found", req.ItemID)
		}
		booker, derr := tx.Reads().UserByID(ctx, userID)
		if derr != nil {
			return nil, notFoundOr(derr, "user with id %d not found", userID)
		}

		b, derr := booking.NewBooking(item.Spec(), booker.ID, period)
		if derr != nil {
			return nil, derr
		}

		id, derr := tx.Bookings().Create(ctx, tx.DB(), b)
		if derr != nil {
			return nil, derr
		}
		b.AssignID(id)

		return &queries.BookingView{
			ID:      b.ID(),
			Start:   b.Period().Start(),
			End:     b.Period().End(),
			Status:  b.Status(),
			Item:    queries.ItemRef{ID: item.ID, Name: item.Name},
			Booker:  queries.UserRef{ID: booker.ID, Name: booker.Name},
			OwnerID: item.OwnerID,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	metrics.IncBookingCreated()
	uc.logger.Info("booking created",
		"booking_id", view.ID,
		"item_id", view.Item.ID,
		"booker_id", view.Booker.ID)
	return view, nil
}

// Decide re-checks the status under a row lock so two concurrent decisions
// cannot both pass the APPROVED guard.
func (uc *bookingUseCaseImpl) Decide(ctx context.Context, bookingID int64, approved bool, actorID int64) (*queries.BookingView, error) {
	view, err := shared.WithinResult(ctx, uc.uow, func(ctx context.Context, tx shared.Tx) (*queries.BookingView, error) {
		snap, derr := tx.Reads().BookingForUpdate(ctx, bookingID)
		if derr != nil {
			return nil, notFoundOr(derr, "booking with id %d not found", bookingID)
		}
		if snap.OwnerID != actorID {
			return nil, errs.NotFoundf("user with id %d is not the owner of item %d", actorID, snap.ItemID)
		}

		b := booking.ReconstructBooking(snap.ID, snap.ItemID, snap.BookerID,
			booking.ReconstructPeriod(snap.Start, snap.End), snap.Status)
		if derr = b.Decide(approved); derr != nil {
			return nil, derr
		}
		if derr = tx.Bookings().UpdateStatus(ctx, tx.DB(), b.ID(), b.Status()); derr != nil {
			return nil, derr
		}

		return &queries.BookingView{
			ID:      b.ID(),
			Start:   b.Period().Start(),
			End:     b.Period().End(),
			Status:  b.Status(),
			Item:    queries.ItemRef{ID: snap.ItemID, Name: snap.ItemName},
			Booker:  queries.UserRef{ID: snap.BookerID, Name: snap.BookerName},
			OwnerID: snap.OwnerID,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	metrics.IncBookingDecision(view.Status.String())
	uc.logger.Info("booking decided",
		"booking_id", view.ID,
		"status", view.Status.String(),
		"actor_id", actorID)
	return view, nil
}

func notFoundOr(err error, format string, args ...any) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.NotFoundf(format, args...)
	}
	return err
}
