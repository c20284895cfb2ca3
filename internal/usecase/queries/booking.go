package queries

import (
	"context"
	"log/slog"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/pkg/clock"
	"shareit/internal/pkg/errs"
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id int64) (*BookingView, error)
	List(ctx context.Context, filter BookingFilter) ([]*BookingView, error)
}

// UserReadStore is the user directory as seen by the read side.
type UserReadStore interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type BookingQueries interface {
	GetBooking(ctx context.Context, id int64, actorID int64) (*BookingView, error)
	List(ctx context.Context, role Role, state booking.State, userID int64, page Page) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	repo   BookingReadStore
	users  UserReadStore
	clock  clock.Clock
	logger *slog.Logger
}

func NewBookingQueries(repo BookingReadStore, users UserReadStore, clk clock.Clock, logger *slog.Logger) BookingQueries {
	return &bookingQueriesImpl{repo: repo, users: users, clock: clk, logger: logger}
}

// GetBooking is visible to the booker and the item owner only.
func (q *bookingQueriesImpl) GetBooking(ctx context.Context, id int64, actorID int64) (*BookingView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.NotFoundf("booking with id %d not found", id)
		}
		return nil, err
	}
	if view.Booker.ID != actorID && view.OwnerID != actorID {
		return nil, errs.NotFoundf("booking with id %d is not available to user %d", id, actorID)
	}
	return view, nil
}

func (q *bookingQueriesImpl) List(ctx context.Context, role Role, state booking.State, userID int64, page Page) ([]*BookingView, error) {
	if err := requireUser(ctx, q.users, userID); err != nil {
		return nil, err
	}
	if page.Size < 1 {
		return nil, ErrInvalidPage
	}

	views, err := q.repo.List(ctx, BookingFilter{
		Role:   role,
		State:  state,
		UserID: userID,
		Now:    q.clock.Now(),
		Limit:  page.Limit(),
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, err
	}

	q.logger.Debug("bookings listed",
		"role", role.String(),
		"state", state.String(),
		"user_id", userID,
		"count", len(views))
	return views, nil
}

func requireUser(ctx context.Context, users UserReadStore, userID int64) error {
	ok, err := users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return errs.NotFoundf("user with id %d not found", userID)
	}
	return nil
}
