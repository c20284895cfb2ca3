package readstore

import (
	"context"
	"log/slog"
	"time"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/pkg/pgconv"
	"shareit/internal/usecase/queries"
	"shareit/internal/usecase/shared"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// statePredicates maps each listing state to its WHERE fragment. A nil
// fragment means no extra condition.
var statePredicates = map[booking.State]func(now time.Time) squirrel.Sqlizer{
	booking.StateAll: func(time.Time) squirrel.Sqlizer { return nil },
	booking.StateCurrent: func(now time.Time) squirrel.Sqlizer {
		return squirrel.And{
			squirrel.Lt{"b.start_date": now},
			squirrel.Gt{"b.end_date": now},
		}
	},
	booking.StatePast: func(now time.Time) squirrel.Sqlizer {
		return squirrel.Lt{"b.end_date": now}
	},
	booking.StateFuture: func(now time.Time) squirrel.Sqlizer {
		return squirrel.Gt{"b.start_date": now}
	},
	booking.StateWaiting: func(time.Time) squirrel.Sqlizer {
		return squirrel.Eq{"b.status": booking.StatusWaiting.String()}
	},
	booking.StateRejected: func(time.Time) squirrel.Sqlizer {
		return squirrel.Eq{"b.status": booking.StatusRejected.String()}
	},
}

var roleColumns = map[queries.Role]string{
	queries.RoleBooker:    "b.booker_id",
	queries.RoleItemOwner: "i.owner_id",
}

var bookingColumns = []string{
	"b.id", "b.start_date", "b.end_date", "b.status",
	"i.id", "i.name", "i.owner_id",
	"u.id", "u.name",
}

type BookingReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewBookingReadStore(dbtx db.DBTX, logger *slog.Logger) *BookingReadStore {
	return &BookingReadStore{db: dbtx, logger: logger}
}

func bookingSelect() squirrel.SelectBuilder {
	return psql.Select(bookingColumns...).
		From("bookings b").
		Join("items i ON i.id = b.item_id").
		Join("users u ON u.id = b.booker_id")
}

// HasStatePredicate reports whether listings for s can be built.
func HasStatePredicate(s booking.State) bool {
	_, ok := statePredicates[s]
	return ok
}

// BuildListQuery renders the listing SQL for filter. ok is false when the
// state or role has no mapping.
func BuildListQuery(filter queries.BookingFilter) (query string, args []any, ok bool, err error) {
	predicate, found := statePredicates[filter.State]
	if !found {
		return "", nil, false, nil
	}
	column, found := roleColumns[filter.Role]
	if !found {
		return "", nil, false, nil
	}

	q := bookingSelect().Where(squirrel.Eq{column: filter.UserID})
	if where := predicate(filter.Now); where != nil {
		q = q.Where(where)
	}
	q = q.OrderBy("b.start_date DESC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	query, args, err = q.ToSql()
	return query, args, true, err
}

func (r *BookingReadStore) FindByID(ctx context.Context, id int64) (*queries.BookingView, error) {
	query, args, err := bookingSelect().Where(squirrel.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build booking query", err)
	}

	view, err := scanBookingView(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "booking not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to get booking by id", err)
	}
	return view, nil
}

// List returns an empty page for a state without a predicate instead of
// failing the request.
func (r *BookingReadStore) List(ctx context.Context, filter queries.BookingFilter) ([]*queries.BookingView, error) {
	query, args, ok, err := BuildListQuery(filter)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build booking list query", err)
	}
	if !ok {
		r.logger.Error("no listing predicate for booking state",
			"state", filter.State.String(),
			"role", filter.Role.String())
		return []*queries.BookingView{}, nil
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list bookings", err)
	}
	defer rows.Close()

	views := make([]*queries.BookingView, 0, filter.Limit)
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan booking row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate booking rows", err)
	}
	return views, nil
}

func (r *BookingReadStore) LastApproved(ctx context.Context, itemID, ownerID int64, now time.Time) (*queries.BookingRef, error) {
	q := approvedSelect(itemID, ownerID).
		Where(squirrel.Lt{"b.start_date": now}).
		OrderBy("b.start_date DESC")
	return r.findRef(ctx, q)
}

func (r *BookingReadStore) NextApproved(ctx context.Context, itemID, ownerID int64, now time.Time) (*queries.BookingRef, error) {
	q := approvedSelect(itemID, ownerID).
		Where(squirrel.Gt{"b.start_date": now}).
		OrderBy("b.start_date ASC")
	return r.findRef(ctx, q)
}

func approvedSelect(itemID, ownerID int64) squirrel.SelectBuilder {
	return psql.Select("b.id", "b.booker_id", "b.start_date", "b.end_date").
		From("bookings b").
		Join("items i ON i.id = b.item_id").
		Where(squirrel.Eq{
			"b.item_id":  itemID,
			"i.owner_id": ownerID,
			"b.status":   booking.StatusApproved.String(),
		}).
		Limit(1)
}

func (r *BookingReadStore) findRef(ctx context.Context, q squirrel.SelectBuilder) (*queries.BookingRef, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build approved booking query", err)
	}

	var ref queries.BookingRef
	err = r.db.QueryRow(ctx, query, args...).Scan(&ref.ID, &ref.BookerID, &ref.Start, &ref.End)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to get approved booking", err)
	}
	ref.Start, ref.End = ref.Start.UTC(), ref.End.UTC()
	return &ref, nil
}

// ForUpdate loads the booking and locks its row for the surrounding transaction.
func (r *BookingReadStore) ForUpdate(ctx context.Context, id int64) (*shared.BookingSnapshot, error) {
	query, args, err := bookingSelect().
		Where(squirrel.Eq{"b.id": id}).
		Suffix("FOR UPDATE OF b").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build booking lock query", err)
	}

	view, err := scanBookingView(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "booking not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to lock booking", err)
	}
	return &shared.BookingSnapshot{
		ID:         view.ID,
		ItemID:     view.Item.ID,
		ItemName:   view.Item.Name,
		OwnerID:    view.OwnerID,
		BookerID:   view.Booker.ID,
		BookerName: view.Booker.Name,
		Start:      view.Start,
		End:        view.End,
		Status:     view.Status,
	}, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var (
		v      queries.BookingView
		status string
	)
	if err := row.Scan(
		&v.ID, &v.Start, &v.End, &status,
		&v.Item.ID, &v.Item.Name, &v.OwnerID,
		&v.Booker.ID, &v.Booker.Name,
	); err != nil {
		return nil, err
	}

	parsed, err := booking.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	v.Status = parsed
	v.Start, v.End = v.Start.UTC(), v.End.UTC()
	return &v, nil
}
