package repository

import (
	"context"
	"log/slog"

	"shareit/internal/domain/booking"
	"shareit/internal/infra"
	"shareit/internal/infra/db"

	"github.com/Masterminds/squirrel"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type BookingRepository struct {
	logger *slog.Logger
}

func NewBookingRepository(logger *slog.Logger) *BookingRepository {
	return &BookingRepository{logger: logger}
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (int64, error) {
	query, args, err := psql.Insert("bookings").
		Columns("item_id", "booker_id", "start_date", "end_date", "status").
		Values(b.ItemID(), b.BookerID(), b.Period().Start(), b.Period().End(), b.Status().String()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build booking insert", err)
	}

	var id int64
	if err := tx.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, infra.WrapPgErr(r.logger, "failed to create booking", err)
	}
	return id, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id int64, status booking.Status) error {
	query, args, err := psql.Update("bookings").
		Set("status", status.String()).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build booking status update", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "booking not found", nil)
	}
	return nil
}
