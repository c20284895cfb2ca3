package readstore

import (
	"context"
	"log/slog"

	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/pkg/pgconv"
	"shareit/internal/usecase/queries"
	"shareit/internal/usecase/shared"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
)

type ItemReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewItemReadStore(dbtx db.DBTX, logger *slog.Logger) *ItemReadStore {
	return &ItemReadStore{db: dbtx, logger: logger}
}

func itemSelect() squirrel.SelectBuilder {
	return psql.Select("id", "owner_id", "name", "description", "available").From("items")
}

func (r *ItemReadStore) FindByID(ctx context.Context, id int64) (*queries.ItemView, error) {
	query, args, err := itemSelect().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build item query", err)
	}

	view, err := scanItemView(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "item not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to get item by id", err)
	}
	return view, nil
}

func (r *ItemReadStore) FindByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*queries.ItemView, error) {
	query, args, err := itemSelect().
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build item list query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list items by owner", err)
	}
	defer rows.Close()

	views := make([]*queries.ItemView, 0, limit)
	for rows.Next() {
		view, err := scanItemView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan item row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate item rows", err)
	}
	return views, nil
}

// Snapshot is the write-side projection used when creating a booking.
func (r *ItemReadStore) Snapshot(ctx context.Context, id int64) (*shared.ItemSnapshot, error) {
	view, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &shared.ItemSnapshot{
		ID:        view.ID,
		OwnerID:   view.OwnerID,
		Name:      view.Name,
		Available: view.Available,
	}, nil
}

func scanItemView(row pgx.Row) (*queries.ItemView, error) {
	var v queries.ItemView
	if err := row.Scan(&v.ID, &v.OwnerID, &v.Name, &v.Description, &v.Available); err != nil {
		return nil, err
	}
	return &v, nil
}
