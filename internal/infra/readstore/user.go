package readstore

import (
	"context"
	"log/slog"

	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/pkg/pgconv"
	"shareit/internal/usecase/shared"

	"github.com/Masterminds/squirrel"
)

type UserReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewUserReadStore(dbtx db.DBTX, logger *slog.Logger) *UserReadStore {
	return &UserReadStore{db: dbtx, logger: logger}
}

func (r *UserReadStore) Exists(ctx context.Context, id int64) (bool, error) {
	query, args, err := psql.Select("1").
		Prefix("SELECT EXISTS (").
		From("users").
		Where(squirrel.Eq{"id": id}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build user exists query", err)
	}

	var exists bool
	if err := r.db.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to check user existence", err)
	}
	return exists, nil
}

func (r *UserReadStore) FindByID(ctx context.Context, id int64) (*shared.UserSnapshot, error) {
	query, args, err := psql.Select("id", "name").
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build user query", err)
	}

	var u shared.UserSnapshot
	if err := r.db.QueryRow(ctx, query, args...).Scan(&u.ID, &u.Name); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "user not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to get user by id", err)
	}
	return &u, nil
}
