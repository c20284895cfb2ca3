package readstore

import (
	"context"
	"log/slog"

	"shareit/internal/infra"
	"shareit/internal/infra/db"
	"shareit/internal/usecase/queries"

	"github.com/Masterminds/squirrel"
)

type CommentReadStore struct {
	db     db.DBTX
	logger *slog.Logger
}

func NewCommentReadStore(dbtx db.DBTX, logger *slog.Logger) *CommentReadStore {
	return &CommentReadStore{db: dbtx, logger: logger}
}

func (r *CommentReadStore) FindByItemID(ctx context.Context, itemID int64) ([]*queries.CommentView, error) {
	query, args, err := psql.Select("c.id", "c.text", "u.name", "c.created").
		From("comments c").
		Join("users u ON u.id = c.author_id").
		Where(squirrel.Eq{"c.item_id": itemID}).
		OrderBy("c.created ASC", "c.id ASC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build comment query", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list comments", err)
	}
	defer rows.Close()

	comments := []*queries.CommentView{}
	for rows.Next() {
		var c queries.CommentView
		if err := rows.Scan(&c.ID, &c.Text, &c.AuthorName, &c.Created); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan comment row", err)
		}
		c.Created = c.Created.UTC()
		comments = append(comments, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate comment rows", err)
	}
	return comments, nil
}
