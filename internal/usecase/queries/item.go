package queries

import (
	"context"

	"shareit/internal/infra"
	"shareit/internal/pkg/errs"
)

type ItemReadStore interface {
	FindByID(ctx context.Context, id int64) (*ItemView, error)
	FindByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]*ItemView, error)
}

type CommentReadStore interface {
	FindByItemID(ctx context.Context, itemID int64) ([]*CommentView, error)
}

type ItemQueries interface {
	GetItem(ctx context.Context, itemID int64, viewerID int64) (*ItemView, error)
	ListOwnItems(ctx context.Context, ownerID int64, page Page) ([]*ItemView, error)
}

type itemQueriesImpl struct {
	items    ItemReadStore
	comments CommentReadStore
	users    UserReadStore
	resolver AvailabilityResolver
}

func NewItemQueries(items ItemReadStore, comments CommentReadStore, users UserReadStore, resolver AvailabilityResolver) ItemQueries {
	return &itemQueriesImpl{items: items, comments: comments, users: users, resolver: resolver}
}

func (q *itemQueriesImpl) GetItem(ctx context.Context, itemID int64, viewerID int64) (*ItemView, error) {
	if err := requireUser(ctx, q.users, viewerID); err != nil {
		return nil, err
	}

	view, err := q.items.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.NotFoundf("item with id %d not found", itemID)
		}
		return nil, err
	}

	if err := q.enrich(ctx, view, viewerID); err != nil {
		return nil, err
	}
	return view, nil
}

func (q *itemQueriesImpl) ListOwnItems(ctx context.Context, ownerID int64, page Page) ([]*ItemView, error) {
	if err := requireUser(ctx, q.users, ownerID); err != nil {
		return nil, err
	}
	if page.Size < 1 {
		return nil, ErrInvalidPage
	}

	views, err := q.items.FindByOwner(ctx, ownerID, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}
	for _, v := range views {
		if err := q.enrich(ctx, v, ownerID); err != nil {
			return nil, err
		}
	}
	return views, nil
}

// enrich attaches comments for everyone and last/next only for the owner.
func (q *itemQueriesImpl) enrich(ctx context.Context, view *ItemView, viewerID int64) error {
	comments, err := q.comments.FindByItemID(ctx, view.ID)
	if err != nil {
		return err
	}
	if comments == nil {
		comments = []*CommentView{}
	}
	view.Comments = comments

	view.LastBooking, view.NextBooking = nil, nil
	if view.OwnerID != viewerID {
		return nil
	}

	last, next, err := q.resolver.Resolve(ctx, view.ID, viewerID)
	if err != nil {
		return err
	}
	view.LastBooking = last
	view.NextBooking = next
	return nil
}
