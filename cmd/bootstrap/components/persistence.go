package components

import (
	"log/slog"

	"shareit/internal/infra/cache"
	"shareit/internal/infra/db"
	"shareit/internal/infra/readstore"
	"shareit/internal/infra/uow"
	"shareit/internal/pkg/config"
	"shareit/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	repositoryModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
			fx.As(new(queries.ApprovedBookingReader)),
		),
		fx.Annotate(
			readstore.NewItemReadStore,
			fx.As(new(queries.ItemReadStore)),
		),
		fx.Annotate(
			readstore.NewCommentReadStore,
			fx.As(new(queries.CommentReadStore)),
		),
		NewUserReadStore,
	),
)

var repositoryModule = fx.Module("persistence/repository",
	fx.Provide(
		uow.NewPostgresUoW,
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

// NewUserReadStore puts the redis directory in front of postgres when redis is configured.
func NewUserReadStore(dbtx db.DBTX, client *redis.Client, cfg config.Config, logger *slog.Logger) queries.UserReadStore {
	store := readstore.NewUserReadStore(dbtx, logger)
	if client == nil {
		return store
	}
	return cache.NewUserDirectory(client, store, cfg.Redis.UserTTL, logger)
}
