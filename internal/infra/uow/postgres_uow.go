package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"shareit/internal/infra/db"
	"shareit/internal/infra/readstore"
	"shareit/internal/infra/repository"
	"shareit/internal/pkg/errs"
	"shareit/internal/pkg/pgconv"
	"shareit/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const maxRetries = 3

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool     *pgxpool.Pool
	bookings *repository.BookingRepository
	logger   *slog.Logger
	base     time.Duration
}

func NewPostgresUoW(pool *pgxpool.Pool, logger *slog.Logger) shared.UnitOfWork {
	return &PostgresUoW{
		pool:     pool,
		bookings: repository.NewBookingRepository(logger),
		logger:   logger,
		base:     100 * time.Millisecond,
	}
}

// ReadCommitted is enough here: decisions take a row lock before the status check.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTx(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{dbtx: pgxTx, uow: u}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				u.logger.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt) {
			if attempt == maxRetries {
				u.logger.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, u.base)

		u.logger.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt int) bool {
	return pgconv.IsRetryable(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	// #nosec G115 -- high bit masked above
	return int64(uval) % n
}

type pgTx struct {
	dbtx db.DBTX
	uow  *PostgresUoW

	commandReads shared.CommandReads
}

func (t *pgTx) DB() db.DBTX {
	return t.dbtx
}

func (t *pgTx) Bookings() shared.BookingRepository {
	return t.uow.bookings
}

func (t *pgTx) Reads() shared.CommandReads {
	if t.commandReads == nil {
		t.commandReads = newCommandReads(t.dbtx, t.uow.logger)
	}
	return t.commandReads
}

type commandReads struct {
	items    *readstore.ItemReadStore
	users    *readstore.UserReadStore
	bookings *readstore.BookingReadStore
}

func newCommandReads(dbtx db.DBTX, logger *slog.Logger) *commandReads {
	return &commandReads{
		items:    readstore.NewItemReadStore(dbtx, logger),
		users:    readstore.NewUserReadStore(dbtx, logger),
		bookings: readstore.NewBookingReadStore(dbtx, logger),
	}
}

func (r *commandReads) ItemByID(ctx context.Context, id int64) (*shared.ItemSnapshot, error) {
	return r.items.Snapshot(ctx, id)
}

func (r *commandReads) UserByID(ctx context.Context, id int64) (*shared.UserSnapshot, error) {
	return r.users.FindByID(ctx, id)
}

func (r *commandReads) BookingForUpdate(ctx context.Context, id int64) (*shared.BookingSnapshot, error) {
	return r.bookings.ForUpdate(ctx, id)
}
