//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by the pool and by a transaction.
type DBLike interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func CreateTestUser(t *testing.T, db DBLike, name, email string) int64 {
	t.Helper()

	var userID int64
	err := db.QueryRow(context.Background(),
		"INSERT INTO users (name, email) VALUES ($1, $2) RETURNING id", name, email).Scan(&userID)
	require.NoError(t, err)
	return userID
}

func CreateTestItem(t *testing.T, db DBLike, ownerID int64, name string, available bool) int64 {
	t.Helper()

	var itemID int64
	err := db.QueryRow(context.Background(),
		"INSERT INTO items (owner_id, name, description, available) VALUES ($1, $2, $3, $4) RETURNING id",
		ownerID, name, name+" for rent", available).Scan(&itemID)
	require.NoError(t, err)
	return itemID
}

// inserts a booking directly, bypassing the validator, so past periods can be seeded
func CreateTestBooking(t *testing.T, db DBLike, itemID, bookerID int64, start, end time.Time, status string) int64 {
	t.Helper()

	var bookingID int64
	err := db.QueryRow(context.Background(),
		"INSERT INTO bookings (item_id, booker_id, start_date, end_date, status) VALUES ($1, $2, $3, $4, $5) RETURNING id",
		itemID, bookerID, start, end, status).Scan(&bookingID)
	require.NoError(t, err)
	return bookingID
}

func CreateTestComment(t *testing.T, db DBLike, itemID, authorID int64, text string, created time.Time) int64 {
	t.Helper()

	var commentID int64
	err := db.QueryRow(context.Background(),
		"INSERT INTO comments (item_id, author_id, text, created) VALUES ($1, $2, $3, $4) RETURNING id",
		itemID, authorID, text, created).Scan(&commentID)
	require.NoError(t, err)
	return commentID
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and restarts identities
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
