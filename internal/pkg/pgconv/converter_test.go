//go:build unit

package pgconv_test

import (
	"errors"
	"fmt"
	"testing"

	"shareit/internal/pkg/pgconv"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	wrap := func(code string) error {
		return fmt.Errorf("exec: %w", &pgconn.PgError{Code: code})
	}

	assert.True(t, pgconv.IsNoRows(fmt.Errorf("scan: %w", pgx.ErrNoRows)))
	assert.False(t, pgconv.IsNoRows(errors.New("boom")))

	assert.True(t, pgconv.IsForeignKeyViolation(wrap(pgerrcode.ForeignKeyViolation)))
	assert.True(t, pgconv.IsUniqueViolation(wrap(pgerrcode.UniqueViolation)))
	assert.True(t, pgconv.IsRetryable(wrap(pgerrcode.SerializationFailure)))
	assert.True(t, pgconv.IsRetryable(wrap(pgerrcode.DeadlockDetected)))
	assert.False(t, pgconv.IsRetryable(wrap(pgerrcode.UniqueViolation)))
	assert.False(t, pgconv.IsRetryable(errors.New("plain")))
	assert.Equal(t, "", pgconv.PgCode(nil))
}
