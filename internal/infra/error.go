package infra

import (
	"errors"
	"log/slog"

	"shareit/internal/pkg/errs"
	"shareit/internal/pkg/pgconv"
)

type RepositoryErrorKind string

const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
)

// RepositoryError is what stores return to use cases. Callers branch on Kind
// only; the cause is kept for logs and errors.Is.
type RepositoryError struct {
	Kind  RepositoryErrorKind
	msg   string
	cause error
}

func (e RepositoryError) Error() string {
	s := string(e.Kind) + ": " + e.msg
	if e.cause != nil {
		s += ": " + e.cause.Error()
	}
	return s
}

func (e RepositoryError) Unwrap() error {
	return e.cause
}

// KindOf maps a driver error onto a repository kind.
func KindOf(err error) RepositoryErrorKind {
	switch {
	case pgconv.IsNoRows(err):
		return KindNotFound
	case pgconv.IsForeignKeyViolation(err):
		return KindForeignKeyViolated
	case pgconv.IsUniqueViolation(err):
		return KindDuplicateKey
	default:
		return KindDBFailure
	}
}

// WrapRepoErr logs failures at Error and expected misses at Debug.
func WrapRepoErr(logger *slog.Logger, kind RepositoryErrorKind, msg string, err error) error {
	attrs := []any{slog.String("kind", string(kind))}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
		err = errs.Wrap(err, msg)
	}

	if kind == KindNotFound {
		logger.Debug("repository miss: "+msg, attrs...)
	} else {
		logger.Error("repository error: "+msg, attrs...)
	}
	return RepositoryError{Kind: kind, msg: msg, cause: err}
}

// WrapPgErr is WrapRepoErr with the kind taken from the driver error.
func WrapPgErr(logger *slog.Logger, msg string, err error) error {
	return WrapRepoErr(logger, KindOf(err), msg, err)
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	return errors.As(err, &e) && e.Kind == kind
}
