package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

func Newf(format string, args ...any) error {
	return cr.Newf(format, args...)
}

func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// NewKind creates an error with its own message that also matches every kind via Is.
func NewKind(msg string, kinds ...error) error {
	err := cr.New(msg)
	for _, k := range kinds {
		err = cr.Mark(err, k)
	}
	return err
}

// Is understands marks in addition to the standard wrap chain.
func Is(err, reference error) bool {
	return cr.Is(err, reference)
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}

// NotFoundf builds a message-bearing error of the not-found kind.
func NotFoundf(format string, args ...any) error {
	return cr.Mark(cr.Newf(format, args...), ErrNotFound)
}
