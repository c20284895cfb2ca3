package api

import (
	"net/http"

	"shareit/internal/handler/httperr"
	"shareit/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

var errUnauthenticated = errs.New("request has no authenticated user")

// statusFor maps error kinds to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errs.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errs.Is(err, errs.ErrUnsupportedState),
		errs.Is(err, errs.ErrBookingValidation),
		errs.Is(err, errs.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// abortWithUsecaseError exposes the error message for client errors only.
func abortWithUsecaseError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		httperr.AbortInternal(c, err)
		return
	}
	httperr.Abort(c, status, err, err.Error())
}
