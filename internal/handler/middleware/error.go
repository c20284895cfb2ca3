package middleware

import (
	"log/slog"
	"net/http"

	"shareit/internal/handler/httperr"
	"shareit/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const maxStackLines = 12

// ErrorHandler logs server-side failures with a trimmed stack and writes
// the last public envelope when a handler recorded an error without responding.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		var public *httperr.Response
		for _, e := range c.Errors {
			resp, ok := e.Meta.(httperr.Response)
			if !ok {
				continue
			}
			if e.IsType(gin.ErrorTypePublic) {
				public = &resp
			}
			if resp.Status >= http.StatusInternalServerError {
				attrs := []any{
					"request_id", GetRequestID(c),
					"path", c.Request.URL.Path,
					"error", e.Err.Error(),
					"stack", errs.ExtractStackLines(e.Err, maxStackLines),
				}
				if userID, ok := GetUserID(c); ok {
					attrs = append(attrs, "user_id", userID)
				}
				slog.Error("request failed", attrs...)
			}
		}

		if c.Writer.Written() {
			return
		}
		if public != nil {
			c.JSON(public.Status, public)
			return
		}
		if status := c.Writer.Status(); status != http.StatusOK {
			c.Status(status)
			c.Writer.WriteHeaderNow()
			return
		}
		if len(c.Errors) > 0 {
			c.JSON(http.StatusInternalServerError, httperr.New(http.StatusInternalServerError, httperr.InternalMessage))
		}
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.Error("recovered from panic", "error", err, "path", c.Request.URL.Path, "request_id", GetRequestID(c))
				c.AbortWithStatusJSON(http.StatusInternalServerError, httperr.New(http.StatusInternalServerError, httperr.InternalMessage))
			}
		}()
		c.Next()
	}
}
