package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// InternalMessage is the only text a 5xx response ever carries.
const InternalMessage = "Internal server error"

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func New(status int, msg string) Response {
	resp := Response{Status: status}
	resp.Error.Message = msg
	return resp
}

// Abort keeps err on the context for the error middleware and writes the envelope.
func Abort(c *gin.Context, status int, err error, msg string) {
	abort(c, status, err, New(status, msg))
}

func AbortInternal(c *gin.Context, err error) {
	Abort(c, http.StatusInternalServerError, err, InternalMessage)
}

// AbortBinding answers 400 and lists the offending fields when the validator produced them.
func AbortBinding(c *gin.Context, err error, msg string) {
	resp := New(http.StatusBadRequest, msg)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, FieldError{Field: fe.Field(), Rule: fe.Tag()})
		}
		resp.Detail = fields
	}
	abort(c, http.StatusBadRequest, err, resp)
}

func abort(c *gin.Context, status int, err error, resp Response) {
	if err == nil {
		err = errors.New(resp.Error.Message)
	}
	_ = c.Error(&gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
