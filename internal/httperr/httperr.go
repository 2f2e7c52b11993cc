package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// StatusFor maps an error to the HTTP status it should produce.
func StatusFor(err error) int {
	var be BusinessError
	if !errors.As(err, &be) {
		return http.StatusInternalServerError
	}
	switch be.Kind {
	case KindValidation, KindBusiness:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindDependency:
		return http.StatusBadGateway
	case KindUnauthorized:
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// Respond writes err using its business code and message. Anything that is
// not a BusinessError becomes a generic 500.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		_ = c.Error(err)
		Internal(c, "internal_error", "Internal server error.")
		return
	}

	msg := be.Message
	if msg == "" {
		msg = be.Code
	}
	if be.Err != nil {
		_ = c.Error(be.Err)
	}
	Write(c, StatusFor(err), be.Code, msg)
}
