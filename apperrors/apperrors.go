package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error represents an application error with an HTTP status code.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Common error types
var (
	ErrBadRequest     = New(http.StatusBadRequest, "Solicitud inválida", nil)
	ErrUnauthorized   = New(http.StatusUnauthorized, "No autenticado", nil)
	ErrForbidden      = New(http.StatusForbidden, "No autorizado", nil)
	ErrNotFound       = New(http.StatusNotFound, "No encontrado", nil)
	ErrInternalServer = New(http.StatusInternalServerError, "Error interno del servidor", nil)
	ErrUpstream       = New(http.StatusBadGateway, "No se pudo contactar al servidor", nil)
)

// ErrorMiddleware converts errors attached to the gin context into a JSON
// response. Handlers report failures with c.Error and return; rendering
// happens here, so every loading state ends in a terminal success or error
// payload.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		var appErr *Error
		if !errors.As(err, &appErr) {
			appErr = New(http.StatusInternalServerError, ErrInternalServer.Message, err)
		}

		// A proxy handler may have already streamed the upstream response.
		if c.Writer.Written() {
			return
		}
		c.JSON(appErr.Code, appErr)
	}
}
