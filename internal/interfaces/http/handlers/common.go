// Package handlers implements the REST endpoint handlers.
package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/FinCrime-Intelligence/pkg/errors"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError maps an error to its HTTP status via the application error
// code and writes the JSON error body.  Unclassified errors surface as 500
// without leaking internals.
func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)

	msg := "internal server error"
	var ae *errors.AppError
	if stderrors.As(err, &ae) {
		msg = ae.Message
	}

	c.AbortWithStatusJSON(errors.HTTPStatusForCode(code), ErrorResponse{
		Code:    string(code),
		Message: msg,
	})
}

// respondBadRequest writes a 400 with the given message.
func respondBadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Code:    string(errors.ErrCodeBadRequest),
		Message: msg,
	})
}
