package response

import (
	"errors"
	"net/http"

	"fleet-toll-gateway/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the error envelope: a single user-facing message.
// Internal details stay in the logs.
type ErrorBody struct {
	Error string `json:"error"`
}

// OK sends a 200 response with the given body.
func OK(c *gin.Context, body interface{}) {
	c.JSON(http.StatusOK, body)
}

// Created sends a 201 response with the given body.
func Created(c *gin.Context, body interface{}) {
	c.JSON(http.StatusCreated, body)
}

// Redirect sends a 302 to the given location. Used for the crypto checkout hop.
func Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusFound, location)
}

// Error sends an error response. It checks if err is an *apperror.AppError
// and maps it accordingly, otherwise returns 500.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, ErrorBody{Error: appErr.Message})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorBody{Error: "Internal server error"})
}
