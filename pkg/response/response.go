package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/portfolio-api/pkg/errors"
)

// Envelope represents the common response contract.
type Envelope struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    interface{}            `json:"data"`
	Errors  []appErrors.FieldError `json:"errors"`
}

// JSON sends a success response.
func JSON(c *gin.Context, status int, data interface{}, message string) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, Envelope{
		Success: status < http.StatusBadRequest,
		Message: message,
		Data:    data,
		Errors:  []appErrors.FieldError{},
	})
}

// OK responds with HTTP 200.
func OK(c *gin.Context, data interface{}, message string) {
	JSON(c, http.StatusOK, data, message)
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}, message string) {
	JSON(c, http.StatusCreated, data, message)
}

// Error sends an error response converting the error to the common structure.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	fields := appErr.Errors
	if fields == nil {
		fields = []appErrors.FieldError{}
	}
	c.Header("Cache-Control", "no-store")
	c.JSON(appErr.Status, Envelope{
		Success: false,
		Message: appErr.Message,
		Data:    nil,
		Errors:  fields,
	})
}

// Abort renders the error and stops the handler chain.
func Abort(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}
