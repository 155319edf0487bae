package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"brewnote.dev/BrewNote/pkg/validate"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error  APIError              `json:"error"`
	Fields []validate.FieldError `json:"fields,omitempty"`
}

func respondError(c *gin.Context, status int, code string, err error) {
	message := "unknown error"
	if err != nil {
		message = err.Error()
	}

	c.JSON(status, ErrorEnvelope{Error: APIError{Message: message, Code: code}})
}

func respondValidationErrors(c *gin.Context, fieldErrors []validate.FieldError) {
	c.JSON(http.StatusBadRequest, ErrorEnvelope{
		Error:  APIError{Message: "validation failed", Code: "invalid_input"},
		Fields: fieldErrors,
	})
}
