package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"library-backend/internal/shared/apperror"
	"library-backend/internal/shared/pagination"
)

// ListResponse là envelope chung cho mọi list/search endpoint.
type ListResponse struct {
	Data any             `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type errorBody struct {
	Error *Error `json:"error"`
}

// Success writes a plain entity payload.
func Success(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, data)
}

// Created is sugar for 201 responses.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// NoContent writes 204 with an empty body (delete routes).
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// List writes the {data, meta} envelope.
func List(c *gin.Context, data any, meta pagination.Meta) {
	c.JSON(http.StatusOK, ListResponse{Data: data, Meta: meta})
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, errorBody{Error: &Error{Code: code, Message: message}})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details any) {
	c.JSON(statusCode, errorBody{Error: &Error{Code: code, Message: message, Details: details}})
}

func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", message)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", message)
}

func Conflict(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusConflict, "CONFLICT", message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message)
}

// FromError maps a service error to a status code via its apperror kind.
// Unknown errors become 500 mà không leak internal details.
func FromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, apperror.ErrConflict):
		Conflict(c, err.Error())
	case errors.Is(err, apperror.ErrInvalidInput):
		BadRequest(c, err.Error())
	case errors.Is(err, apperror.ErrForbidden):
		Forbidden(c, err.Error())
	default:
		InternalServerError(c, "internal server error")
	}
}
