package models

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// Error codes carried by AppError.
const (
	CodeNotFound   = "NOT_FOUND"
	CodeValidation = "VALIDATION_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response.
type ErrorResponse struct {
	Detail string       `json:"detail"`
	Code   string       `json:"code,omitempty"`
	Errors []FieldError `json:"errors,omitempty"`
}

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Fields  []FieldError
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// notFoundMessages maps a locale to the not-found detail text.
var notFoundMessages = map[string]string{
	"en": "Post not found",
	"ru": "Пост не найден",
}

// PostNotFoundMessage returns the localized not-found detail, falling back to English.
func PostNotFoundMessage(locale string) string {
	if msg, ok := notFoundMessages[locale]; ok {
		return msg
	}
	return notFoundMessages["en"]
}

// NewNotFoundError returns the not-found error for the given locale.
func NewNotFoundError(locale string) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: PostNotFoundMessage(locale),
	}
}

func NewValidationError(message string, fields ...FieldError) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
		Fields:  fields,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// RespondWithError creates a standardized error response. Wrapped causes of
// internal errors are never sent to the client.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	var appErr *AppError
	if errors.As(err, &appErr) {
		response = ErrorResponse{
			Detail: appErr.Message,
			Code:   appErr.Code,
			Errors: appErr.Fields,
		}
	} else {
		response = ErrorResponse{
			Detail: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
