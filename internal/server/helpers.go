package server

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"simplepost/internal/middleware"
	"simplepost/internal/models"
	"simplepost/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Pagination holds parsed skip/limit query parameters.
type Pagination struct {
	Skip  int
	Limit int
}

// parsePagination reads skip and limit. Missing values take the defaults;
// non-integers are a validation error. Range checks belong to the service.
func parsePagination(c *fiber.Ctx) (Pagination, error) {
	page := Pagination{Skip: service.DefaultSkip, Limit: service.DefaultLimit}

	var fields []models.FieldError
	if raw := c.Query("skip"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			fields = append(fields, models.FieldError{Field: "skip", Message: "must be an integer"})
		}
		page.Skip = v
	}
	if raw := c.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			fields = append(fields, models.FieldError{Field: "limit", Message: "must be an integer"})
		}
		page.Limit = v
	}

	if len(fields) > 0 {
		return page, models.NewValidationError("Invalid pagination parameters", fields...)
	}
	return page, nil
}

// parsePostID extracts the :id route parameter. A non-integer is a validation
// error. Integers that cannot name a row (zero, negative, out of range) map
// to id 0, which the service answers with not-found.
func parsePostID(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, nil
		}
		return 0, models.NewValidationError("id: must be an integer",
			models.FieldError{Field: "id", Message: "must be an integer"})
	}
	if id <= 0 {
		return 0, nil
	}
	return uint(id), nil
}

// parseJSONBody decodes a JSON request body into out.
func parseJSONBody(c *fiber.Ctx, out any) error {
	if !c.Is("json") {
		return models.NewValidationError("Content-Type must be application/json")
	}
	if err := c.BodyParser(out); err != nil {
		return models.NewValidationError("Invalid request body: " + trimDecodeError(err))
	}
	return nil
}

func trimDecodeError(err error) string {
	return strings.TrimPrefix(err.Error(), "json: ")
}

// respondError maps service errors onto HTTP statuses. Anything that is not
// an *models.AppError is a storage or programming failure and is never echoed
// to the client.
func respondError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case models.CodeNotFound:
			return models.RespondWithError(c, fiber.StatusNotFound, appErr)
		case models.CodeValidation:
			return models.RespondWithError(c, fiber.StatusUnprocessableEntity, appErr)
		}
	}

	middleware.Logger.ErrorContext(c.UserContext(), "request failed", slog.String("error", err.Error()))
	return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
}
