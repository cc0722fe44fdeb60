package handlers

import (
	"milkrun/internal/apperr"
	applog "milkrun/internal/log"

	"github.com/gofiber/fiber/v2"
)

// errorBody is the JSON error envelope every failed request returns.
type errorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ErrorHandler maps the application error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is logged and surfaced as a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if e := apperr.As(err); e != nil {
		status := fiber.StatusBadRequest
		switch e.Kind {
		case apperr.KindAuthorization:
			status = fiber.StatusForbidden
		case apperr.KindNotFound:
			status = fiber.StatusNotFound
		}
		if e.Kind == apperr.KindAuthorization {
			applog.Security(c, "access.denied", map[string]any{"reason": e.Message})
		}
		return c.Status(status).JSON(fiber.Map{"error": errorBody{
			Code: e.Code(), Message: e.Message, Fields: e.Fields,
		}})
	}

	// Fiber's own errors (404 route, body limit, ...) keep their status.
	if fe, ok := err.(*fiber.Error); ok {
		return c.Status(fe.Code).JSON(fiber.Map{"error": errorBody{
			Code: "http", Message: fe.Message,
		}})
	}

	applog.Error(c, "server.error", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": errorBody{
		Code: "internal", Message: "something went wrong",
	}})
}

// parseBody decodes the JSON body, turning decode failures into a validation error.
func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperr.Validation("malformed JSON body")
	}
	return nil
}
