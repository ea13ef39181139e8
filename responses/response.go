package responses

import (
	"github.com/gofiber/fiber/v2"

	"github.com/AdityaGupta2791/E-com/apperr"
)

type APIResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
	Result  *fiber.Map `json:"result,omitempty"`
}

// OK writes a success envelope with the given payload.
func OK(c *fiber.Ctx, status int, message string, result *fiber.Map) error {
	return c.Status(status).JSON(APIResponse{
		Success: true,
		Message: message,
		Result:  result,
	})
}

// Fail writes a failure envelope with an explicit status.
func Fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(APIResponse{
		Success: false,
		Message: message,
	})
}

// Error maps a service error to its HTTP status and writes the failure
// envelope. The error kind is included so clients can branch without parsing
// messages.
func Error(c *fiber.Ctx, err error) error {
	return ErrorWithResult(c, err, nil)
}

// ErrorWithResult is Error with an extra payload, for operations that fail
// part-way but still report what was applied (guest-cart merge).
func ErrorWithResult(c *fiber.Ctx, err error, result *fiber.Map) error {
	kind := apperr.KindOf(err)
	payload := fiber.Map{"kind": kind.String()}
	if result != nil {
		for k, v := range *result {
			payload[k] = v
		}
	}
	return c.Status(httpStatus(kind)).JSON(APIResponse{
		Success: false,
		Message: err.Error(),
		Result:  &payload,
	})
}

func httpStatus(kind apperr.Kind) int {
	switch kind {
	case apperr.NotFound:
		return fiber.StatusNotFound
	case apperr.InvalidArgument, apperr.InvalidSize, apperr.OutOfStock,
		apperr.InsufficientStock, apperr.EmptyOrder:
		return fiber.StatusBadRequest
	case apperr.Unauthenticated:
		return fiber.StatusUnauthorized
	case apperr.Unavailable:
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}
