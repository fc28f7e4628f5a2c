package api

import (
	"errors"
	"log"

	"github.com/example/ecommerce-api/domain/errs"
	"github.com/example/ecommerce-api/modules/catalog"
	"github.com/gofiber/fiber/v2"
)

// errorHandler renders every error a handler returns. Service errors are
// classified by the shared taxonomy; fiber errors keep their own code.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(ErrorResponse{
			Error:   errorCode(fe.Code),
			Message: fe.Message,
		})
	}

	code := statusFor(err)
	message := err.Error()
	if code == fiber.StatusInternalServerError {
		log.Printf("[api] Internal error on %s %s: %v", c.Method(), c.Path(), err)
		message = "An internal error occurred"
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   errorCode(code),
		Message: message,
	})
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, errs.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, errs.ErrUnauthorized):
		return fiber.StatusUnauthorized
	case errors.Is(err, errs.ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func errorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "bad_request"
	case fiber.StatusUnauthorized:
		return "unauthorized"
	case fiber.StatusForbidden:
		return "forbidden"
	case fiber.StatusNotFound:
		return "not_found"
	case fiber.StatusConflict:
		return "conflict"
	case fiber.StatusRequestEntityTooLarge:
		return "payload_too_large"
	case fiber.StatusTooManyRequests:
		return "too_many_requests"
	default:
		return "internal_error"
	}
}

// invalidProduct turns an unknown product on order placement into a client
// error instead of a 404 for the order route itself.
func invalidProduct(err error) error {
	if errors.Is(err, catalog.ErrProductNotFound) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid Product: "+err.Error())
	}
	return err
}

func badRequest(message string) error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}
