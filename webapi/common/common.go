// Package common holds the response helpers shared by the HTTP handlers.
package common

import (
	"errors"
	"fmt"

	"github.com/amirasaad/compago/pkg/app"
	"github.com/amirasaad/compago/pkg/domain/account"
	"github.com/amirasaad/compago/pkg/domain/payment"
	"github.com/amirasaad/compago/pkg/domain/session"
	"github.com/amirasaad/compago/pkg/ledger"
	"github.com/amirasaad/compago/pkg/service/auth"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`         // HTTP status code
	Message string `json:"message"`        // Human-readable explanation
	Data    any    `json:"data,omitempty"` // Response data
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

// SuccessResponseJSON writes a Response.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{Status: status, Message: message, Data: data})
}

// ProblemDetailsJSON writes err as application/problem+json. The status is taken from
// the optional trailing int, otherwise derived from err with ErrorToStatusCode. A
// trailing string overrides the detail text.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, extra ...any) error {
	status := ErrorToStatusCode(err)
	pd := ProblemDetails{Type: "about:blank", Title: title, Instance: c.OriginalURL()}
	if err != nil {
		pd.Detail = err.Error()
	}
	var verr *payment.ValidationError
	if errors.As(err, &verr) {
		pd.Detail = verr.Message
		pd.Errors = verr.Fields
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status = fiberErr.Code
	}
	for _, e := range extra {
		switch v := e.(type) {
		case int:
			status = v
		case string:
			pd.Detail = v
		default:
			pd.Errors = v
		}
	}
	pd.Status = status
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(pd)
}

// ErrorToStatusCode maps domain errors to HTTP status codes.
func ErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return fiber.StatusInternalServerError
	case errors.Is(err, payment.ErrValidation),
		errors.Is(err, account.ErrInvalidChannel),
		errors.Is(err, account.ErrInvalidDirection),
		errors.Is(err, session.ErrUnknownScreen):
		return fiber.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidPin):
		return fiber.StatusUnauthorized
	case errors.Is(err, session.ErrNotAuthenticated):
		return fiber.StatusForbidden
	case errors.Is(err, ledger.ErrAccountNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, session.ErrInvalidTransition),
		errors.Is(err, app.ErrNoPendingConfirmation),
		errors.Is(err, app.ErrReceiveModeInactive),
		errors.Is(err, app.ErrWrongScreen):
		return fiber.StatusConflict
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorTitle is a short summary for the mapped status.
func ErrorTitle(err error) string {
	switch ErrorToStatusCode(err) {
	case fiber.StatusBadRequest:
		return "Invalid request"
	case fiber.StatusUnauthorized:
		return "Invalid PIN"
	case fiber.StatusForbidden:
		return "Not authenticated"
	case fiber.StatusNotFound:
		return "Not found"
	case fiber.StatusConflict:
		return "Action not allowed"
	case fiber.StatusUnprocessableEntity:
		return "Payment rejected"
	default:
		return "Internal Server Error"
	}
}

// WriteError writes err with the title and status its type maps to.
func WriteError(c *fiber.Ctx, err error) error {
	return ProblemDetailsJSON(c, ErrorTitle(err), err)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// BindAndValidate parses the request body and validates it using go-playground/validator.
// On failure it writes the problem response and returns nil together with the error.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest)
	}
	if err := validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
			}
			return nil, ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest, fields)
		}
		return nil, ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest)
	}
	return &input, nil
}
