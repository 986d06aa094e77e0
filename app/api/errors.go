package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Reasons reported with 502 responses when the model reply is rejected.
const (
	ReasonEmptyResponse   = "empty_response"
	ReasonNotHTMLDocument = "not_html_document"
	ReasonMarkdownFence   = "markdown_fence"
)

func ErrorHandler(c *fiber.Ctx, err error) error {
	var apiErr Error
	if errors.As(err, &apiErr) {
		return c.Status(apiErr.Code).JSON(apiErr)
	}

	var valErr ValidationError
	if errors.As(err, &valErr) {
		return c.Status(valErr.Status).JSON(valErr)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(NewError(fiberErr.Code, fiberErr.Message))
	}

	slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(ErrInternal())
}

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"error"`
	Reason  string `json:"reason,omitempty"`
}

type ValidationError struct {
	Status int               `json:"status"`
	Errors map[string]string `json:"errors"`
}

func (e ValidationError) Error() string {
	return "validation failed"
}

func NewValidationError(errors map[string]string) ValidationError {
	return ValidationError{
		Status: fiber.StatusUnprocessableEntity,
		Errors: errors,
	}
}

// Error implements the Error interface
func (e Error) Error() string {
	return e.Message
}

func NewError(code int, err string) Error {
	return Error{
		Code:    code,
		Message: err,
	}
}

func ErrBadRequest() Error {
	return Error{
		Code:    fiber.StatusBadRequest,
		Message: "invalid JSON request",
	}
}

func ErrPromptRequired() Error {
	return Error{
		Code:    fiber.StatusBadRequest,
		Message: "Prompt is required.",
	}
}

func ErrInvalidPage() Error {
	return Error{
		Code:    fiber.StatusBadRequest,
		Message: "Invalid current page provided.",
	}
}

func ErrPromptTooLarge() Error {
	return Error{
		Code:    fiber.StatusBadRequest,
		Message: "Prompt and current page are too large for the model.",
	}
}

func ErrUpstream(reason, msg string) Error {
	return Error{
		Code:    fiber.StatusBadGateway,
		Message: msg,
		Reason:  reason,
	}
}

func ErrGenerationFailed() Error {
	return Error{
		Code:    fiber.StatusInternalServerError,
		Message: "Failed to generate updated HTML.",
	}
}

func ErrInternal() Error {
	return Error{
		Code:    fiber.StatusInternalServerError,
		Message: "internal server error",
	}
}
