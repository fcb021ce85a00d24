package http

import (
	"errors"
	"net/http"

	"yumexpress/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Machine-readable error codes in response bodies. Clients branch on these,
// so they are part of the API contract and must stay stable.
const (
	codeValidation         = "VALIDATION_ERROR"
	codeForbidden          = "FORBIDDEN"
	codeNotFound           = "NOT_FOUND"
	codeConflict           = "CONFLICT"
	codePreconditionFailed = "PRECONDITION_FAILED"
	codeInternal           = "INTERNAL_ERROR"
)

// writeError maps a use-case error to its HTTP status and stable code.
// Internal errors are not echoed back to the client.
func writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrForbidden):
		return ctx.JSON(http.StatusForbidden, Error{
			Code:    codeForbidden,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    codeNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrAlreadyClaimed), errors.Is(err, errs.ErrInvalidTransition):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    codeConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrPreconditionFailed):
		return ctx.JSON(http.StatusUnprocessableEntity, Error{
			Code:    codePreconditionFailed,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    codeValidation,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    codeInternal,
			Message: "internal error",
		})
	}
}

// writeValidationError reports a malformed request without consulting the
// sentinel chain, for errors raised at the HTTP boundary itself.
func writeValidationError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    codeValidation,
		Message: message,
	})
}
