package command

import (
	"net/http"

	"github.com/goliatone/go-datacontext/core"
	goerrors "github.com/goliatone/go-errors"
)

func commandValidationError(field string, message string) error {
	return goerrors.NewValidation("command: validation failed", goerrors.FieldError{
		Field:   field,
		Message: message,
	}).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.ResolutionErrorBadInput).
		WithSeverity(goerrors.SeverityError)
}
