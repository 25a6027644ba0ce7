package core

import (
	"errors"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ResolutionErrorBadInput            = "DATACONTEXT_BAD_INPUT"
	ResolutionErrorNotFound            = "DATACONTEXT_NOT_FOUND"
	ResolutionErrorIntrospectionFailed = "DATACONTEXT_INTROSPECTION_FAILED"
	ResolutionErrorInternal            = "DATACONTEXT_INTERNAL_ERROR"
)

var (
	ErrContextNotFound = errors.New("core: no persistence context owns entity type")
	ErrNilEntityType   = errors.New("core: entity type is required")
)

func resolutionErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureResolutionErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case errors.Is(err, ErrNilEntityType):
		return newResolutionError(err.Error(), goerrors.CategoryBadInput, ResolutionErrorBadInput)
	case errors.Is(err, ErrContextNotFound):
		return newResolutionError(err.Error(), goerrors.CategoryNotFound, ResolutionErrorNotFound)
	case strings.Contains(msg, "no persistence context"), strings.Contains(msg, "not registered"):
		return newResolutionError(err.Error(), goerrors.CategoryNotFound, ResolutionErrorNotFound)
	case strings.Contains(msg, "introspect"), strings.Contains(msg, "materialize"):
		return newResolutionError(err.Error(), goerrors.CategoryOperation, ResolutionErrorIntrospectionFailed)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"), strings.Contains(msg, "is nil"):
		return newResolutionError(err.Error(), goerrors.CategoryBadInput, ResolutionErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureResolutionErrorEnvelope(mapped)
}

func newResolutionError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureResolutionErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureResolutionErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = resolutionHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultResolutionTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultResolutionTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return ResolutionErrorBadInput
	case goerrors.CategoryNotFound:
		return ResolutionErrorNotFound
	case goerrors.CategoryOperation:
		return ResolutionErrorIntrospectionFailed
	default:
		return ResolutionErrorInternal
	}
}

func resolutionHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryOperation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
