package taxonomy

import (
	"net/http"

	"github.com/folioforge/ats/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("TAXONOMY")

// Error codes - Taxonomy Operations
var (
	CodeInvalidRequest = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid taxonomy request")
	CodeNotFound       = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "No keyword taxonomy for this profession")
	CodeProviderFailed = ErrRegistry.Register("PROVIDER_FAILED", errx.TypeExternal, http.StatusBadGateway, "Taxonomy provider failed")
	CodeInvalidSet     = ErrRegistry.Register("INVALID_SET", errx.TypeInternal, http.StatusInternalServerError, "Provider returned an invalid keyword set")
)

// Helper functions
func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrNotFound() *errx.Error {
	return ErrRegistry.New(CodeNotFound)
}

func ErrProviderFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeProviderFailed, cause)
}

func ErrInvalidSet(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeInvalidSet, cause)
}
