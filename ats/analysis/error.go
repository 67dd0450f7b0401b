package analysis

import (
	"net/http"

	"github.com/folioforge/ats/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("ANALYSIS")

// Error codes - Document Extraction
var (
	CodeInvalidRequest    = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid analysis request")
	CodeUnsupportedFormat = ErrRegistry.Register("UNSUPPORTED_FORMAT", errx.TypeValidation, http.StatusBadRequest, "Unsupported file format")
	CodeFileTooLarge      = ErrRegistry.Register("FILE_TOO_LARGE", errx.TypeValidation, http.StatusBadRequest, "File exceeds the size limit")
	CodeExtractionFailed  = ErrRegistry.Register("EXTRACTION_FAILED", errx.TypeBusiness, http.StatusUnprocessableEntity, "Could not read the resume document")
	CodeExtractionTimeout = ErrRegistry.Register("EXTRACTION_TIMEOUT", errx.TypeBusiness, http.StatusUnprocessableEntity, "Resume document took too long to parse")
)

// Error codes - Scoring & Reports
var (
	CodeInvalidKeywords    = ErrRegistry.Register("INVALID_KEYWORDS", errx.TypeValidation, http.StatusBadRequest, "Invalid keyword set")
	CodeInvariantViolation = ErrRegistry.Register("INVARIANT_VIOLATION", errx.TypeInternal, http.StatusInternalServerError, "Internal scoring invariant violated")
	CodeRecordNotFound     = ErrRegistry.Register("RECORD_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Analysis record not found")
	CodeHistoryUnavailable = ErrRegistry.Register("HISTORY_UNAVAILABLE", errx.TypeInternal, http.StatusServiceUnavailable, "Analysis history is not configured")
	CodeHistoryFailed      = ErrRegistry.Register("HISTORY_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to access analysis history")
)

// Helper functions - Document Extraction
func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}

func ErrUnsupportedFormat() *errx.Error {
	return ErrRegistry.New(CodeUnsupportedFormat)
}

func ErrFileTooLarge() *errx.Error {
	return ErrRegistry.New(CodeFileTooLarge)
}

func ErrExtractionFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeExtractionFailed, cause)
}

func ErrExtractionTimeout() *errx.Error {
	return ErrRegistry.New(CodeExtractionTimeout)
}

// Helper functions - Scoring & Reports
func ErrInvalidKeywords(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeInvalidKeywords, cause)
}

func ErrInvariantViolation() *errx.Error {
	return ErrRegistry.New(CodeInvariantViolation)
}

func ErrRecordNotFound() *errx.Error {
	return ErrRegistry.New(CodeRecordNotFound)
}

func ErrHistoryUnavailable() *errx.Error {
	return ErrRegistry.New(CodeHistoryUnavailable)
}

func ErrHistoryFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeHistoryFailed, cause)
}
