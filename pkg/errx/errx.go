package errx

import (
	"fmt"
	"net/http"
)

// Type classifies an error for transport mapping and logging
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeBusiness      Type = "BUSINESS"
	TypeExternal      Type = "EXTERNAL"
	TypeInternal      Type = "INTERNAL"
)

// Code identifies a registered error definition (e.g. "ANALYSIS.FILE_TOO_LARGE")
type Code string

// Error is the standard application error carrying a stable code and HTTP mapping
type Error struct {
	Type       Type           `json:"type"`
	Code       Code           `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail attaches a single key/value to the error
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails attaches multiple key/values to the error
func (e *Error) WithDetails(details map[string]any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// ToHTTPResponse renders the wire representation returned by API handlers
func (e *Error) ToHTTPResponse() map[string]any {
	resp := map[string]any{
		"error":   http.StatusText(e.HTTPStatus),
		"type":    string(e.Type),
		"code":    string(e.Code),
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		resp["details"] = e.Details
	}
	return resp
}

type definition struct {
	errType    Type
	httpStatus int
	message    string
}

// Registry groups error definitions under a domain prefix
type Registry struct {
	prefix      string
	definitions map[Code]definition
}

// NewRegistry creates a registry whose codes are prefixed with the given domain name
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix:      prefix,
		definitions: make(map[Code]definition),
	}
}

// Register adds an error definition and returns its fully-qualified code
func (r *Registry) Register(code string, errType Type, httpStatus int, message string) Code {
	full := Code(r.prefix + "." + code)
	r.definitions[full] = definition{
		errType:    errType,
		httpStatus: httpStatus,
		message:    message,
	}
	return full
}

// New creates an error from a registered code
func (r *Registry) New(code Code) *Error {
	def, ok := r.definitions[code]
	if !ok {
		return &Error{
			Type:       TypeInternal,
			Code:       code,
			Message:    "unregistered error code",
			HTTPStatus: http.StatusInternalServerError,
		}
	}
	return &Error{
		Type:       def.errType,
		Code:       code,
		Message:    def.message,
		HTTPStatus: def.httpStatus,
	}
}

// NewWithCause creates an error from a registered code wrapping an underlying cause
func (r *Registry) NewWithCause(code Code, cause error) *Error {
	err := r.New(code)
	err.Cause = cause
	return err
}

// NewWithMessage creates an error from a registered code with a custom message
func (r *Registry) NewWithMessage(code Code, message string) *Error {
	err := r.New(code)
	err.Message = message
	return err
}

// Wrap converts an arbitrary error into an *Error with the given type
func Wrap(err error, message string, errType Type) *Error {
	status := http.StatusInternalServerError
	switch errType {
	case TypeValidation:
		status = http.StatusBadRequest
	case TypeNotFound:
		status = http.StatusNotFound
	case TypeConflict:
		status = http.StatusConflict
	case TypeAuthorization:
		status = http.StatusForbidden
	case TypeBusiness:
		status = http.StatusUnprocessableEntity
	case TypeExternal:
		status = http.StatusBadGateway
	}
	return &Error{
		Type:       errType,
		Code:       Code(string(errType) + ".WRAPPED"),
		Message:    message,
		HTTPStatus: status,
		Cause:      err,
	}
}
