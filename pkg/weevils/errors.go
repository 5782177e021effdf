package weevils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorKind classifies a response from the Weevils API that was not a success.
type ErrorKind int

// Error kinds, one per distinguishable failure mode.
const (
	KindUnhandledResponse ErrorKind = iota
	KindWriteConflict
	KindEntityNotFound
	KindBadRequest
	KindActionDisallowed
	KindNotAuthenticated
	KindServiceProcessing
	KindServiceUnavailable
)

// String implements fmt.Stringer.
func (k ErrorKind) String() string {
	switch k {
	case KindWriteConflict:
		return "write conflict"
	case KindEntityNotFound:
		return "entity not found"
	case KindBadRequest:
		return "bad request"
	case KindActionDisallowed:
		return "action disallowed"
	case KindNotAuthenticated:
		return "not authenticated"
	case KindServiceProcessing:
		return "service processing error"
	case KindServiceUnavailable:
		return "service unavailable"
	case KindUnhandledResponse:
		return "unhandled response"
	default:
		return fmt.Sprintf("error kind %d", int(k))
	}
}

// Sentinels matched by errors.Is against a *ResponseError of the same kind.
var (
	ErrWriteConflict      = errors.New("write conflict")
	ErrEntityNotFound     = errors.New("entity not found")
	ErrBadRequest         = errors.New("bad request")
	ErrActionDisallowed   = errors.New("action disallowed")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrServiceProcessing  = errors.New("service processing error")
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrUnhandledResponse  = errors.New("unhandled response")
)

var kindSentinels = map[ErrorKind]error{
	KindWriteConflict:      ErrWriteConflict,
	KindEntityNotFound:     ErrEntityNotFound,
	KindBadRequest:         ErrBadRequest,
	KindActionDisallowed:   ErrActionDisallowed,
	KindNotAuthenticated:   ErrNotAuthenticated,
	KindServiceProcessing:  ErrServiceProcessing,
	KindServiceUnavailable: ErrServiceUnavailable,
	KindUnhandledResponse:  ErrUnhandledResponse,
}

// Usage errors are returned before any request is sent.
var (
	ErrUsage             = errors.New("invalid usage")
	ErrInvalidPath       = fmt.Errorf("%w: path must start with /", ErrUsage)
	ErrEmptyLookupKey    = fmt.Errorf("%w: lookup key must not be empty", ErrUsage)
	ErrInvalidLookupKey  = fmt.Errorf("%w: lookup key is neither an id nor a slug", ErrUsage)
	ErrWrongResourceKind = fmt.Errorf("%w: wrong resource kind", ErrUsage)
	ErrMissingAPIToken   = fmt.Errorf("%w: an API token is required", ErrUsage)
	ErrInvalidBaseImage  = fmt.Errorf("%w: base image must be given by id or as a BaseImage", ErrUsage)
	ErrInvalidURL        = fmt.Errorf("%w: invalid API URL", ErrUsage)
)

// ErrIncompleteRecord is returned when a response body decodes but lacks the
// identifier of a record or of one of its nested records.
var ErrIncompleteRecord = errors.New("incomplete record")

// ErrConnection is matched by errors.Is against a *ConnectionError.
var ErrConnection = errors.New("could not connect to the Weevils API")

// ResponseError is returned when the API answers with a status that is not a
// success for the operation. It keeps the raw response for diagnosis.
type ResponseError struct {
	Kind       ErrorKind
	StatusCode int
	Method     string
	Path       string
	Body       []byte
	Detail     string

	// Resource and Key are set for KindEntityNotFound.
	Resource Kind
	Key      string
}

// NewResponseError builds a ResponseError and extracts its detail from body.
func NewResponseError(kind ErrorKind, status int, method, path string, body []byte) *ResponseError {
	return &ResponseError{
		Kind:       kind,
		StatusCode: status,
		Method:     method,
		Path:       path,
		Body:       body,
		Detail:     detailFromBody(body),
	}
}

// Error implements the error interface.
func (e *ResponseError) Error() string {
	msg := fmt.Sprintf("%s: %s %s returned status %d", e.Kind, e.Method, e.Path, e.StatusCode)
	if e.Kind == KindEntityNotFound && e.Resource != "" {
		msg = fmt.Sprintf("%s: no %s matching %q (%s %s)", e.Kind, e.Resource, e.Key, e.Method, e.Path)
	}

	if e.Detail != "" {
		msg += ": " + e.Detail
	}

	return msg
}

// Is reports whether target is the sentinel for this error's kind.
func (e *ResponseError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

// ConnectionError is returned when no response could be obtained at all.
type ConnectionError struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("could not connect to the Weevils API at %s: %v", e.URL, e.Err)
}

// Unwrap returns the transport error.
func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Is matches ErrConnection.
func (e *ConnectionError) Is(target error) bool {
	return target == ErrConnection
}

// IsNotFound checks if the error is an entity-not-found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEntityNotFound)
}

// IsConflict checks if the error is a write conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrWriteConflict)
}

// IsUnauthorized checks if the error is a not-authenticated error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrNotAuthenticated)
}

// IsForbidden checks if the error is an action-disallowed error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrActionDisallowed)
}

// IsUsage checks if the error was raised locally for invalid arguments.
func IsUsage(err error) bool {
	return errors.Is(err, ErrUsage)
}

func detailFromBody(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	var payload struct {
		Detail string `json:"detail"`
	}

	if trimmed[0] == '{' && json.Unmarshal(trimmed, &payload) == nil && payload.Detail != "" {
		return payload.Detail
	}

	return string(trimmed)
}
