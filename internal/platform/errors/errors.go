// Package errors provides a structured error type with wrapping and metadata
package errors

// Always import the project errors package as perr (platform/errors)

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode defines supported error codes used across services
// Values are stable for wire compatibility; add sparingly
type ErrorCode uint16

const (
	// ErrorCodeUnknown is for unclassified errors
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodePanic is for panics recovered by middleware
	ErrorCodePanic

	// ErrorCodeInvalidRequestBody is for request bodies that fail to parse as JSON
	ErrorCodeInvalidRequestBody

	// ErrorCodeValidation is for parseable input that fails field constraints
	ErrorCodeValidation

	// ErrorCodeMarketplaceNotFound is for marketplace codes with no active configuration
	ErrorCodeMarketplaceNotFound

	// ErrorCodeItemNotAccessible is a remote semantic rejection: item absent or restricted
	ErrorCodeItemNotAccessible

	// ErrorCodeInvalidParameter is a remote-reported bad request parameter
	ErrorCodeInvalidParameter

	// ErrorCodeThrottled is a rate-limit signal from the remote service
	ErrorCodeThrottled

	// ErrorCodeTimeout is a local deadline exceeded talking to the remote service
	ErrorCodeTimeout

	// ErrorCodeNetwork is a connection-level failure before any response arrived
	ErrorCodeNetwork

	// ErrorCodeRemote is any other non-2xx or unparseable remote response
	ErrorCodeRemote

	// ErrorCodeCircuitOpen means the breaker short-circuited the call
	ErrorCodeCircuitOpen

	// ErrorCodeDuplicateKey is for unique constraint violations
	ErrorCodeDuplicateKey

	// ErrorCodeDB is for general database errors
	ErrorCodeDB

	// ErrorCodeInternal is for missing process configuration and other fatal setup faults
	ErrorCodeInternal
)

// HTTPStatusCode turns an ErrorCode into an http status code
func HTTPStatusCode(c ErrorCode) int {
	switch c {
	case ErrorCodeInvalidRequestBody, ErrorCodeValidation,
		ErrorCodeMarketplaceNotFound, ErrorCodeItemNotAccessible, ErrorCodeInvalidParameter:
		return http.StatusBadRequest
	case ErrorCodeThrottled:
		return http.StatusTooManyRequests
	case ErrorCodeCircuitOpen:
		return http.StatusServiceUnavailable
	case ErrorCodeTimeout:
		return http.StatusGatewayTimeout
	case ErrorCodeNetwork, ErrorCodeRemote:
		return http.StatusBadGateway
	case ErrorCodeDuplicateKey:
		return http.StatusConflict
	case ErrorCodeDB, ErrorCodeInternal, ErrorCodePanic, ErrorCodeUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Error is the structured error type with wrapping and metadata
// msg is human/developer facing; code is machine facing
// field is optional (for validation); op is optional operation tag
// retryAfter is optional (throttle and breaker rejections); orig is the wrapped cause
type Error struct {
	orig       error
	msg        string
	code       ErrorCode
	field      string
	op         string
	retryAfter time.Duration
}

// Wire is the JSON-serializable form returned by the API
// It never carries stack traces or credential material
type Wire struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Field      string    `json:"field,omitempty"`
	RetryAfter int64     `json:"retry_after_seconds,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

// Unwrap returns the wrapped error, if any
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field returns the offending field, if any
func (e *Error) Field() string { return e.field }

// Op returns the operation label, if set
func (e *Error) Op() string { return e.op }

// RetryAfter returns the suggested backoff, zero when none was set
func (e *Error) RetryAfter() time.Duration { return e.retryAfter }

// ToWire converts an *Error to a Wire payload
func (e *Error) ToWire() Wire {
	w := Wire{Code: e.code, Message: e.msg, Field: e.field}
	if e.retryAfter > 0 {
		secs := int64(e.retryAfter / time.Second)
		if secs < 1 {
			secs = 1 // sub-second hints still round up to a whole header value
		}
		w.RetryAfter = secs
	}
	return w
}

// WireFrom converts any error into a Wire payload with best-effort mapping
// If err is nil, returns the zero-value Wire (no error)
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.ToWire()
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// Root returns the deepest wrapped cause
func Root(err error) error {
	for err != nil {
		u := stderrs.Unwrap(err)
		if u == nil {
			return err
		}
		err = u
	}
	return nil
}

// CodeOf extracts an ErrorCode from any error, defaulting to Unknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err has the given code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus returns the mapped HTTP status for any error
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// RetryAfterOf extracts the retry-after hint from any error, zero when absent
func RetryAfterOf(err error) time.Duration {
	if e, ok := As(err); ok {
		return e.retryAfter
	}
	return 0
}

// As unwraps and returns (*Error, true) if err is one of ours
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Mutators (copy-on-write)

// WithField attaches a field to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithField(err error, field string) error {
	if e, ok := As(err); ok {
		c := *e
		c.field = field
		return &c
	}
	return err
}

// WithOp attaches an operation label to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithOp(err error, op string) error {
	if e, ok := As(err); ok {
		c := *e
		c.op = op
		return &c
	}
	return err
}

// WithRetryAfter attaches a backoff hint to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithRetryAfter(err error, d time.Duration) error {
	if e, ok := As(err); ok {
		c := *e
		c.retryAfter = d
		return &c
	}
	return err
}

// Constructors

// New returns a new *Error with the given code and message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf returns a new *Error with code and formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns a new *Error that wraps orig with code and message
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf returns a new *Error that wraps orig with code and formatted message
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// WrapIf wraps only when err != nil (helper for 1-liners)
func WrapIf(err error, code ErrorCode, msg string) error {
	if err == nil {
		return nil
	}
	return Wrap(err, code, msg)
}

// Sugar

// InvalidBodyf returns an invalid request body error
func InvalidBodyf(format string, a ...any) error {
	return Newf(ErrorCodeInvalidRequestBody, format, a...)
}

// Validationf returns a validation error
func Validationf(format string, a ...any) error { return Newf(ErrorCodeValidation, format, a...) }

// MarketplaceNotFoundf returns a marketplace not found error
func MarketplaceNotFoundf(format string, a ...any) error {
	return Newf(ErrorCodeMarketplaceNotFound, format, a...)
}

// ItemNotAccessiblef returns an item not accessible error
func ItemNotAccessiblef(format string, a ...any) error {
	return Newf(ErrorCodeItemNotAccessible, format, a...)
}

// InvalidParamf returns a remote invalid parameter error
func InvalidParamf(format string, a ...any) error {
	return Newf(ErrorCodeInvalidParameter, format, a...)
}

// Throttledf returns a throttled error
func Throttledf(format string, a ...any) error { return Newf(ErrorCodeThrottled, format, a...) }

// Timeoutf returns a timeout error
func Timeoutf(format string, a ...any) error { return Newf(ErrorCodeTimeout, format, a...) }

// Networkf returns a connection-level failure error
func Networkf(format string, a ...any) error { return Newf(ErrorCodeNetwork, format, a...) }

// Remotef returns a generic remote failure error
func Remotef(format string, a ...any) error { return Newf(ErrorCodeRemote, format, a...) }

// CircuitOpenf returns a breaker rejection carrying the remaining cooldown
func CircuitOpenf(retryAfter time.Duration, format string, a ...any) error {
	return WithRetryAfter(Newf(ErrorCodeCircuitOpen, format, a...), retryAfter)
}

// DuplicateKeyf returns a duplicate key error
func DuplicateKeyf(format string, a ...any) error { return Newf(ErrorCodeDuplicateKey, format, a...) }

// DBf returns a general database error
func DBf(format string, a ...any) error { return Newf(ErrorCodeDB, format, a...) }

// Internalf returns an internal configuration/setup error
func Internalf(format string, a ...any) error { return Newf(ErrorCodeInternal, format, a...) }

// PanicErrf returns a panic error
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// HTTP bundles status + wire in one shot (nice for handlers)
func HTTP(err error) (int, Wire) {
	if err == nil {
		return http.StatusOK, Wire{}
	}
	return HTTPStatus(err), WireFrom(err)
}

// Retry semantics

// Transient reports whether the code names a transient external-service failure
// Repeated occurrences are converted into CircuitOpen by the breaker
func Transient(code ErrorCode) bool {
	switch code {
	case ErrorCodeThrottled, ErrorCodeTimeout, ErrorCodeNetwork, ErrorCodeRemote:
		return true
	default:
		return false
	}
}

// Retryable reports whether the error is retryable. Transient remote-service codes
// qualify, plus backend-specific logic (Postgres helpers in pg.go)
func Retryable(err error) bool { return Transient(CodeOf(err)) || IsRetryable(err) }
