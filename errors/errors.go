package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is an error that knows how it should be reported to a client.
type AppError struct {
	Code       ErrorCode      `json:"code"`
	Message    string         `json:"message"`
	Retryable  bool           `json:"retryable"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithDetail sets one details entry and returns e.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New builds an AppError whose status and retryability follow code.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: code.HTTPStatus(),
		Retryable:  code.Retryable(),
	}
}

// InvalidInput rejects a request parameter. field may be empty.
func InvalidInput(field, reason string) *AppError {
	e := New(ErrCodeInvalidInput, "Invalid input: "+reason)
	if field != "" {
		e.WithDetail("field", field)
	}
	return e
}

// Validation carries a preformatted validation message.
func Validation(message string) *AppError {
	return New(ErrCodeInvalidInput, message)
}

// MissingField reports an absent required form field, e.g. "file is required".
func MissingField(field string) *AppError {
	return New(ErrCodeMissingField, field+" is required").WithDetail("field", field)
}

// UnsupportedFile rejects an upload; message reaches the client verbatim.
func UnsupportedFile(fileName, message string) *AppError {
	return New(ErrCodeUnsupportedFile, message).WithDetail("file_name", fileName)
}

// PayloadTooLarge reports a body over limit, a human-readable size.
func PayloadTooLarge(limit string) *AppError {
	return New(ErrCodePayloadTooLarge, fmt.Sprintf("Request body exceeds the %s limit", limit)).
		WithDetail("limit", limit)
}

// TranscriptionFailed exposes the speech-to-text failure description as
// the client message.
func TranscriptionFailed(cause error) *AppError {
	e := New(ErrCodeTranscriptionFailed, cause.Error())
	e.Cause = cause
	return e
}

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	e := New(ErrCodeInternal, "An unexpected error occurred. Please try again or contact support.")
	e.Cause = cause
	return e
}

// AsAppError finds an AppError anywhere in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Wrap returns the AppError in err's chain, or Internal(err). Wrap(nil) is nil.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return Internal(err)
}
