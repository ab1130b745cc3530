package errors

import "net/http"

// ErrorCode is the machine-readable "code" member of the error envelope.
type ErrorCode string

const (
	ErrCodeInvalidInput        ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField        ErrorCode = "MISSING_FIELD"
	ErrCodeUnsupportedFile     ErrorCode = "UNSUPPORTED_FILE"
	ErrCodePayloadTooLarge     ErrorCode = "PAYLOAD_TOO_LARGE"
	ErrCodeTranscriptionFailed ErrorCode = "TRANSCRIPTION_FAILED"
	ErrCodeInternal            ErrorCode = "INTERNAL_ERROR"
)

var codeStatus = map[ErrorCode]int{
	ErrCodeInvalidInput:        http.StatusBadRequest,
	ErrCodeMissingField:        http.StatusBadRequest,
	ErrCodeUnsupportedFile:     http.StatusBadRequest,
	ErrCodePayloadTooLarge:     http.StatusRequestEntityTooLarge,
	ErrCodeTranscriptionFailed: http.StatusInternalServerError,
	ErrCodeInternal:            http.StatusInternalServerError,
}

// HTTPStatus is the status a response carrying c is sent with. Unknown
// codes map to 500.
func (c ErrorCode) HTTPStatus() int {
	if s, ok := codeStatus[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Retryable reports whether resending the same request may succeed. None
// of the codes qualify: Groq is never retried and client errors repeat.
func (c ErrorCode) Retryable() bool { return false }
