package transcription

import (
	"errors"
	"fmt"
)

// Request is one transcription call.
type Request struct {
	// Audio is the encoded audio. When nil, the file at AudioPath is read.
	Audio     []byte
	AudioPath string
	// FileName is the name sent upstream. Backends pick a default.
	FileName string
	// ContentType is the audio MIME type. Backends pick a default.
	ContentType string
	// Language is an optional ISO-639-1 hint.
	Language string
	// Model overrides the backend's configured model.
	Model string
}

// Response is a transcript.
type Response struct {
	Text     string  `json:"text"`
	Language string  `json:"language,omitempty"`
	Duration float64 `json:"duration,omitempty"`
}

// Error is a failed transcription. Exactly one shape is set: StatusCode and
// Body for an upstream rejection, or Cause for everything else.
type Error struct {
	// Provider is the upstream's display name, e.g. "Groq".
	Provider   string
	StatusCode int
	Body       string
	Cause      error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s API error %d: %s", e.Provider, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("Transcription error: %v", e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// IsAPIError reports whether err is an upstream rejection with a status.
func IsAPIError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.StatusCode > 0
}
