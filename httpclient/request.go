package httpclient

import "net/http"

// Request is one call to the upstream. Path is resolved against
// Config.BaseURL unless it already carries a scheme.
type Request struct {
	Method  string
	Path    string
	Headers map[string]string
	Query   map[string]string
	// Body is sent as multipart for *MultipartBody, raw for io.Reader and
	// []byte, text/plain for string, and JSON for anything else.
	Body any
	Auth *AuthConfig // nil uses Config.Auth
}

// Response holds the status and the fully read body.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *Response) IsSuccess() bool { return r.StatusCode/100 == 2 }
