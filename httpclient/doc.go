// Package httpclient is the outbound HTTP layer shared by the speech-to-text
// and completion clients.
//
// An Adapter owns one *http.Client with a fixed timeout and applies base
// URL, default headers and auth to every Request. Non-2xx responses and
// transport failures come back as a classified *Error. Retry and circuit
// breaking from the resilience package are opt-in per adapter.
//
//	a, _ := httpclient.New(httpclient.Config{
//	    Name:    "groq",
//	    BaseURL: "https://api.groq.com/openai/v1",
//	    Timeout: 60 * time.Second,
//	    Auth:    httpclient.BearerAuth(key),
//	})
//	resp, err := a.Do(ctx, httpclient.Request{
//	    Method: http.MethodPost,
//	    Path:   "/audio/transcriptions",
//	    Body:   &httpclient.MultipartBody{...},
//	})
//
// Post and Get decode JSON responses into a typed value.
package httpclient
