package httpclient

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifyStatusCode(t *testing.T) {
	tests := []struct {
		status    int
		wantNil   bool
		wantCode  ErrorCode
		retryable bool
	}{
		{200, true, 0, false},
		{204, true, 0, false},
		{400, false, ErrCodeClient, false},
		{401, false, ErrCodeAuth, false},
		{403, false, ErrCodeAuth, false},
		{404, false, ErrCodeClient, false},
		{413, false, ErrCodeClient, false},
		{429, false, ErrCodeRateLimit, true},
		{500, false, ErrCodeServer, true},
		{503, false, ErrCodeServer, true},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprint(tc.status), func(t *testing.T) {
			e := ClassifyStatusCode(tc.status, []byte("body"))
			if tc.wantNil {
				if e != nil {
					t.Errorf("got %v, want nil", e)
				}
				return
			}
			if e.Code != tc.wantCode || e.Retryable != tc.retryable {
				t.Errorf("got %s/%v, want %s/%v", e.Code, e.Retryable, tc.wantCode, tc.retryable)
			}
			if e.StatusCode != tc.status || string(e.Body) != "body" {
				t.Errorf("got status %d body %q", e.StatusCode, e.Body)
			}
		})
	}
}

func TestErrorPredicatesThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("llm: execute: %w", ClassifyStatusCode(429, nil))
	if !IsRateLimit(wrapped) || !IsRetryable(wrapped) {
		t.Error("expected wrapped 429 to be rate limited and retryable")
	}
	if IsAuth(wrapped) || IsServerError(wrapped) || IsTimeout(wrapped) {
		t.Error("unexpected classification")
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("plain error reported retryable")
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{ClassifyStatusCode(503, nil), "httpclient: server (HTTP 503): Service Unavailable"},
		{NewTimeoutError(errors.New("deadline")), "httpclient: timeout: deadline"},
		{NewRequestError("encode body: x"), "httpclient: client: encode body: x"},
	}
	for _, tc := range tests {
		if got := tc.err.Error(); got != tc.want {
			t.Errorf("Error() = %q, want %q", got, tc.want)
		}
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := NewConnectionError(cause)
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
}
