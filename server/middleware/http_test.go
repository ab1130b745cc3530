package middleware_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/kbukum/voicelist/logger"
	"github.com/kbukum/voicelist/observability"
	"github.com/kbukum/voicelist/server/middleware"
)

func okHandler(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	})
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, rr.Body.String())
	}
	return body
}

func TestRecovery(t *testing.T) {
	log := logger.NewDefault("test")

	t.Run("passes through", func(t *testing.T) {
		rr := httptest.NewRecorder()
		middleware.Recovery(log)(okHandler(http.StatusOK)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/info", http.NoBody))
		if rr.Code != http.StatusOK {
			t.Errorf("code = %d, want 200", rr.Code)
		}
	})

	t.Run("panic becomes envelope", func(t *testing.T) {
		h := middleware.Recovery(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic("segmenter exploded")
		}))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/transcribe/", http.NoBody))

		if rr.Code != http.StatusInternalServerError {
			t.Fatalf("code = %d, want 500", rr.Code)
		}
		body := decodeEnvelope(t, rr)
		if body["error"] != "Internal server error" || body["code"] != "INTERNAL_ERROR" {
			t.Errorf("body = %v", body)
		}
	})

	t.Run("abort handler propagates", func(t *testing.T) {
		h := middleware.Recovery(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			panic(http.ErrAbortHandler)
		}))
		defer func() {
			if r := recover(); r != http.ErrAbortHandler {
				t.Errorf("recovered %v, want http.ErrAbortHandler", r)
			}
		}()
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	})
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
	}{
		{"generated", ""},
		{"preserved", "client-req-7"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var fromCtx, fromHeader string
			h := middleware.RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fromCtx = logger.RequestIDFromContext(r.Context())
				fromHeader = r.Header.Get(middleware.RequestIDHeader)
			}))

			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			if tc.incoming != "" {
				req.Header.Set(middleware.RequestIDHeader, tc.incoming)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			got := rr.Header().Get(middleware.RequestIDHeader)
			if got == "" {
				t.Fatal("response is missing X-Request-Id")
			}
			if tc.incoming != "" && got != tc.incoming {
				t.Errorf("X-Request-Id = %q, want %q", got, tc.incoming)
			}
			if fromCtx != got || fromHeader != got {
				t.Errorf("context/header ids = %q/%q, want %q", fromCtx, fromHeader, got)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	cfg := &middleware.CORSConfig{
		AllowedOrigins: []string{"https://lists.example.com"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         600,
	}
	tests := []struct {
		name        string
		method      string
		origin      string
		preflight   bool
		wantCode    int
		wantOrigin  string
		wantMethods string
	}{
		{"allowed origin", http.MethodPost, "https://lists.example.com", false, http.StatusOK, "https://lists.example.com", "GET, POST"},
		{"foreign origin", http.MethodPost, "https://evil.example", false, http.StatusOK, "", ""},
		{"no origin", http.MethodGet, "", false, http.StatusOK, "", ""},
		{"preflight", http.MethodOptions, "https://lists.example.com", true, http.StatusNoContent, "https://lists.example.com", "GET, POST"},
		{"bare options", http.MethodOptions, "https://lists.example.com", false, http.StatusOK, "https://lists.example.com", "GET, POST"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/transcribe/", http.NoBody)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if tc.preflight {
				req.Header.Set("Access-Control-Request-Method", "POST")
			}
			rr := httptest.NewRecorder()
			middleware.CORS(cfg)(okHandler(http.StatusOK)).ServeHTTP(rr, req)

			if rr.Code != tc.wantCode {
				t.Errorf("code = %d, want %d", rr.Code, tc.wantCode)
			}
			if got := rr.Header().Get("Access-Control-Allow-Origin"); got != tc.wantOrigin {
				t.Errorf("Allow-Origin = %q, want %q", got, tc.wantOrigin)
			}
			if got := rr.Header().Get("Access-Control-Allow-Methods"); got != tc.wantMethods {
				t.Errorf("Allow-Methods = %q, want %q", got, tc.wantMethods)
			}
			if rr.Header().Get("Vary") != "Origin" {
				t.Errorf("Vary = %q, want Origin", rr.Header().Get("Vary"))
			}
		})
	}
}

func TestCORSWildcard(t *testing.T) {
	cfg := &middleware.CORSConfig{AllowedOrigins: []string{"*"}, AllowCredentials: true}
	req := httptest.NewRequest(http.MethodGet, "/info", http.NoBody)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()
	middleware.CORS(cfg)(okHandler(http.StatusOK)).ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Allow-Origin = %q, want the echoed origin", got)
	}
	if rr.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Error("expected Allow-Credentials")
	}
}

func TestRequestLoggerLevelByStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantLevel string
	}{
		{"server error", http.StatusInternalServerError, "error"},
		{"client error", http.StatusBadRequest, "warn"},
		{"success", http.StatusOK, "debug"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, &buf, "test")
			h := middleware.RequestLogger(log)(okHandler(tc.status))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/transcribe/", http.NoBody))

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("log output is not JSON: %v (%s)", err, buf.String())
			}
			if entry["level"] != tc.wantLevel {
				t.Errorf("level = %v, want %s", entry["level"], tc.wantLevel)
			}
			if entry[logger.FieldStatus] != float64(tc.status) {
				t.Errorf("status = %v, want %d", entry[logger.FieldStatus], tc.status)
			}
		})
	}
}

func TestRequestLoggerSkipsProbes(t *testing.T) {
	for _, path := range []string{"/health", "/info"} {
		var buf bytes.Buffer
		log := logger.NewWithWriter(&logger.Config{Level: "debug", Format: "json"}, &buf, "test")
		called := false
		h := middleware.RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			called = true
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, http.NoBody))

		if !called {
			t.Errorf("%s: handler not called", path)
		}
		if buf.Len() != 0 {
			t.Errorf("%s was logged: %s", path, buf.String())
		}
	}
}

func TestBodySizeLimit(t *testing.T) {
	big := strings.Repeat("x", 2048)

	t.Run("declared length over limit", func(t *testing.T) {
		h := middleware.BodySizeLimit("1KB")(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
			t.Error("handler should not run")
		}))
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/transcribe/", strings.NewReader(big)))

		if rr.Code != http.StatusRequestEntityTooLarge {
			t.Fatalf("code = %d, want 413", rr.Code)
		}
		if body := decodeEnvelope(t, rr); body["code"] != "PAYLOAD_TOO_LARGE" {
			t.Errorf("code = %v", body["code"])
		}
	})

	t.Run("streamed body capped", func(t *testing.T) {
		var readErr error
		h := middleware.BodySizeLimit("1KB")(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			_, readErr = io.ReadAll(r.Body)
		}))
		req := httptest.NewRequest(http.MethodPost, "/transcribe/", strings.NewReader(big))
		req.ContentLength = -1
		h.ServeHTTP(httptest.NewRecorder(), req)

		var maxErr *http.MaxBytesError
		if !errors.As(readErr, &maxErr) {
			t.Errorf("read error = %v, want *http.MaxBytesError", readErr)
		}
	})

	t.Run("small body", func(t *testing.T) {
		var got []byte
		h := middleware.BodySizeLimit("1KB")(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			got, _ = io.ReadAll(r.Body)
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/transcribe/", strings.NewReader("ID3")))
		if string(got) != "ID3" {
			t.Errorf("body = %q, want ID3", got)
		}
	})
}

func TestMetricsPassesThrough(t *testing.T) {
	m, err := observability.NewMetrics(observability.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics() error: %v", err)
	}
	rr := httptest.NewRecorder()
	middleware.Metrics(m)(okHandler(http.StatusAccepted)).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/info", http.NoBody))
	if rr.Code != http.StatusAccepted {
		t.Errorf("code = %d, want 202", rr.Code)
	}
}

func TestChainOrder(t *testing.T) {
	var trace []string
	tag := func(name string) middleware.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				trace = append(trace, name+">")
				next.ServeHTTP(w, r)
				trace = append(trace, "<"+name)
			})
		}
	}
	h := middleware.Chain(tag("outer"), tag("inner"))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		trace = append(trace, "handler")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	want := []string{"outer>", "inner>", "handler", "<inner", "<outer"}
	if !reflect.DeepEqual(trace, want) {
		t.Errorf("trace = %v, want %v", trace, want)
	}
}

type flushRecorder struct {
	*httptest.ResponseRecorder
	flushed bool
}

func (f *flushRecorder) Flush() { f.flushed = true }

func TestLoggedWriterFlushes(t *testing.T) {
	fr := &flushRecorder{ResponseRecorder: httptest.NewRecorder()}
	h := middleware.RequestLogger(logger.NewDefault("test"))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.NewResponseController(w).Flush()
	}))
	h.ServeHTTP(fr, httptest.NewRequest(http.MethodGet, "/transcribe/", http.NoBody))
	if !fr.flushed {
		t.Error("Flush was not delegated to the underlying writer")
	}
}
