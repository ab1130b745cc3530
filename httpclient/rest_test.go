package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

type echo struct {
	Text string `json:"text"`
}

func TestPostDecodesJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Trace") != "1" {
			t.Errorf("X-Trace = %q, want 1", r.Header.Get("X-Trace"))
		}
		_, _ = w.Write([]byte(`{"text":"2 kg onion"}`))
	}))
	defer srv.Close()

	a, _ := New(Config{BaseURL: srv.URL})
	resp, err := Post[echo](context.Background(), a, "/x", map[string]string{"a": "b"}, WithHeader("X-Trace", "1"))
	if err != nil {
		t.Fatalf("Post() error: %v", err)
	}
	if resp.Data.Text != "2 kg onion" {
		t.Errorf("Data.Text = %q, want %q", resp.Data.Text, "2 kg onion")
	}
}

func TestGetEmptyBodyAndQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "milk" {
			t.Errorf("q = %q, want milk", r.URL.Query().Get("q"))
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	a, _ := New(Config{BaseURL: srv.URL})
	resp, err := Get[echo](context.Background(), a, "/", WithQueryParam("q", "milk"))
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if resp.StatusCode != http.StatusNoContent || resp.Data.Text != "" {
		t.Errorf("got %d %+v", resp.StatusCode, resp.Data)
	}
}

func TestPostDecodeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	a, _ := New(Config{BaseURL: srv.URL})
	if _, err := Post[echo](context.Background(), a, "/", nil); err == nil {
		t.Error("expected decode error")
	}
}

func TestPostStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	a, _ := New(Config{BaseURL: srv.URL})
	_, err := Post[echo](context.Background(), a, "/", nil)
	if !IsAuth(err) {
		t.Errorf("err = %v, want auth error", err)
	}
}
