package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kbukum/voicelist/llm"
)

func TestRegistered(t *testing.T) {
	d, err := llm.GetDialect(DialectName)
	if err != nil {
		t.Fatalf("GetDialect() error: %v", err)
	}
	if d.Name() != "gemini" {
		t.Errorf("Name() = %q, want gemini", d.Name())
	}
}

func TestEndpoint(t *testing.T) {
	d := &Dialect{}
	if got := d.Endpoint("gemini-1.5-flash"); got != "/v1beta/models/gemini-1.5-flash:generateContent" {
		t.Errorf("Endpoint() = %q", got)
	}
}

func TestEncode(t *testing.T) {
	d := &Dialect{}
	body, err := d.Encode(llm.CompletionRequest{
		SystemPrompt: "be terse",
		Messages: []llm.Message{
			{Role: "user", Content: "hi"},
			{Role: "assistant", Content: "hello"},
		},
		Temperature: 0.2,
		MaxTokens:   256,
	})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	data, _ := json.Marshal(body)
	var got map[string]any
	_ = json.Unmarshal(data, &got)

	contents := got["contents"].([]any)
	if len(contents) != 2 {
		t.Fatalf("contents = %d, want 2", len(contents))
	}
	if role := contents[1].(map[string]any)["role"]; role != "model" {
		t.Errorf("assistant role = %v, want model", role)
	}
	sys := got["systemInstruction"].(map[string]any)["parts"].([]any)[0].(map[string]any)["text"]
	if sys != "be terse" {
		t.Errorf("systemInstruction = %v", sys)
	}
	gc := got["generationConfig"].(map[string]any)
	if gc["temperature"] != 0.2 || gc["maxOutputTokens"] != float64(256) {
		t.Errorf("generationConfig = %v", gc)
	}
}

func TestEncodeMinimal(t *testing.T) {
	d := &Dialect{}
	body, err := d.Encode(llm.CompletionRequest{Messages: []llm.Message{{Role: "user", Content: "x"}}})
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}
	data, _ := json.Marshal(body)
	var got map[string]any
	_ = json.Unmarshal(data, &got)
	if _, ok := got["systemInstruction"]; ok {
		t.Error("unexpected systemInstruction")
	}
	if _, ok := got["generationConfig"]; ok {
		t.Error("unexpected generationConfig")
	}

	if _, err := d.Encode(llm.CompletionRequest{}); err == nil {
		t.Error("expected error without messages")
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr error
	}{
		{
			name: "concatenates parts",
			body: `{"candidates":[{"content":{"parts":[{"text":"[{\"item\":"},{"text":"\"milk\"}]"}]}}],
				"usageMetadata":{"promptTokenCount":10,"candidatesTokenCount":5,"totalTokenCount":15}}`,
			want: `[{"item":"milk"}]`,
		},
		{
			name:    "no candidates",
			body:    `{"candidates":[],"promptFeedback":{"blockReason":"SAFETY"}}`,
			wantErr: ErrNoCandidates,
		},
	}
	d := &Dialect{}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := d.Decode([]byte(tc.body))
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Errorf("err = %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() error: %v", err)
			}
			if resp.Content != tc.want {
				t.Errorf("Content = %q, want %q", resp.Content, tc.want)
			}
			if resp.Usage.TotalTokens != 15 {
				t.Errorf("TotalTokens = %d, want 15", resp.Usage.TotalTokens)
			}
		})
	}

	if _, err := d.Decode([]byte("nope")); err == nil {
		t.Error("expected decode error")
	}
}

func TestAdapterRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/gemini-1.5-flash:generateContent" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if r.Header.Get(APIKeyHeader) != "secret" {
			t.Errorf("api key header = %q", r.Header.Get(APIKeyHeader))
		}
		raw, _ := io.ReadAll(r.Body)
		var req map[string]any
		if err := json.Unmarshal(raw, &req); err != nil {
			t.Errorf("request not JSON: %s", raw)
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"ok"}]}}]}`))
	}))
	defer srv.Close()

	a, err := llm.New(llm.Config{Dialect: DialectName, APIKey: "secret", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if a.Model() != DefaultModel {
		t.Errorf("Model() = %q, want %q", a.Model(), DefaultModel)
	}

	text, err := llm.Complete(context.Background(), a, "system", "user")
	if err != nil {
		t.Fatalf("Complete() error: %v", err)
	}
	if text != "ok" {
		t.Errorf("Complete() = %q, want ok", text)
	}
}
