// Package gemini is the llm dialect for Google's Generative Language API.
// Importing it registers the "gemini" dialect.
package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/kbukum/voicelist/httpclient"
	"github.com/kbukum/voicelist/llm"
)

const (
	DialectName    = "gemini"
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-1.5-flash"
	APIKeyHeader   = "x-goog-api-key"
)

// ErrNoCandidates is returned when the response carries no candidate,
// typically because the prompt was blocked.
var ErrNoCandidates = errors.New("gemini: response has no candidates")

func init() {
	llm.RegisterDialect(DialectName, &Dialect{})
}

// Dialect implements llm.Dialect for generateContent.
type Dialect struct{}

var _ llm.Dialect = (*Dialect)(nil)

func (d *Dialect) Name() string    { return DialectName }
func (d *Dialect) BaseURL() string { return DefaultBaseURL }
func (d *Dialect) Model() string   { return DefaultModel }

// Endpoint returns /v1beta/models/{model}:generateContent.
func (d *Dialect) Endpoint(model string) string {
	return "/v1beta/models/" + url.PathEscape(model) + ":generateContent"
}

// Auth sends the key in the x-goog-api-key header.
func (d *Dialect) Authorize(apiKey string) *httpclient.AuthConfig {
	return httpclient.APIKeyAuth(apiKey, APIKeyHeader)
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
		TotalTokenCount      int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
	ModelVersion string `json:"modelVersion"`
}

// Encode maps messages to contents. The assistant role becomes
// "model".
func (d *Dialect) Encode(req llm.CompletionRequest) (any, error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("gemini: at least one message is required")
	}

	body := generateRequest{Contents: make([]content, 0, len(req.Messages))}
	for _, m := range req.Messages {
		role := m.Role
		if role == llm.RoleAssistant {
			role = "model"
		}
		body.Contents = append(body.Contents, content{Role: role, Parts: []part{{Text: m.Content}}})
	}
	if req.SystemPrompt != "" {
		body.SystemInstruction = &content{Parts: []part{{Text: req.SystemPrompt}}}
	}
	if req.Temperature != 0 || req.MaxTokens > 0 {
		gc := &generationConfig{MaxOutputTokens: req.MaxTokens}
		if req.Temperature != 0 {
			t := req.Temperature
			gc.Temperature = &t
		}
		body.GenerationConfig = gc
	}
	return body, nil
}

// Decode concatenates the text parts of the first candidate.
func (d *Dialect) Decode(body []byte) (*llm.CompletionResponse, error) {
	var resp generateResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("gemini: decode response: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return nil, ErrNoCandidates
	}

	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}

	return &llm.CompletionResponse{
		Content: sb.String(),
		Model:   resp.ModelVersion,
		Usage: llm.Usage{
			PromptTokens:     resp.UsageMetadata.PromptTokenCount,
			CompletionTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:      resp.UsageMetadata.TotalTokenCount,
		},
	}, nil
}
