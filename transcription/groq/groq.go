// Package groq transcribes audio with Groq's hosted Whisper endpoint.
package groq

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kbukum/voicelist/httpclient"
	"github.com/kbukum/voicelist/transcription"
	"github.com/kbukum/voicelist/util"
)

const (
	ProviderName = "groq"

	DefaultBaseURL     = "https://api.groq.com/openai/v1"
	DefaultModel       = "whisper-large-v3"
	DefaultTimeout     = 60 * time.Second
	DefaultFileName    = "audio.mp3"
	DefaultContentType = "audio/mpeg"

	// UnknownTranscript stands in for a response without a text field.
	UnknownTranscript = "Unknown transcript"

	transcriptionsPath = "/audio/transcriptions"
	displayName        = "Groq"
)

// ErrMissingAPIKey is the cause reported when no key is configured.
var ErrMissingAPIKey = errors.New("missing GROQ_API_KEY")

// Config configures the provider.
type Config struct {
	APIKey  string        `yaml:"api_key" mapstructure:"api_key"`
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Model   string        `yaml:"model" mapstructure:"model"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ApplyDefaults fills in zero-value fields. The key is left alone.
func (c *Config) ApplyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

// Provider implements transcription.Provider. Requests are sent once; there
// are no retries.
type Provider struct {
	cfg  Config
	http *httpclient.Adapter
}

var _ transcription.Provider = (*Provider)(nil)

// NewProvider creates the provider. A missing key is reported per call, not
// here.
func NewProvider(cfg Config, opts ...httpclient.Option) (*Provider, error) {
	cfg.ApplyDefaults()
	client, err := httpclient.New(httpclient.Config{
		Name:    ProviderName,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Auth:    httpclient.BearerAuth(cfg.APIKey),
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("groq: create http client: %w", err)
	}
	return &Provider{cfg: cfg, http: client}, nil
}

func (p *Provider) Name() string { return ProviderName }

// IsAvailable reports whether a key is configured.
func (p *Provider) IsAvailable(_ context.Context) bool { return p.cfg.APIKey != "" }

type transcriptionResponse struct {
	Text     *string `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
}

// Transcribe uploads the audio as multipart form data.
func (p *Provider) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Response, error) {
	if p.cfg.APIKey == "" {
		return nil, p.fail(ErrMissingAPIKey)
	}

	audio, closeAudio, err := openAudio(req)
	if err != nil {
		return nil, p.fail(err)
	}
	defer closeAudio()

	body := &httpclient.MultipartBody{
		Fields: []httpclient.FormField{{Name: "model", Value: util.Coalesce(req.Model, p.cfg.Model)}},
		Files: []httpclient.FileField{{
			FieldName:   "file",
			FileName:    util.Coalesce(req.FileName, DefaultFileName),
			ContentType: util.Coalesce(req.ContentType, DefaultContentType),
			Reader:      audio,
		}},
	}
	if req.Language != "" {
		body.Fields = append(body.Fields, httpclient.FormField{Name: "language", Value: req.Language})
	}

	resp, err := httpclient.Post[transcriptionResponse](ctx, p.http, transcriptionsPath, body)
	if err != nil {
		if he, ok := httpclient.AsError(err); ok && he.StatusCode > 0 {
			return nil, &transcription.Error{Provider: displayName, StatusCode: he.StatusCode, Body: string(he.Body)}
		}
		return nil, p.fail(err)
	}

	text := UnknownTranscript
	if resp.Data.Text != nil {
		text = *resp.Data.Text
	}
	return &transcription.Response{
		Text:     text,
		Language: util.Coalesce(resp.Data.Language, req.Language),
		Duration: resp.Data.Duration,
	}, nil
}

func (p *Provider) fail(cause error) *transcription.Error {
	return &transcription.Error{Provider: displayName, Cause: cause}
}

func openAudio(req transcription.Request) (io.Reader, func(), error) {
	if req.Audio != nil {
		return bytes.NewReader(req.Audio), func() {}, nil
	}
	if req.AudioPath == "" {
		return nil, nil, errors.New("no audio provided")
	}
	f, err := os.Open(req.AudioPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open audio: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}
