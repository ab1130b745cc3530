package app

import (
	"fmt"

	"github.com/kbukum/voicelist/config"
	"github.com/kbukum/voicelist/extraction"
	"github.com/kbukum/voicelist/llm"
	"github.com/kbukum/voicelist/llm/gemini"
	"github.com/kbukum/voicelist/observability"
	"github.com/kbukum/voicelist/server"
	"github.com/kbukum/voicelist/storage"
	"github.com/kbukum/voicelist/transcription/groq"
	"github.com/kbukum/voicelist/validation"
)

// ServiceName is the default service name and config lookup key.
const ServiceName = "voicelist"

// Config is the full service configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Storage       storage.Config       `yaml:"storage" mapstructure:"storage"`
	Groq          groq.Config          `yaml:"groq" mapstructure:"groq"`
	Gemini        llm.Config           `yaml:"gemini" mapstructure:"gemini"`
	Extraction    ExtractionConfig     `yaml:"extraction" mapstructure:"extraction"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// ExtractionConfig selects the extractor used when a request names none.
type ExtractionConfig struct {
	Default string `yaml:"default" mapstructure:"default" validate:"oneof=heuristic llm"`
}

// ApplyDefaults fills unset values in every section.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = ServiceName
	}
	c.ServiceConfig.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Storage.ApplyDefaults()
	c.Groq.ApplyDefaults()
	if c.Gemini.Dialect == "" {
		c.Gemini.Dialect = gemini.DialectName
	}
	c.Gemini.ApplyDefaults()
	if c.Extraction.Default == "" {
		c.Extraction.Default = string(extraction.ModeHeuristic)
	}
	c.Observability.ApplyDefaults()
}

// Validate checks every section. API keys are never required here.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Gemini.Validate(); err != nil {
		return fmt.Errorf("gemini: %w", err)
	}
	if err := c.Observability.Validate(); err != nil {
		return err
	}
	return validation.Validate(c.Extraction)
}
