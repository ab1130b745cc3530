package httpclient

import (
	"errors"
	"time"

	"github.com/kbukum/voicelist/resilience"
)

const (
	defaultTimeout = 30 * time.Second
	defaultName    = "http"
)

// Config describes one upstream. Auth, Retry and CircuitBreaker are set in
// code by the provider packages and never read from config.yml.
type Config struct {
	Name    string            `yaml:"name" mapstructure:"name"`
	BaseURL string            `yaml:"base_url" mapstructure:"base_url"`
	Timeout time.Duration     `yaml:"timeout" mapstructure:"timeout"` // covers reading the body
	Headers map[string]string `yaml:"headers" mapstructure:"headers"` // Request.Headers win

	Auth           *AuthConfig                      `yaml:"-" mapstructure:"-"`
	Retry          *resilience.RetryConfig          `yaml:"-" mapstructure:"-"` // nil: one attempt
	CircuitBreaker *resilience.CircuitBreakerConfig `yaml:"-" mapstructure:"-"` // nil: never fail fast
}

func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Name == "" {
		c.Name = defaultName
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return errors.New("httpclient: timeout must be positive")
	}
	return nil
}

// DefaultRetryConfig is resilience.DefaultRetryConfig restricted to
// IsRetryable errors.
func DefaultRetryConfig() *resilience.RetryConfig {
	cfg := resilience.DefaultRetryConfig()
	cfg.RetryIf = IsRetryable
	return &cfg
}

// DefaultCircuitBreakerConfig counts only IsRetryable errors as failures,
// so a 400 from a bad prompt never opens the circuit.
func DefaultCircuitBreakerConfig(name string) *resilience.CircuitBreakerConfig {
	cfg := resilience.DefaultCircuitBreakerConfig(name)
	cfg.IsFailure = IsRetryable
	return &cfg
}
