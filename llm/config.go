package llm

import (
	"fmt"
	"time"

	"github.com/kbukum/voicelist/resilience"
)

const defaultTimeout = 120 * time.Second

// Config configures an Adapter.
type Config struct {
	// Name identifies the adapter in logs and metrics. Defaults to the dialect name.
	Name string `yaml:"name" mapstructure:"name"`

	// Dialect selects the provider mapping registered via RegisterDialect.
	Dialect string `yaml:"dialect" mapstructure:"dialect"`

	// APIKey may be empty; the adapter is then unavailable.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`

	// BaseURL defaults to the dialect's public endpoint.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Model defaults to the dialect's default model.
	Model string `yaml:"model" mapstructure:"model"`

	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`

	// MaxTokens of 0 leaves the limit to the provider.
	MaxTokens int `yaml:"max_tokens" mapstructure:"max_tokens"`

	// Timeout bounds one HTTP exchange. Defaults to 120s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Retry enables retries of rate-limited and 5xx responses. Nil disables them.
	Retry *resilience.RetryConfig `yaml:"retry" mapstructure:"retry"`

	// CircuitBreaker enables fail-fast after repeated upstream failures.
	CircuitBreaker *resilience.CircuitBreakerConfig `yaml:"circuit_breaker" mapstructure:"circuit_breaker"`
}

// ApplyDefaults fills in zero-value fields that do not depend on the dialect.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.Name == "" && c.Dialect != "" {
		c.Name = c.Dialect
	}
}

// Validate checks the configuration. An empty API key is valid.
func (c *Config) Validate() error {
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("llm: temperature %.2f out of range [0, 2]", c.Temperature)
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("llm: max_tokens must not be negative")
	}
	return nil
}
