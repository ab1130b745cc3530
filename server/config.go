package server

import (
	"fmt"
	"time"

	"github.com/kbukum/voicelist/server/middleware"
	"github.com/kbukum/voicelist/util"
	"github.com/kbukum/voicelist/validation"
)

const (
	// DefaultPort is where the transcription API listens.
	DefaultPort = 8000
	// DefaultMaxBodySize bounds uploads when no limit is configured.
	DefaultMaxBodySize = "25MB"
)

// Config is the server section of config.yml. Timeouts are whole seconds.
type Config struct {
	Host         string                `yaml:"host" mapstructure:"host"`
	Port         int                   `yaml:"port" mapstructure:"port" validate:"gte=0,lte=65535"`
	ReadTimeout  int                   `yaml:"read_timeout" mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout int                   `yaml:"write_timeout" mapstructure:"write_timeout" validate:"gte=0"`
	IdleTimeout  int                   `yaml:"idle_timeout" mapstructure:"idle_timeout" validate:"gte=0"`
	MaxBodySize  string                `yaml:"max_body_size" mapstructure:"max_body_size"`
	CORS         middleware.CORSConfig `yaml:"cors" mapstructure:"cors"`
}

// ApplyDefaults fills unset fields. The write timeout has to cover a full
// Whisper round trip plus extraction.
func (c *Config) ApplyDefaults() {
	setIfZero(&c.Port, DefaultPort)
	setIfZero(&c.ReadTimeout, 30)
	setIfZero(&c.WriteTimeout, 180)
	setIfZero(&c.IdleTimeout, 60)
	c.MaxBodySize = util.Coalesce(c.MaxBodySize, DefaultMaxBodySize)

	if len(c.CORS.AllowedOrigins) == 0 {
		c.CORS.AllowedOrigins = []string{"*"}
	}
	if len(c.CORS.AllowedMethods) == 0 {
		c.CORS.AllowedMethods = []string{"GET", "POST", "OPTIONS"}
	}
	if len(c.CORS.AllowedHeaders) == 0 {
		c.CORS.AllowedHeaders = []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader}
	}
}

// Validate rejects out-of-range ports, negative timeouts and unparsable sizes.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if c.MaxBodySize != "" && util.ParseSize(c.MaxBodySize, -1) <= 0 {
		return fmt.Errorf("server.max_body_size is not a valid size (got: %q)", c.MaxBodySize)
	}
	return nil
}

func (c *Config) addr() string { return fmt.Sprintf("%s:%d", c.Host, c.Port) }

func seconds(n int) time.Duration { return time.Duration(n) * time.Second }

func setIfZero(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}
