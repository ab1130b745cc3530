package storage

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/kbukum/voicelist/util"
)

// DefaultDirName is the directory created under the OS temp dir when no base
// path is configured.
const DefaultDirName = "voicelist"

// Config holds storage configuration.
type Config struct {
	// BasePath is the root directory for spooled uploads.
	BasePath string `mapstructure:"base_path" json:"base_path"`

	// CleanOnStop removes leftover files when the spool stops.
	CleanOnStop *bool `mapstructure:"clean_on_stop" json:"clean_on_stop"`
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.BasePath == "" {
		c.BasePath = filepath.Join(os.TempDir(), DefaultDirName)
	}
	if c.CleanOnStop == nil {
		c.CleanOnStop = util.Ptr(true)
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.BasePath == "" {
		return errors.New("storage: base_path is required")
	}
	return nil
}
