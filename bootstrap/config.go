package bootstrap

import "github.com/kbukum/voicelist/config"

// Config is satisfied by any struct embedding config.ServiceConfig, for
// example app.Config.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
