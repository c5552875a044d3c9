package commands

import (
	"github.com/itblio/itbl/src/config"
)

// CLIConfig contains configuration for the itbl commands
type CLIConfig struct {
	Itbl   config.Config `mapstructure:",squash"`
	Pretty bool          `mapstructure:"pretty"`
}

// NewDefaultCLIConfig creates a CLIConfig with default values
func NewDefaultCLIConfig() *CLIConfig {
	return &CLIConfig{
		Itbl:   *config.NewDefaultConfig(),
		Pretty: false,
	}
}
