package config

import (
	"os"

	"github.com/pseudomuto/adapterkit/pkg/consts"
	"go.uber.org/fx"
)

var Module = fx.Module("config", fx.Provide(
	// Loads adapterkit.yaml from the working directory when it exists and
	// falls back to the defaults otherwise.
	func() (*Config, error) {
		if _, err := os.Stat(consts.ConfigFile); os.IsNotExist(err) {
			return Default(), nil
		}

		return LoadConfigFile(consts.ConfigFile)
	},
))
