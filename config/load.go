package config

import (
	"github.com/fox-one/pkg/config"

	"github.com/burrowHQ/burrowland-sub002/core"
)

// Load load config file
func Load(cfgFile string, cfg *core.Config) error {
	config.AutomaticLoadEnv("BURROWLAND")
	if err := config.LoadYaml(cfgFile, cfg); err != nil {
		return err
	}

	defaults(cfg)
	return nil
}

func defaults(cfg *core.Config) {
	if cfg.Risk.MaxNumAssets == 0 {
		cfg.Risk.MaxNumAssets = 16
	}

	if cfg.Risk.MaximumRecencyDurationSec == 0 {
		cfg.Risk.MaximumRecencyDurationSec = 90
	}

	if cfg.Risk.MaximumStalenessDurationSec == 0 {
		cfg.Risk.MaximumStalenessDurationSec = 3600
	}

	if cfg.Margin.MaxSlippageRate == 0 {
		cfg.Margin.MaxSlippageRate = 100
	}

	if cfg.Margin.MinSafetyBuffer == 0 {
		cfg.Margin.MinSafetyBuffer = 1000
	}
}
