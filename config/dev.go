package config

import "github.com/MixinNetwork/mixin/logger"

// DevConfig only tunes logging, the signer holds mnemonics in memory and
// exposes no profiling endpoint.
type DevConfig struct {
	LogLevel int `toml:"log-level"`
}

func handleDevConfig(c *DevConfig) {
	logger.SetLevel(logger.INFO)
	if c == nil {
		return
	}
	logger.SetLevel(c.LogLevel)
}
