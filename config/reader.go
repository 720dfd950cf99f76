package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/MixinNetwork/dotsigner/common"
	"github.com/MixinNetwork/dotsigner/signer"
	"github.com/pelletier/go-toml"
)

const DefaultConfigPath = "~/.mixin/dotsigner/config.toml"

type HTTPConfig struct {
	Listen string `toml:"listen"`
}

type Configuration struct {
	Signer *signer.Configuration `toml:"signer"`
	HTTP   *HTTPConfig           `toml:"http"`
	Dev    *DevConfig            `toml:"dev"`
}

// ReadConfiguration returns the defaults when the file does not exist.
func ReadConfiguration(path string) (*Configuration, error) {
	f, err := os.ReadFile(common.ExpandTilde(path))
	if errors.Is(err, fs.ErrNotExist) {
		f, err = nil, nil
	}
	if err != nil {
		return nil, err
	}
	var conf Configuration
	err = toml.Unmarshal(f, &conf)
	if err != nil {
		return nil, err
	}
	if conf.Signer == nil {
		conf.Signer = &signer.Configuration{}
	}
	if conf.HTTP == nil {
		conf.HTTP = &HTTPConfig{}
	}
	if conf.HTTP.Listen == "" {
		conf.HTTP.Listen = signer.DefaultListen
	}
	handleDevConfig(conf.Dev)
	return &conf, conf.Signer.Validate()
}
