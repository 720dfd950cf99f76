package signer

import (
	"fmt"

	"github.com/MixinNetwork/dotsigner/apps/substrate"
)

const (
	PathLegacy  = "legacy"
	PathGeneric = "generic"
)

type Configuration struct {
	Network           int    `toml:"network"`
	Account           uint32 `toml:"account"`
	Path              string `toml:"path"`
	PermissiveNetwork bool   `toml:"permissive-network"`
	Passphrase        string `toml:"passphrase"`
}

func (c *Configuration) Validate() error {
	if c.Network < 0 || c.Network > substrate.MaxSimplePrefix {
		return fmt.Errorf("signer.Configuration.Validate(%d) => %w", c.Network, substrate.ErrUnsupportedNetwork)
	}
	switch c.Path {
	case "", PathLegacy, PathGeneric:
	default:
		return fmt.Errorf("invalid derivation path mode %s", c.Path)
	}
	if c.Account >= substrate.HardenedOffset {
		return fmt.Errorf("signer.Configuration.Validate(%d) => %w", c.Account, substrate.ErrInvalidIndex)
	}
	return nil
}

func (c *Configuration) Legacy() bool {
	return c.Path != PathGeneric
}

type Request struct {
	Id          string
	Mnemonic    string
	Account     uint32
	Network     byte
	Legacy      bool
	Transaction substrate.Transaction
}

type Account struct {
	Id        string `json:"id"`
	Address   string `json:"address"`
	PublicKey string `json:"public_key"`
	Network   string `json:"network"`
	Path      string `json:"path"`
}

type Result struct {
	Account
	Signature string `json:"signature"`
	SignedTx  string `json:"signed_tx"`
	Hashed    bool   `json:"hashed"`
}
