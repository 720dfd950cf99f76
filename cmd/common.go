package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MixinNetwork/dotsigner/apps/substrate"
	"github.com/MixinNetwork/dotsigner/common"
	"github.com/MixinNetwork/dotsigner/config"
	"github.com/MixinNetwork/dotsigner/signer"
	"github.com/urfave/cli/v2"
)

const MnemonicEnv = "DOTSIGNER_MNEMONIC"

func loadConfiguration(c *cli.Context) (*config.Configuration, error) {
	conf, err := config.ReadConfiguration(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("network") {
		conf.Signer.Network = c.Int("network")
	}
	if c.IsSet("account") {
		account := c.Uint64("account")
		if account >= uint64(substrate.HardenedOffset) {
			return nil, fmt.Errorf("cmd.loadConfiguration(%d) => %w", account, substrate.ErrInvalidIndex)
		}
		conf.Signer.Account = uint32(account)
	}
	if c.IsSet("legacy") {
		conf.Signer.Path = signer.PathGeneric
		if c.Bool("legacy") {
			conf.Signer.Path = signer.PathLegacy
		}
	}
	if c.IsSet("permissive") {
		conf.Signer.PermissiveNetwork = c.Bool("permissive")
	}
	if c.IsSet("listen") {
		conf.HTTP.Listen = c.String("listen")
	}
	return conf, conf.Signer.Validate()
}

func loadSigner(c *cli.Context) (*signer.Signer, error) {
	conf, err := loadConfiguration(c)
	if err != nil {
		return nil, err
	}
	return signer.NewSigner(conf.Signer), nil
}

// readMnemonic never echoes the phrase, it only reads from the flag, the
// environment or the first line of stdin.
func readMnemonic(c *cli.Context) (string, error) {
	if m := c.String("mnemonic"); m != "" {
		return m, nil
	}
	if m := os.Getenv(MnemonicEnv); m != "" {
		return m, nil
	}
	line, err := bufio.NewReader(c.App.Reader).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func readTransaction(c *cli.Context) (substrate.Transaction, error) {
	input := c.String("tx")
	if path := c.String("tx-file"); path != "" {
		b, err := os.ReadFile(common.ExpandTilde(path))
		if err != nil {
			return nil, err
		}
		input = string(b)
	}
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("cmd.readTransaction() => empty %w", substrate.ErrUnsupportedPayloadShape)
	}
	return substrate.ParseTransaction(input)
}
