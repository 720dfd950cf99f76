package main

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/MixinNetwork/dotsigner/cmd"
	"github.com/MixinNetwork/dotsigner/config"
	"github.com/MixinNetwork/dotsigner/signer"
	"github.com/urfave/cli/v2"
)

//go:embed README.md
var README string

//go:embed VERSION
var VERSION string

func main() {
	VERSION = strings.TrimSpace(VERSION)
	app := &cli.App{
		Name:                 "dotsigner",
		Usage:                "Offline Polkadot and Kusama transaction signer",
		Version:              VERSION,
		EnableBashCompletion: true,
		Metadata: map[string]any{
			"README":  README,
			"VERSION": VERSION,
		},
		Commands: []*cli.Command{
			{
				Name:   "address",
				Usage:  "Derive the address of a mnemonic",
				Action: cmd.AddressCmd,
				Flags:  accountFlags(),
			},
			{
				Name:   "sign",
				Usage:  "Derive the account and sign a transaction",
				Action: cmd.SignCmd,
				Flags:  append(accountFlags(), transactionFlags()...),
			},
			{
				Name:      "decode",
				Usage:     "Decode an SS58 address or describe a transaction",
				ArgsUsage: "[address]",
				Action:    cmd.DecodeCmd,
				Flags:     transactionFlags()[:2],
			},
			{
				Name:   "watch",
				Usage:  "Print the address of the latest mnemonic read from stdin",
				Action: cmd.WatchCmd,
				Flags:  accountFlags()[:5],
			},
			{
				Name:   "serve",
				Usage:  "Run the loopback HTTP API",
				Action: cmd.ServeCmd,
				Flags: append(accountFlags()[:5], &cli.StringFlag{
					Name:  "listen",
					Value: signer.DefaultListen,
					Usage: "The HTTP address to listen",
				}),
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func accountFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   config.DefaultConfigPath,
			Usage:   "The configuration file path",
		},
		&cli.IntFlag{
			Name:    "network",
			Aliases: []string{"n"},
			Usage:   "The SS58 network prefix, 0 for polkadot and 2 for kusama",
		},
		&cli.Uint64Flag{
			Name:    "account",
			Aliases: []string{"a"},
			Usage:   "The account index",
		},
		&cli.BoolFlag{
			Name:  "legacy",
			Value: true,
			Usage: "Harden the change and address levels of the derivation path",
		},
		&cli.BoolFlag{
			Name:  "permissive",
			Usage: "Derive unknown networks with the polkadot coin type",
		},
		&cli.StringFlag{
			Name:    "mnemonic",
			Aliases: []string{"m"},
			Usage:   "The BIP39 mnemonic, read from " + cmd.MnemonicEnv + " or stdin when empty",
		},
	}
}

func transactionFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "tx",
			Usage: "The raw hex or JSON transaction",
		},
		&cli.StringFlag{
			Name:  "tx-file",
			Usage: "The file containing the transaction",
		},
		&cli.BoolFlag{
			Name:  "qr",
			Usage: "Print the signed extrinsic as a QR code",
		},
	}
}
