package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/MixinNetwork/dotsigner/common"
	"github.com/MixinNetwork/dotsigner/signer"
	"github.com/MixinNetwork/mixin/logger"
	"github.com/mdp/qrterminal"
	"github.com/urfave/cli/v2"
)

func AddressCmd(c *cli.Context) error {
	s, err := loadSigner(c)
	if err != nil {
		return err
	}
	mnemonic, err := readMnemonic(c)
	if err != nil {
		return err
	}
	acc, err := s.DeriveAccount(c.Context, s.NewRequest(mnemonic))
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "address: %s\npublic: %s\npath: %s\nnetwork: %s\n", acc.Address, acc.PublicKey, acc.Path, acc.Network)
	return nil
}

func SignCmd(c *cli.Context) error {
	s, err := loadSigner(c)
	if err != nil {
		return err
	}
	tx, err := readTransaction(c)
	if err != nil {
		return err
	}
	mnemonic, err := readMnemonic(c)
	if err != nil {
		return err
	}
	req := s.NewRequest(mnemonic)
	req.Transaction = tx
	res, err := s.DeriveAndSign(c.Context, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, string(common.MarshalJSONOrPanic(res)))
	if c.Bool("qr") {
		qrterminal.GenerateHalfBlock(res.SignedTx, qrterminal.L, c.App.Writer)
	}
	return nil
}

func DecodeCmd(c *cli.Context) error {
	if c.IsSet("tx") || c.IsSet("tx-file") {
		tx, err := readTransaction(c)
		if err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, string(common.MarshalJSONOrPanic(signer.DescribeTransaction(tx))))
		return nil
	}
	da, err := signer.DecodeAddress(c.Args().First())
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "prefix: %d\nnetwork: %s\npublic: %s\n", da.Prefix, da.Network, da.PublicKey)
	return nil
}

// WatchCmd reads one mnemonic per line and prints the address of the latest
// one, results of lines superseded before they finish are dropped.
func WatchCmd(c *cli.Context) error {
	s, err := loadSigner(c)
	if err != nil {
		return err
	}
	preview := signer.NewPreview(s, func(req *signer.Request, acc *signer.Account, err error) {
		if err != nil {
			fmt.Fprintf(c.App.Writer, "error: %v\n", err)
			return
		}
		fmt.Fprintf(c.App.Writer, "%s %s\n", acc.Path, acc.Address)
	})
	defer preview.Cancel()

	scanner := bufio.NewScanner(c.App.Reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		preview.Submit(c.Context, s.NewRequest(line))
	}
	preview.Wait()
	return scanner.Err()
}

func ServeCmd(c *cli.Context) error {
	conf, err := loadConfiguration(c)
	if err != nil {
		return err
	}
	logger.Printf("ServeCmd(%s, %d, %s)", conf.HTTP.Listen, conf.Signer.Network, conf.Signer.Path)
	s := signer.NewSigner(conf.Signer)
	return s.StartHTTP(conf.HTTP.Listen, c.App.Version)
}
