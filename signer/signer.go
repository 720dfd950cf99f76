package signer

import (
	"context"
	"fmt"

	"github.com/MixinNetwork/dotsigner/apps/substrate"
	"github.com/MixinNetwork/dotsigner/common"
	"github.com/MixinNetwork/dotsigner/util"
	"github.com/MixinNetwork/mixin/logger"
)

type Signer struct {
	conf *Configuration
}

func NewSigner(conf *Configuration) *Signer {
	if conf == nil {
		conf = &Configuration{}
	}
	return &Signer{conf: conf}
}

func (s *Signer) Configuration() *Configuration {
	return s.conf
}

// NewRequest fills a request with the configured network, account and path mode.
func (s *Signer) NewRequest(mnemonic string) *Request {
	return &Request{
		Id:       util.NewRequestId(),
		Mnemonic: mnemonic,
		Account:  s.conf.Account,
		Network:  byte(s.conf.Network),
		Legacy:   s.conf.Legacy(),
	}
}

func (s *Signer) DeriveAccount(ctx context.Context, req *Request) (*Account, error) {
	node, _, acc, err := s.derive(ctx, req)
	if err != nil {
		return nil, err
	}
	node.Wipe()
	logger.Verbosef("Signer.DeriveAccount(%s) => %s %s", req.Id, acc.Path, acc.Address)
	return acc, nil
}

func (s *Signer) DeriveAndSign(ctx context.Context, req *Request) (*Result, error) {
	if req.Transaction == nil {
		return nil, fmt.Errorf("Signer.DeriveAndSign(%s) => %w", req.Id, substrate.ErrUnsupportedPayloadShape)
	}
	node, public, acc, err := s.derive(ctx, req)
	if err != nil {
		return nil, err
	}
	defer node.Wipe()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	signed := substrate.SignTransaction(node, public, req.Transaction)
	if !substrate.VerifySignature(node.SigningPublicKey(), signed.Payload, signed.Signature) {
		return nil, fmt.Errorf("Signer.DeriveAndSign(%s) => signature self-check failed", req.Id)
	}
	logger.Verbosef("Signer.DeriveAndSign(%s) => %s %d %t", req.Id, acc.Address, len(signed.Extrinsic), signed.Hashed)
	return &Result{
		Account:   *acc,
		Signature: common.EncodeHex(signed.Signature[:]),
		SignedTx:  common.EncodeHex(signed.Extrinsic),
		Hashed:    signed.Hashed,
	}, nil
}

func (s *Signer) derive(ctx context.Context, req *Request) (substrate.ExtendedKey, [substrate.PublicKeySize]byte, *Account, error) {
	var node substrate.ExtendedKey
	var public [substrate.PublicKeySize]byte
	if req.Id == "" {
		req.Id = util.NewRequestId()
	}

	mnemonic := util.NormalizeMnemonic(req.Mnemonic)
	seed, err := substrate.SeedFromMnemonic(mnemonic, s.conf.Passphrase)
	if err != nil {
		return node, public, nil, err
	}
	defer common.Wipe(seed)

	network, err := substrate.LookupNetwork(req.Network, s.conf.PermissiveNetwork)
	if err != nil {
		return node, public, nil, err
	}
	if network.Name == substrate.UnknownNetworkName {
		logger.Verbosef("Signer.derive(%s) unknown network %d with coin type %d", req.Id, req.Network, network.CoinType)
	}
	path, err := substrate.NewDerivationPath(network, req.Account, req.Legacy)
	if err != nil {
		return node, public, nil, err
	}
	if err := ctx.Err(); err != nil {
		return node, public, nil, err
	}

	root, err := substrate.NewRootKey(seed)
	if err != nil {
		return node, public, nil, err
	}
	node = root.DerivePath(path)
	root.Wipe()
	if err := ctx.Err(); err != nil {
		node.Wipe()
		return node, public, nil, err
	}

	secret, public := node.KeyPair()
	common.Wipe(secret[:])
	address, err := substrate.EncodeAddress(req.Network, public[:])
	if err != nil {
		node.Wipe()
		return node, public, nil, err
	}
	return node, public, &Account{
		Id:        req.Id,
		Address:   address,
		PublicKey: common.EncodeHex(public[:]),
		Network:   network.Name,
		Path:      path.String(),
	}, nil
}
