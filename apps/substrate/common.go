package substrate

import (
	"errors"
	"fmt"
)

const (
	NetworkPolkadot = 0
	NetworkKusama   = 2

	CoinTypePolkadot = 354
	CoinTypeKusama   = 434

	HardenedOffset uint32 = 0x80000000
	PathPurpose    uint32 = 0x8000002C

	// simple ss58 format only, two byte prefixes start at 64
	MaxSimplePrefix = 63

	MaxRootIterations = 256

	SeedSize        = 64
	ExtendedKeySize = 96
	PublicKeySize   = 32
	SignatureSize   = 64

	MaxUnhashedPayload = 256

	ExtrinsicVersionSigned = 0x84
	AddressTypeId          = 0x00
	SignatureTypeEd25519   = 0x01
)

var (
	ErrInvalidMnemonic         = errors.New("invalid mnemonic")
	ErrInvalidEncoding         = errors.New("invalid encoding")
	ErrInvalidChecksum         = errors.New("invalid ss58 checksum")
	ErrUnsupportedPayloadShape = errors.New("unsupported payload shape")
	ErrUnsupportedNetwork      = errors.New("unsupported network")
	ErrInvalidIndex            = errors.New("invalid index")
	ErrInvalidSeed             = errors.New("invalid seed")
	ErrRootKeyExhausted        = errors.New("root key rejection sampling exhausted")
)

const UnknownNetworkName = "unknown"

type Network struct {
	Prefix   byte
	Name     string
	CoinType uint32
}

var networks = map[byte]*Network{
	NetworkPolkadot: {Prefix: NetworkPolkadot, Name: "polkadot", CoinType: CoinTypePolkadot},
	NetworkKusama:   {Prefix: NetworkKusama, Name: "kusama", CoinType: CoinTypeKusama},
}

// LookupNetwork resolves the slip-0044 coin type of an ss58 prefix. Unknown
// prefixes are rejected unless permissive, in which case they share the
// polkadot coin type.
func LookupNetwork(prefix byte, permissive bool) (*Network, error) {
	if n := networks[prefix]; n != nil {
		return n, nil
	}
	if prefix > MaxSimplePrefix || !permissive {
		return nil, fmt.Errorf("substrate.LookupNetwork(%d) => %w", prefix, ErrUnsupportedNetwork)
	}
	return &Network{Prefix: prefix, Name: UnknownNetworkName, CoinType: CoinTypePolkadot}, nil
}

func NetworkName(prefix byte) string {
	if n := networks[prefix]; n != nil {
		return n.Name
	}
	return UnknownNetworkName
}
