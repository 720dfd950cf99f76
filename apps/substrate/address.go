package substrate

import (
	"fmt"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

const (
	ss58Prefix      = "SS58PRE"
	ss58AddressSize = 1 + PublicKeySize + 2
)

func EncodeAddress(prefix byte, public []byte) (string, error) {
	if len(public) != PublicKeySize {
		return "", fmt.Errorf("substrate.EncodeAddress(%d, %x) => %w", prefix, public, ErrInvalidEncoding)
	}
	if prefix > MaxSimplePrefix {
		return "", fmt.Errorf("substrate.EncodeAddress(%d) => %w", prefix, ErrUnsupportedNetwork)
	}
	data := make([]byte, 0, ss58AddressSize)
	data = append(data, prefix)
	data = append(data, public...)
	sum := ss58Checksum(data)
	data = append(data, sum[:2]...)
	return base58.Encode(data), nil
}

func DecodeAddress(address string) (byte, [PublicKeySize]byte, error) {
	var public [PublicKeySize]byte
	data, err := base58.Decode(address)
	if err != nil {
		return 0, public, fmt.Errorf("base58.Decode(%s) => %v: %w", address, err, ErrInvalidEncoding)
	}
	if len(data) != ss58AddressSize {
		return 0, public, fmt.Errorf("substrate.DecodeAddress(%s) => length %d %w", address, len(data), ErrInvalidEncoding)
	}
	if data[0] > MaxSimplePrefix {
		return 0, public, fmt.Errorf("substrate.DecodeAddress(%s) => prefix %d %w", address, data[0], ErrInvalidEncoding)
	}
	sum := ss58Checksum(data[:33])
	if data[33] != sum[0] || data[34] != sum[1] {
		return 0, public, fmt.Errorf("substrate.DecodeAddress(%s) => %w", address, ErrInvalidChecksum)
	}
	copy(public[:], data[1:33])
	return data[0], public, nil
}

func ss58Checksum(data []byte) [blake2b.Size]byte {
	msg := make([]byte, 0, len(ss58Prefix)+len(data))
	msg = append(msg, ss58Prefix...)
	msg = append(msg, data...)
	return blake2b.Sum512(msg)
}
