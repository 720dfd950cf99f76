package substrate

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
	"hash"
	"strconv"
	"strings"

	"filippo.io/edwards25519"
	"github.com/tyler-smith/go-bip39"
)

const slip10Curve = "ed25519 seed"

// ExtendedKey is a BIP32-Ed25519 node: kL || kR || chain code.
type ExtendedKey [ExtendedKeySize]byte

type DerivationPath [5]uint32

func SeedFromMnemonic(mnemonic, passphrase string) ([]byte, error) {
	words := strings.Fields(mnemonic)
	if len(words) != 12 && len(words) != 24 {
		return nil, fmt.Errorf("substrate.SeedFromMnemonic(%d words) => %w", len(words), ErrInvalidMnemonic)
	}
	seed, err := bip39.NewSeedWithErrorChecking(strings.Join(words, " "), passphrase)
	if err != nil {
		return nil, fmt.Errorf("substrate.SeedFromMnemonic(%d words) => checksum or wordlist: %w", len(words), ErrInvalidMnemonic)
	}
	return seed, nil
}

func NewRootKey(seed []byte) (ExtendedKey, error) {
	return newRootKey(seed, MaxRootIterations)
}

func newRootKey(seed []byte, limit int) (ExtendedKey, error) {
	var key ExtendedKey
	if len(seed) != SeedSize {
		return key, fmt.Errorf("substrate.NewRootKey(%d) => %w", len(seed), ErrInvalidSeed)
	}

	data := append([]byte{0x01}, seed...)
	chainCode := hmacSum(sha256.New, []byte(slip10Curve), data)
	I := hmacSum(sha512.New, []byte(slip10Curve), seed)
	for n := 0; I[31]&0x20 != 0; n++ {
		if n >= limit {
			clear(I)
			return key, fmt.Errorf("substrate.NewRootKey() => %d iterations %w", n, ErrRootKeyExhausted)
		}
		next := hmacSum(sha512.New, []byte(slip10Curve), I)
		clear(I)
		I = next
	}

	copy(key[:64], I)
	copy(key[64:], chainCode)
	key[0] &= 248
	key[31] &= 127
	key[31] |= 64
	clear(I)
	clear(data)
	return key, nil
}

func NewDerivationPath(network *Network, account uint32, legacy bool) (DerivationPath, error) {
	if account >= HardenedOffset {
		return DerivationPath{}, fmt.Errorf("substrate.NewDerivationPath(%d) => %w", account, ErrInvalidIndex)
	}
	path := DerivationPath{
		PathPurpose,
		HardenedOffset + network.CoinType,
		HardenedOffset + account,
		0,
		0,
	}
	if legacy {
		path[3] = HardenedOffset
		path[4] = HardenedOffset
	}
	return path, nil
}

func (p DerivationPath) String() string {
	parts := []string{"m"}
	for _, i := range p {
		if i >= HardenedOffset {
			parts = append(parts, strconv.FormatUint(uint64(i-HardenedOffset), 10)+"'")
		} else {
			parts = append(parts, strconv.FormatUint(uint64(i), 10))
		}
	}
	return strings.Join(parts, "/")
}

func (k ExtendedKey) DerivePath(path DerivationPath) ExtendedKey {
	node := k
	for _, i := range path {
		node = node.Child(i)
	}
	return node
}

func (k ExtendedKey) Child(index uint32) ExtendedKey {
	kl, kr, cc := k[:32], k[32:64], k[64:]
	var idx [4]byte
	binary.LittleEndian.PutUint32(idx[:], index)

	var data []byte
	if index >= HardenedOffset {
		data = append(data, 0x00)
		data = append(data, kl...)
		data = append(data, kr...)
	} else {
		pub := k.SigningPublicKey()
		data = append(data, 0x02)
		data = append(data, pub[:]...)
	}
	data = append(data, idx[:]...)
	z := hmacSum(sha512.New, cc, data)
	data[0] |= 0x01
	c := hmacSum(sha512.New, cc, data)

	var child ExtendedKey
	zl := scaleBy8(z[:28])
	left := addLittleEndian(kl, zl[:])
	right := addLittleEndian(kr, z[32:])
	copy(child[:32], left[:])
	copy(child[32:64], right[:])
	copy(child[64:], c[32:])

	clear(data)
	clear(z)
	clear(zl[:])
	clear(left[:])
	clear(right[:])
	return child
}

// KeyPair reduces the node to the clamped ed25519 scalar and its public key,
// the key the address is computed from.
func (k ExtendedKey) KeyPair() (secret [32]byte, public [PublicKeySize]byte) {
	h := sha512.Sum512(k[:32])
	copy(secret[:], h[:32])
	clear(h[:])
	secret[0] &= 248
	secret[31] &= 127
	secret[31] |= 64

	s, err := edwards25519.NewScalar().SetBytesWithClamping(secret[:])
	if err != nil {
		panic(err)
	}
	copy(public[:], edwards25519.NewIdentityPoint().ScalarBaseMult(s).Bytes())
	return secret, public
}

func (k ExtendedKey) SigningPublicKey() [PublicKeySize]byte {
	var pub [PublicKeySize]byte
	p := edwards25519.NewIdentityPoint().ScalarBaseMult(leftScalar(k))
	copy(pub[:], p.Bytes())
	return pub
}

func (k *ExtendedKey) Wipe() {
	clear(k[:])
}

func leftScalar(k ExtendedKey) *edwards25519.Scalar {
	var wide [64]byte
	copy(wide[:32], k[:32])
	s, err := edwards25519.NewScalar().SetUniformBytes(wide[:])
	clear(wide[:])
	if err != nil {
		panic(err)
	}
	return s
}

func scaleBy8(b []byte) [32]byte {
	var out [32]byte
	var carry byte
	for i := range b {
		out[i] = b[i]<<3 | carry
		carry = b[i] >> 5
	}
	out[len(b)] = carry
	return out
}

func addLittleEndian(a, b []byte) [32]byte {
	var out [32]byte
	var carry uint16
	for i := range out {
		sum := uint16(a[i]) + uint16(b[i]) + carry
		out[i] = byte(sum)
		carry = sum >> 8
	}
	return out
}

func hmacSum(h func() hash.Hash, key, data []byte) []byte {
	mac := hmac.New(h, key)
	mac.Write(data)
	return mac.Sum(nil)
}
