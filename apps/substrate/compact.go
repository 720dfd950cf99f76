package substrate

import (
	"encoding/binary"
	"fmt"
)

const (
	compactSingleMax = 1 << 6
	compactTwoMax    = 1 << 14
	compactFourMax   = 1 << 30
)

func EncodeCompact(v uint64) []byte {
	switch {
	case v < compactSingleMax:
		return []byte{byte(v << 2)}
	case v < compactTwoMax:
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, uint16(v<<2)|0x01)
		return b
	case v < compactFourMax:
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, uint32(v<<2)|0x02)
		return b
	}
	var le []byte
	for ; v > 0; v >>= 8 {
		le = append(le, byte(v))
	}
	return append([]byte{0x03 + byte(len(le)-4)<<2}, le...)
}

// DecodeCompact returns the value and the number of bytes it occupied.
func DecodeCompact(b []byte) (uint64, int, error) {
	if len(b) == 0 {
		return 0, 0, fmt.Errorf("substrate.DecodeCompact() => empty %w", ErrInvalidEncoding)
	}
	switch b[0] & 0x03 {
	case 0x00:
		return uint64(b[0] >> 2), 1, nil
	case 0x01:
		if len(b) < 2 {
			return 0, 0, fmt.Errorf("substrate.DecodeCompact(%x) => %w", b, ErrInvalidEncoding)
		}
		return uint64(binary.LittleEndian.Uint16(b) >> 2), 2, nil
	case 0x02:
		if len(b) < 4 {
			return 0, 0, fmt.Errorf("substrate.DecodeCompact(%x) => %w", b, ErrInvalidEncoding)
		}
		return uint64(binary.LittleEndian.Uint32(b) >> 2), 4, nil
	}
	n := int(b[0]>>2) + 4
	if n > 8 || len(b) < 1+n {
		return 0, 0, fmt.Errorf("substrate.DecodeCompact(%x) => big integer of %d bytes %w", b, n, ErrInvalidEncoding)
	}
	var v uint64
	for i := n; i > 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v, 1 + n, nil
}

// StripCompactPrefix drops a leading length prefix from an unsigned
// extrinsic. Only the 1, 2 and 4 byte modes are recognized and a first byte
// of 0xfc or above is never treated as a prefix.
func StripCompactPrefix(b []byte) ([]byte, error) {
	if len(b) == 0 || b[0] >= 0xfc {
		return b, nil
	}
	var n int
	switch b[0] & 0x03 {
	case 0x00:
		n = 1
	case 0x01:
		n = 2
	case 0x02:
		n = 4
	default:
		return b, nil
	}
	if len(b) < n {
		return nil, fmt.Errorf("substrate.StripCompactPrefix(%x) => %w", b, ErrInvalidEncoding)
	}
	return b[n:], nil
}
