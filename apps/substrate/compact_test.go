package substrate

import (
	"encoding/hex"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompactBoundaries(t *testing.T) {
	require := require.New(t)

	for _, c := range []struct {
		value   uint64
		encoded string
	}{
		{0, "00"},
		{1, "04"},
		{63, "fc"},
		{64, "0101"},
		{16383, "fdff"},
		{16384, "02000100"},
		{1073741823, "feffffff"},
		{1073741824, "0300000040"},
		{math.MaxUint32, "03ffffffff"},
		{math.MaxUint32 + 1, "070000000001"},
		{math.MaxUint64, "13ffffffffffffffff"},
	} {
		b := EncodeCompact(c.value)
		require.Equal(c.encoded, hex.EncodeToString(b), c.value)
		v, n, err := DecodeCompact(append(b, 0xaa, 0xbb))
		require.Nil(err)
		require.Equal(c.value, v)
		require.Equal(len(b), n)
	}
}

func TestCompactDecodeInvalid(t *testing.T) {
	require := require.New(t)

	for _, s := range []string{"", "01", "020001", "03000000", "170000000000000000000000"} {
		b, _ := hex.DecodeString(s)
		_, _, err := DecodeCompact(b)
		require.True(errors.Is(err, ErrInvalidEncoding), s)
	}
}

func TestStripCompactPrefix(t *testing.T) {
	require := require.New(t)

	for _, c := range []struct {
		input  string
		output string
	}{
		{"", ""},
		{"0c0a0b0c", "0a0b0c"},
		{"fc0a0b", "fc0a0b"},
		{"fd0a0b", "fd0a0b"},
		{"fe0a0b0c0d", "fe0a0b0c0d"},
		{"15010a0b", "0a0b"},
		{"0201000000", "00"},
		{"0300000040aa", "0300000040aa"},
		{"9004", "04"},
	} {
		b, _ := hex.DecodeString(c.input)
		out, err := StripCompactPrefix(b)
		require.Nil(err, c.input)
		require.Equal(c.output, hex.EncodeToString(out), c.input)
	}

	_, err := StripCompactPrefix([]byte{0x01})
	require.True(errors.Is(err, ErrInvalidEncoding))
	_, err = StripCompactPrefix([]byte{0x02, 0x00, 0x01})
	require.True(errors.Is(err, ErrInvalidEncoding))
}
