package substrate

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"
)

const (
	testGenesisHash    = "b0a8d493285c2df73290dfb7e61f870f17b41801197a149ca93654499ea3dafe"
	testCallData       = "05030011111111111111111111111111111111111111111111111111111111111111110b00407a10f35a"
	testStructuredTx   = `{"callData":"0x` + testCallData + `","address":"ESNyWGTmrmSQezugvJ17vBnvTWv5wx4xWfv1XtTwL7oyTwW","signedExtensions":{"CheckNonZeroSender":{"identifier":"CheckNonZeroSender","value":"0x","additionalSigned":"0x"},"CheckSpecVersion":{"identifier":"CheckSpecVersion","value":"0x","additionalSigned":"0x30460f00"},"CheckTxVersion":{"identifier":"CheckTxVersion","value":"0x","additionalSigned":"0x1a000000"},"CheckGenesis":{"identifier":"CheckGenesis","value":"0x","additionalSigned":"0x` + testGenesisHash + `"},"CheckMortality":{"identifier":"CheckMortality","value":"0x00","additionalSigned":"0x` + testGenesisHash + `"},"CheckNonce":{"identifier":"CheckNonce","value":"0x04","additionalSigned":"0x"},"CheckWeight":{"identifier":"CheckWeight","value":"0x"},"ChargeTransactionPayment":{"identifier":"ChargeTransactionPayment","value":"0x00","additionalSigned":"0x"},"CheckMetadataHash":{"identifier":"CheckMetadataHash","value":"0x00","additionalSigned":"0x00"}}}`
	testStructuredBlob = testCallData + "00040000" + "30460f00" + "1a000000" + testGenesisHash + testGenesisHash + "00"
	testStructuredSig  = "0aabdfb23986de15909f484020a2a502b985bc5db26403a1d40a5e3c696cd3a9c555ed3136d25250bed04f7daefe86dd4269eeb0388eef6d5528c2306df9790f"
	testStructuredExt  = "45028400526a244d71c4f8f15429d022e8cb882a11b40b8244d1e9fdba0aa4d1c23ae754010aabdfb23986de15909f484020a2a502b985bc5db26403a1d40a5e3c696cd3a9c555ed3136d25250bed04f7daefe86dd4269eeb0388eef6d5528c2306df9790f00040000" + testCallData

	testRawTx  = "0x9004000000000000000000000000000000000000000000000000000000000000000000e5c0"
	testRawSig = "24de22d5be5b5710d819ad5bc0f3aecfe2aedcbad9b543b72de4b7e9aefd713143963ea3892f8dfd60b7a694bfb905273538f95b8245e61c12fca316e5567e06"
	testRawExt = "1d02840072da49ceecffb0fb4d2ef490f14b54b6cebbf29abf9b728f1e5f5b0c47863db40124de22d5be5b5710d819ad5bc0f3aecfe2aedcbad9b543b72de4b7e9aefd713143963ea3892f8dfd60b7a694bfb905273538f95b8245e61c12fca316e5567e0604000000000000000000000000000000000000000000000000000000000000000000e5c0"
)

func TestParseStructuredTransaction(t *testing.T) {
	require := require.New(t)

	tx, err := ParseTransaction(testStructuredTx)
	require.Nil(err)
	st, ok := tx.(*StructuredTransaction)
	require.True(ok)
	require.Equal(testCallData, hex.EncodeToString(st.CallData))
	require.Len(st.Extensions, 9)
	names := []string{"CheckNonZeroSender", "CheckSpecVersion", "CheckTxVersion", "CheckGenesis", "CheckMortality", "CheckNonce", "CheckWeight", "ChargeTransactionPayment", "CheckMetadataHash"}
	for i, ext := range st.Extensions {
		require.Equal(names[i], ext.Identifier)
	}
	require.Len(st.Extensions[0].Value, 0)
	require.Len(st.Extensions[6].AdditionalSigned, 0)
	require.Equal([]byte{0x00}, st.Extensions[8].AdditionalSigned)
	require.Equal(testStructuredBlob, hex.EncodeToString(tx.SigningPayload()))
	require.Equal("00040000"+testCallData, hex.EncodeToString(tx.Body()))

	same, err := ParseTransactionJSON([]byte(" " + testStructuredTx))
	require.Nil(err)
	require.Equal(tx, same)
}

func TestParseStructuredOrder(t *testing.T) {
	require := require.New(t)

	tx, err := ParseTransaction(`{"signedExtensions":{"Z":{"value":"0x01","additionalSigned":"0x0a"},"A":{"value":"0x02","additionalSigned":"0x0b"},"M":{"value":"0x03"}},"callData":"0xff"}`)
	require.Nil(err)
	require.Equal("ff0102030a0b", hex.EncodeToString(tx.SigningPayload()))
	require.Equal("010203ff", hex.EncodeToString(tx.Body()))
}

func TestParseTransactionInvalid(t *testing.T) {
	require := require.New(t)

	for _, c := range []struct {
		input string
		err   error
	}{
		{"", ErrUnsupportedPayloadShape},
		{"0x", ErrUnsupportedPayloadShape},
		{"0xzz", ErrInvalidEncoding},
		{"0x123", ErrInvalidEncoding},
		{"0x01", ErrInvalidEncoding},
		{`{"callData":"0x"}`, ErrUnsupportedPayloadShape},
		{`{"signedExtensions":{}}`, ErrUnsupportedPayloadShape},
		{`{"callData":12}`, ErrUnsupportedPayloadShape},
		{`{"callData":"0xgg"}`, ErrInvalidEncoding},
		{`{"callData":"0x00","signedExtensions":[]}`, ErrUnsupportedPayloadShape},
		{`{"callData":"0x00","signedExtensions":{"A":{"value":"0x0"}}}`, ErrInvalidEncoding},
		{`{"callData":"0x00","signedExtensions":{"A":"0x00"}}`, ErrUnsupportedPayloadShape},
		{`{"callData":"0x00"`, ErrUnsupportedPayloadShape},
	} {
		_, err := ParseTransaction(c.input)
		require.True(errors.Is(err, c.err), c.input)
	}

	_, err := ParseTransactionJSON([]byte(`12`))
	require.True(errors.Is(err, ErrUnsupportedPayloadShape))
	_, err = ParseTransactionJSON([]byte(``))
	require.True(errors.Is(err, ErrUnsupportedPayloadShape))
	tx, err := ParseTransactionJSON([]byte(`"` + testRawTx + `"`))
	require.Nil(err)
	require.Equal(testRawTx[2:], hex.EncodeToString(tx.SigningPayload()))
}

func TestRawTransaction(t *testing.T) {
	require := require.New(t)

	tx, err := ParseTransaction(testRawTx)
	require.Nil(err)
	raw, ok := tx.(*RawTransaction)
	require.True(ok)
	require.Equal(testRawTx[2:], hex.EncodeToString(raw.SigningPayload()))
	require.Equal(testRawTx[4:], hex.EncodeToString(raw.Body()))

	tx, err = ParseTransaction(testRawTx[2:])
	require.Nil(err)
	require.Equal(raw, tx)
}

func TestPrepareSigningPayload(t *testing.T) {
	require := require.New(t)

	exact := bytes.Repeat([]byte{0xab}, MaxUnhashedPayload)
	payload, hashed := PrepareSigningPayload(exact)
	require.False(hashed)
	require.Equal(exact, payload)

	over := bytes.Repeat([]byte{0xab}, MaxUnhashedPayload+1)
	payload, hashed = PrepareSigningPayload(over)
	require.True(hashed)
	require.Len(payload, 32)
	sum := blake2b.Sum256(over)
	require.Equal(sum[:], payload)
}

func TestSignTransaction(t *testing.T) {
	require := require.New(t)

	node := testDeriveNode(require, testMnemonic24, 0, NetworkPolkadot, true)
	_, public := node.KeyPair()
	tx, err := ParseTransaction(testRawTx)
	require.Nil(err)
	signed := SignTransaction(node, public, tx)
	require.False(signed.Hashed)
	require.Equal(testRawSig, hex.EncodeToString(signed.Signature[:]))
	require.Equal(testRawExt, hex.EncodeToString(signed.Extrinsic))
	require.True(VerifySignature(node.SigningPublicKey(), tx.SigningPayload(), signed.Signature))

	node = testDeriveNode(require, testMnemonic24, 0, NetworkKusama, false)
	_, public = node.KeyPair()
	tx, err = ParseTransaction(testStructuredTx)
	require.Nil(err)
	signed = SignTransaction(node, public, tx)
	require.False(signed.Hashed)
	require.Equal(testStructuredSig, hex.EncodeToString(signed.Signature[:]))
	require.Equal(testStructuredExt, hex.EncodeToString(signed.Extrinsic))

	v, n, err := DecodeCompact(signed.Extrinsic)
	require.Nil(err)
	require.Equal(len(signed.Extrinsic)-n, int(v))
	require.Equal(byte(ExtrinsicVersionSigned), signed.Extrinsic[n])
	require.Equal(byte(AddressTypeId), signed.Extrinsic[n+1])
	require.Equal(public[:], signed.Extrinsic[n+2:n+34])
	require.Equal(byte(SignatureTypeEd25519), signed.Extrinsic[n+34])
	require.Equal(signed.Signature[:], signed.Extrinsic[n+35:n+99])
	require.Equal(tx.Body(), signed.Extrinsic[n+99:])
}

func TestSignOversizedTransaction(t *testing.T) {
	require := require.New(t)

	node := testDeriveNode(require, testMnemonic24, 0, NetworkKusama, false)
	_, public := node.KeyPair()

	big := make([]byte, 300)
	for i := range 256 {
		big[i] = byte(i)
	}
	tx, err := ParseTransaction(`{"callData":"0x` + hex.EncodeToString(big) + `"}`)
	require.Nil(err)
	signed := SignTransaction(node, public, tx)
	require.True(signed.Hashed)
	require.Equal("adf78a76439412a1dedf8ca18cf00d4c6506b6e89b674e73ef7237336fcadc36", hex.EncodeToString(signed.Payload))
	require.Equal("f03bd160534564bf90d1e94c68ba79061e23a162178a7a0d26b6e3653b9516f543f6acc3b324498338b385ef9c234664ddeffc38e0475248b1c6160f6acb630c", hex.EncodeToString(signed.Signature[:]))
	require.False(VerifySignature(node.SigningPublicKey(), big, signed.Signature))
	require.True(VerifySignature(node.SigningPublicKey(), signed.Payload, signed.Signature))

	edge := bytes.Repeat([]byte{0x07}, MaxUnhashedPayload)
	tx, err = NewRawTransaction(edge)
	require.Nil(err)
	signed = SignTransaction(node, public, tx)
	require.False(signed.Hashed)
	require.Equal(edge, signed.Payload)
	require.Equal(node.Sign(edge), signed.Signature)

	edge = append(edge, 0x07)
	tx, err = NewRawTransaction(edge)
	require.Nil(err)
	signed = SignTransaction(node, public, tx)
	require.True(signed.Hashed)
	sum := blake2b.Sum256(edge)
	require.Equal(node.Sign(sum[:]), signed.Signature)
}
