package substrate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MixinNetwork/dotsigner/common"
	"golang.org/x/crypto/blake2b"
)

// Transaction is either a RawTransaction or a StructuredTransaction.
type Transaction interface {
	SigningPayload() []byte
	Body() []byte
}

type RawTransaction struct {
	Data []byte
	body []byte
}

type SignedExtension struct {
	Identifier       string
	Value            []byte
	AdditionalSigned []byte
}

type StructuredTransaction struct {
	CallData   []byte
	Extensions []*SignedExtension
}

type SignedTransaction struct {
	Payload   []byte
	Hashed    bool
	Signature [SignatureSize]byte
	Extrinsic []byte
}

func NewRawTransaction(data []byte) (*RawTransaction, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("substrate.NewRawTransaction() => empty %w", ErrUnsupportedPayloadShape)
	}
	body, err := StripCompactPrefix(data)
	if err != nil {
		return nil, err
	}
	return &RawTransaction{Data: data, body: body}, nil
}

func (tx *RawTransaction) SigningPayload() []byte {
	return tx.Data
}

func (tx *RawTransaction) Body() []byte {
	return tx.body
}

// SigningPayload is the call data, then every extension value, then every
// extension additional signed data, both passes in extension order.
func (tx *StructuredTransaction) SigningPayload() []byte {
	var buf bytes.Buffer
	buf.Write(tx.CallData)
	for _, ext := range tx.Extensions {
		buf.Write(ext.Value)
	}
	for _, ext := range tx.Extensions {
		buf.Write(ext.AdditionalSigned)
	}
	return buf.Bytes()
}

func (tx *StructuredTransaction) Body() []byte {
	var buf bytes.Buffer
	for _, ext := range tx.Extensions {
		buf.Write(ext.Value)
	}
	buf.Write(tx.CallData)
	return buf.Bytes()
}

func ParseTransaction(input string) (Transaction, error) {
	input = strings.TrimSpace(input)
	if strings.HasPrefix(input, "{") {
		return parseStructuredTransaction([]byte(input))
	}
	return parseRawTransaction(input)
}

// ParseTransactionJSON accepts either a JSON string of hex or the
// structured payload object.
func ParseTransactionJSON(raw []byte) (Transaction, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("substrate.ParseTransactionJSON() => empty %w", ErrUnsupportedPayloadShape)
	}
	switch raw[0] {
	case '"':
		var s string
		err := json.Unmarshal(raw, &s)
		if err != nil {
			return nil, fmt.Errorf("substrate.ParseTransactionJSON() => %v: %w", err, ErrUnsupportedPayloadShape)
		}
		return parseRawTransaction(s)
	case '{':
		return parseStructuredTransaction(raw)
	}
	return nil, fmt.Errorf("substrate.ParseTransactionJSON(%c) => %w", raw[0], ErrUnsupportedPayloadShape)
}

func parseRawTransaction(s string) (*RawTransaction, error) {
	data, err := common.DecodeHex(s)
	if err != nil {
		return nil, fmt.Errorf("common.DecodeHex() => %v: %w", err, ErrInvalidEncoding)
	}
	return NewRawTransaction(data)
}

func parseStructuredTransaction(raw []byte) (*StructuredTransaction, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	err := expectDelim(dec, '{')
	if err != nil {
		return nil, err
	}

	tx := &StructuredTransaction{}
	var hasCallData bool
	for dec.More() {
		key, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		switch key {
		case "callData":
			var s string
			err = dec.Decode(&s)
			if err != nil {
				return nil, fmt.Errorf("callData => %v: %w", err, ErrUnsupportedPayloadShape)
			}
			tx.CallData, err = decodeHexField("callData", s)
			if err != nil {
				return nil, err
			}
			hasCallData = len(tx.CallData) > 0
		case "signedExtensions":
			tx.Extensions, err = parseSignedExtensions(dec)
			if err != nil {
				return nil, err
			}
		default:
			var skip json.RawMessage
			err = dec.Decode(&skip)
			if err != nil {
				return nil, fmt.Errorf("%s => %v: %w", key, err, ErrUnsupportedPayloadShape)
			}
		}
	}
	err = expectDelim(dec, '}')
	if err != nil {
		return nil, err
	}
	if !hasCallData {
		return nil, fmt.Errorf("substrate.ParseTransaction() => missing callData %w", ErrUnsupportedPayloadShape)
	}
	return tx, nil
}

func parseSignedExtensions(dec *json.Decoder) ([]*SignedExtension, error) {
	err := expectDelim(dec, '{')
	if err != nil {
		return nil, err
	}
	var extensions []*SignedExtension
	for dec.More() {
		name, err := readKey(dec)
		if err != nil {
			return nil, err
		}
		var body struct {
			Identifier       string `json:"identifier"`
			Value            string `json:"value"`
			AdditionalSigned string `json:"additionalSigned"`
		}
		err = dec.Decode(&body)
		if err != nil {
			return nil, fmt.Errorf("signedExtensions.%s => %v: %w", name, err, ErrUnsupportedPayloadShape)
		}
		ext := &SignedExtension{Identifier: name}
		if body.Identifier != "" {
			ext.Identifier = body.Identifier
		}
		ext.Value, err = decodeHexField(name+".value", body.Value)
		if err != nil {
			return nil, err
		}
		ext.AdditionalSigned, err = decodeHexField(name+".additionalSigned", body.AdditionalSigned)
		if err != nil {
			return nil, err
		}
		extensions = append(extensions, ext)
	}
	return extensions, expectDelim(dec, '}')
}

func decodeHexField(name, s string) ([]byte, error) {
	if s == "" || s == "0x" {
		return nil, nil
	}
	b, err := common.DecodeHex(s)
	if err != nil {
		return nil, fmt.Errorf("%s => %v: %w", name, err, ErrInvalidEncoding)
	}
	return b, nil
}

func readKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", fmt.Errorf("json.Token() => %v: %w", err, ErrUnsupportedPayloadShape)
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("json.Token() => %v: %w", tok, ErrUnsupportedPayloadShape)
	}
	return key, nil
}

func expectDelim(dec *json.Decoder, d json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("json.Token() => %v: %w", err, ErrUnsupportedPayloadShape)
	}
	if tok != d {
		return fmt.Errorf("json.Token() => %v not %v %w", tok, d, ErrUnsupportedPayloadShape)
	}
	return nil
}

// PrepareSigningPayload replaces payloads longer than 256 bytes with their
// blake2b-256 hash.
func PrepareSigningPayload(payload []byte) ([]byte, bool) {
	if len(payload) > MaxUnhashedPayload {
		sum := blake2b.Sum256(payload)
		return sum[:], true
	}
	return payload, false
}

func SignTransaction(key ExtendedKey, public [PublicKeySize]byte, tx Transaction) *SignedTransaction {
	payload, hashed := PrepareSigningPayload(tx.SigningPayload())
	sig := key.Sign(payload)
	return &SignedTransaction{
		Payload:   payload,
		Hashed:    hashed,
		Signature: sig,
		Extrinsic: BuildSignedExtrinsic(public, sig, tx.Body()),
	}
}

func BuildSignedExtrinsic(public [PublicKeySize]byte, sig [SignatureSize]byte, body []byte) []byte {
	signed := make([]byte, 0, 3+PublicKeySize+SignatureSize+len(body))
	signed = append(signed, ExtrinsicVersionSigned, AddressTypeId)
	signed = append(signed, public[:]...)
	signed = append(signed, SignatureTypeEd25519)
	signed = append(signed, sig[:]...)
	signed = append(signed, body...)
	return append(EncodeCompact(uint64(len(signed))), signed...)
}
