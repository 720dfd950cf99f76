package signer

import (
	"github.com/MixinNetwork/dotsigner/apps/substrate"
	"github.com/MixinNetwork/dotsigner/common"
)

type DecodedAddress struct {
	Address   string `json:"address"`
	Prefix    byte   `json:"prefix"`
	Network   string `json:"network"`
	PublicKey string `json:"public_key"`
}

func DecodeAddress(address string) (*DecodedAddress, error) {
	prefix, public, err := substrate.DecodeAddress(address)
	if err != nil {
		return nil, err
	}
	return &DecodedAddress{
		Address:   address,
		Prefix:    prefix,
		Network:   substrate.NetworkName(prefix),
		PublicKey: common.EncodeHex(public[:]),
	}, nil
}

type ExtensionSummary struct {
	Identifier       string `json:"identifier"`
	Value            string `json:"value"`
	AdditionalSigned string `json:"additional_signed"`
}

type TransactionSummary struct {
	Kind           string              `json:"kind"`
	SigningPayload string              `json:"signing_payload"`
	Payload        string              `json:"payload"`
	Hashed         bool                `json:"hashed"`
	Body           string              `json:"body"`
	CallData       string              `json:"call_data,omitempty"`
	Extensions     []*ExtensionSummary `json:"extensions,omitempty"`
}

// DescribeTransaction shows what would be signed and broadcast for tx
// without touching any key material.
func DescribeTransaction(tx substrate.Transaction) *TransactionSummary {
	payload, hashed := substrate.PrepareSigningPayload(tx.SigningPayload())
	ts := &TransactionSummary{
		Kind:           "raw",
		SigningPayload: common.EncodeHex(tx.SigningPayload()),
		Payload:        common.EncodeHex(payload),
		Hashed:         hashed,
		Body:           common.EncodeHex(tx.Body()),
	}
	st, ok := tx.(*substrate.StructuredTransaction)
	if !ok {
		return ts
	}
	ts.Kind = "structured"
	ts.CallData = common.EncodeHex(st.CallData)
	for _, ext := range st.Extensions {
		ts.Extensions = append(ts.Extensions, &ExtensionSummary{
			Identifier:       ext.Identifier,
			Value:            common.EncodeHex(ext.Value),
			AdditionalSigned: common.EncodeHex(ext.AdditionalSigned),
		})
	}
	return ts
}
