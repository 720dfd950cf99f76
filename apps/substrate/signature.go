package substrate

import (
	"crypto/ed25519"
	"crypto/sha512"

	"filippo.io/edwards25519"
)

// Sign produces a BIP32-Ed25519 signature with the extended key, the nonce
// comes from kR and the scalar is kL without any hashing or clamping.
func (k ExtendedKey) Sign(msg []byte) [SignatureSize]byte {
	a := leftScalar(k)
	A := edwards25519.NewIdentityPoint().ScalarBaseMult(a).Bytes()

	h := sha512.New()
	h.Write(k[32:64])
	h.Write(msg)
	r, err := edwards25519.NewScalar().SetUniformBytes(h.Sum(nil))
	if err != nil {
		panic(err)
	}
	R := edwards25519.NewIdentityPoint().ScalarBaseMult(r).Bytes()

	h.Reset()
	h.Write(R)
	h.Write(A)
	h.Write(msg)
	c, err := edwards25519.NewScalar().SetUniformBytes(h.Sum(nil))
	if err != nil {
		panic(err)
	}
	S := edwards25519.NewScalar().MultiplyAdd(c, a, r)

	var sig [SignatureSize]byte
	copy(sig[:32], R)
	copy(sig[32:], S.Bytes())
	return sig
}

func VerifySignature(public [PublicKeySize]byte, msg []byte, sig [SignatureSize]byte) bool {
	return ed25519.Verify(public[:], msg, sig[:])
}
