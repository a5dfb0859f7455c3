//go:build !ed25519_u32 && !ed25519_avx2

package ed25519

import (
	"crypto/subtle"
	"fmt"

	"filippo.io/edwards25519"
)

const backendName = "u64"

// NativeAccelerated reports whether this build uses a vectorized backend.
func NativeAccelerated() bool {
	return false
}

func publicFromSeed(seed []byte) [PublicKeySize]byte {
	s, _ := expandSeed(seed)
	scalar, err := edwards25519.NewScalar().SetBytesWithClamping(s[:])
	if err != nil {
		panic("ed25519: internal error: setting scalar failed")
	}
	var pub [PublicKeySize]byte
	copy(pub[:], new(edwards25519.Point).ScalarBaseMult(scalar).Bytes())
	return pub
}

func sign(sig []byte, privateKey PrivateKey, message []byte) {
	s, prefix := expandSeed(privateKey[:SeedSize])
	scalar, err := edwards25519.NewScalar().SetBytesWithClamping(s[:])
	if err != nil {
		panic("ed25519: internal error: setting scalar failed")
	}

	rh := nonceHash(prefix[:], message)
	r, err := edwards25519.NewScalar().SetUniformBytes(rh[:])
	if err != nil {
		panic("ed25519: internal error: setting scalar failed")
	}
	R := new(edwards25519.Point).ScalarBaseMult(r)
	encodedR := R.Bytes()

	kh := challengeHash(encodedR, privateKey[SeedSize:], message)
	k, err := edwards25519.NewScalar().SetUniformBytes(kh[:])
	if err != nil {
		panic("ed25519: internal error: setting scalar failed")
	}
	S := edwards25519.NewScalar().MultiplyAdd(k, scalar, r)

	copy(sig[:32], encodedR)
	copy(sig[32:], S.Bytes())
}

func verify(publicKey PublicKey, message []byte, sig []byte) error {
	A, err := new(edwards25519.Point).SetBytes(publicKey)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	if _, err := new(edwards25519.Point).SetBytes(sig[:32]); err != nil {
		return fmt.Errorf("%w: R is not a curve point", ErrMalformedSignature)
	}
	S, err := edwards25519.NewScalar().SetCanonicalBytes(sig[32:])
	if err != nil {
		return fmt.Errorf("%w: non-canonical S", ErrMalformedSignature)
	}

	kh := challengeHash(sig[:32], publicKey, message)
	k, err := edwards25519.NewScalar().SetUniformBytes(kh[:])
	if err != nil {
		panic("ed25519: internal error: setting scalar failed")
	}

	// [S]B - [k]A must encode to R.
	minusA := new(edwards25519.Point).Negate(A)
	check := new(edwards25519.Point).VarTimeDoubleScalarBaseMult(k, minusA, S)
	if subtle.ConstantTimeCompare(sig[:32], check.Bytes()) != 1 {
		return ErrInvalidSignature
	}
	return nil
}

func isCurvePoint(encoded []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(encoded)
	return err == nil
}
