//go:build ed25519_u32 && !ed25519_avx2

package ed25519

import (
	"crypto/subtle"
	"fmt"

	"github.com/agl/ed25519/edwards25519"
)

const backendName = "u32"

// NativeAccelerated reports whether this build uses a vectorized backend.
func NativeAccelerated() bool {
	return false
}

func publicFromSeed(seed []byte) [PublicKeySize]byte {
	s, _ := expandSeed(seed)
	var (
		A   edwards25519.ExtendedGroupElement
		pub [PublicKeySize]byte
	)
	edwards25519.GeScalarMultBase(&A, &s)
	A.ToBytes(&pub)
	return pub
}

func sign(sig []byte, privateKey PrivateKey, message []byte) {
	s, prefix := expandSeed(privateKey[:SeedSize])

	rh := nonceHash(prefix[:], message)
	var (
		r        [32]byte
		R        edwards25519.ExtendedGroupElement
		encodedR [32]byte
	)
	edwards25519.ScReduce(&r, &rh)
	edwards25519.GeScalarMultBase(&R, &r)
	R.ToBytes(&encodedR)

	kh := challengeHash(encodedR[:], privateKey[SeedSize:], message)
	var k, S [32]byte
	edwards25519.ScReduce(&k, &kh)
	edwards25519.ScMulAdd(&S, &k, &s, &r)

	copy(sig[:32], encodedR[:])
	copy(sig[32:], S[:])
}

func verify(publicKey PublicKey, message []byte, sig []byte) error {
	var (
		A        edwards25519.ExtendedGroupElement
		R        edwards25519.ExtendedGroupElement
		encodedA [32]byte
		encodedR [32]byte
	)
	copy(encodedA[:], publicKey)
	if !A.FromBytes(&encodedA) {
		return fmt.Errorf("%w: not a curve point", ErrInvalidPublicKey)
	}
	copy(encodedR[:], sig[:32])
	if !R.FromBytes(&encodedR) {
		return fmt.Errorf("%w: R is not a curve point", ErrMalformedSignature)
	}
	edwards25519.FeNeg(&A.X, &A.X)
	edwards25519.FeNeg(&A.T, &A.T)

	kh := challengeHash(sig[:32], publicKey, message)
	var k, S [32]byte
	edwards25519.ScReduce(&k, &kh)
	copy(S[:], sig[32:])

	// [S]B - [k]A must encode to R.
	var (
		check        edwards25519.ProjectiveGroupElement
		encodedCheck [32]byte
	)
	edwards25519.GeDoubleScalarMultVartime(&check, &k, &A, &S)
	check.ToBytes(&encodedCheck)
	if subtle.ConstantTimeCompare(sig[:32], encodedCheck[:]) != 1 {
		return ErrInvalidSignature
	}
	return nil
}

func isCurvePoint(encoded []byte) bool {
	var (
		p   edwards25519.ExtendedGroupElement
		buf [32]byte
	)
	if len(encoded) != len(buf) {
		return false
	}
	copy(buf[:], encoded)
	return p.FromBytes(&buf)
}
