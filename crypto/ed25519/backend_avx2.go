//go:build ed25519_avx2 && amd64 && !ed25519_u32

package ed25519

import (
	"fmt"

	"github.com/oasisprotocol/curve25519-voi/curve"
	voied25519 "github.com/oasisprotocol/curve25519-voi/primitives/ed25519"
	"golang.org/x/sys/cpu"
)

const backendName = "avx2"

// Verification semantics must match the other engines: cofactorless, S < L.
var voiOptions = &voied25519.Options{
	Verify: voied25519.VerifyOptionsStdLib,
}

// NativeAccelerated reports whether this build uses a vectorized backend.
// The avx2 engine falls back to serial arithmetic on CPUs without AVX2.
func NativeAccelerated() bool {
	return cpu.X86.HasAVX2
}

func publicFromSeed(seed []byte) [PublicKeySize]byte {
	priv := voied25519.NewKeyFromSeed(seed)
	var pub [PublicKeySize]byte
	copy(pub[:], priv[SeedSize:])
	return pub
}

func sign(sig []byte, privateKey PrivateKey, message []byte) {
	copy(sig, voied25519.Sign(voied25519.PrivateKey(privateKey), message))
}

func verify(publicKey PublicKey, message []byte, sig []byte) error {
	if !isCurvePoint(publicKey) {
		return fmt.Errorf("%w: not a curve point", ErrInvalidPublicKey)
	}
	if !isCurvePoint(sig[:32]) {
		return fmt.Errorf("%w: R is not a curve point", ErrMalformedSignature)
	}
	if !voied25519.VerifyWithOptions(voied25519.PublicKey(publicKey), message, sig, voiOptions) {
		return ErrInvalidSignature
	}
	return nil
}

func isCurvePoint(encoded []byte) bool {
	var compressed curve.CompressedEdwardsY
	if _, err := compressed.SetBytes(encoded); err != nil {
		return false
	}
	var p curve.EdwardsPoint
	_, err := p.SetCompressedY(&compressed)
	return err == nil
}
