package ed25519

import (
	stded25519 "crypto/ed25519"
	crand "crypto/rand"
	"errors"
	"fmt"
	"io"
)

const (
	PublicKeySize  = stded25519.PublicKeySize
	PrivateKeySize = stded25519.PrivateKeySize
	SignatureSize  = stded25519.SignatureSize
	SeedSize       = stded25519.SeedSize
)

type (
	PublicKey  = stded25519.PublicKey
	PrivateKey = stded25519.PrivateKey
)

var (
	// ErrMalformedSignature is returned for signatures that are not 64 bytes,
	// whose R half is not a curve point, or whose S half is not reduced.
	ErrMalformedSignature = errors.New("ed25519: malformed signature")
	// ErrInvalidSignature is returned for well-formed signatures that fail
	// the verification equation.
	ErrInvalidSignature = errors.New("ed25519: invalid signature")
	// ErrInvalidPublicKey is returned for public keys that are not 32 bytes
	// or do not decode to a curve point.
	ErrInvalidPublicKey = errors.New("ed25519: invalid public key")
)

// Backend returns the name of the curve engine compiled into this binary.
func Backend() string {
	return backendName
}

func GenerateKey(rand io.Reader) (PublicKey, PrivateKey, error) {
	if rand == nil {
		rand = crand.Reader
	}
	seed := make([]byte, SeedSize)
	if _, err := io.ReadFull(rand, seed); err != nil {
		return nil, nil, err
	}
	priv := NewKeyFromSeed(seed)
	return PublicFromPrivate(priv), priv, nil
}

func NewKeyFromSeed(seed []byte) PrivateKey {
	if l := len(seed); l != SeedSize {
		panic(fmt.Sprintf("ed25519: bad seed length: %d", l))
	}
	pub := publicFromSeed(seed)
	privateKey := make([]byte, PrivateKeySize)
	copy(privateKey[:SeedSize], seed)
	copy(privateKey[SeedSize:], pub[:])
	return PrivateKey(privateKey)
}

func Sign(privateKey PrivateKey, message []byte) []byte {
	if l := len(privateKey); l != PrivateKeySize {
		panic(fmt.Sprintf("ed25519: bad private key length: %d", l))
	}
	sig := make([]byte, SignatureSize)
	sign(sig, privateKey, message)
	return sig
}

func Verify(publicKey PublicKey, message []byte, sig []byte) bool {
	return VerifyStrict(publicKey, message, sig) == nil
}

// VerifyStrict checks sig against publicKey and message, reporting why a
// signature was rejected. The S half must be canonical (S < L).
func VerifyStrict(publicKey PublicKey, message []byte, sig []byte) error {
	if l := len(sig); l != SignatureSize {
		return fmt.Errorf("%w: bad length %d", ErrMalformedSignature, l)
	}
	if l := len(publicKey); l != PublicKeySize {
		return fmt.Errorf("%w: bad length %d", ErrInvalidPublicKey, l)
	}
	if !isCanonicalScalar(sig[32:]) {
		return fmt.Errorf("%w: non-canonical S", ErrMalformedSignature)
	}
	return verify(publicKey, message, sig)
}

// CheckPublicKey reports whether publicKey is 32 bytes that decode to a point
// on the curve.
func CheckPublicKey(publicKey PublicKey) error {
	if l := len(publicKey); l != PublicKeySize {
		return fmt.Errorf("%w: bad length %d", ErrInvalidPublicKey, l)
	}
	if !isCurvePoint(publicKey) {
		return fmt.Errorf("%w: not a curve point", ErrInvalidPublicKey)
	}
	return nil
}

func PublicFromPrivate(privateKey PrivateKey) PublicKey {
	if len(privateKey) != PrivateKeySize {
		return nil
	}
	pub := make([]byte, PublicKeySize)
	copy(pub, privateKey[SeedSize:])
	return PublicKey(pub)
}
