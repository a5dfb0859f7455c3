package signer

import (
	"errors"
	"fmt"

	"github.com/tos-network/edsigner/crypto/ed25519"
)

// Ed25519 is the RFC 8032 Ed25519 scheme backed by the curve engine compiled
// into crypto/ed25519.
var Ed25519 Scheme = ed25519Scheme{}

type ed25519Scheme struct{}

func (ed25519Scheme) Name() string { return SchemeEd25519 }

func (ed25519Scheme) Generate(seed []byte) (SigningKey, error) {
	if err := checkSeed(seed); err != nil {
		return SigningKey{}, err
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return SigningKey{
		scheme: SchemeEd25519,
		secret: priv,
		public: VerifyingKey{scheme: SchemeEd25519, key: string(priv[ed25519.SeedSize:])},
	}, nil
}

func (ed25519Scheme) Sign(key SigningKey, message []byte) (Signature, error) {
	if err := checkSigningKey(SchemeEd25519, key, ed25519.PrivateKeySize); err != nil {
		return Signature{}, err
	}
	var sig Signature
	copy(sig[:], ed25519.Sign(ed25519.PrivateKey(key.secret), message))
	return sig, nil
}

func (ed25519Scheme) Verify(pub VerifyingKey, message []byte, sig []byte) error {
	if err := checkVerifyingKey(SchemeEd25519, pub); err != nil {
		return err
	}
	err := ed25519.VerifyStrict(ed25519.PublicKey(pub.key), message, sig)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ed25519.ErrMalformedSignature):
		return fmt.Errorf("%w: %v", ErrMalformedSignature, err)
	case errors.Is(err, ed25519.ErrInvalidPublicKey):
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	default:
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}
}

// ParseVerifyingKey accepts 32-byte keys that decode to a curve point.
func (ed25519Scheme) ParseVerifyingKey(raw []byte) (VerifyingKey, error) {
	if len(raw) != ed25519.PublicKeySize {
		return VerifyingKey{}, fmt.Errorf("%w: ed25519 public key has %d bytes, want %d", ErrInvalidKey, len(raw), ed25519.PublicKeySize)
	}
	if err := ed25519.CheckPublicKey(raw); err != nil {
		return VerifyingKey{}, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return VerifyingKey{scheme: SchemeEd25519, key: string(raw)}, nil
}
