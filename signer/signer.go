// Package signer exposes signature schemes behind one interface so callers can
// generate keys, sign and verify without knowing which algorithm or curve
// engine is underneath.
package signer

import (
	crand "crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
)

const (
	// SeedSize is the length of the entropy every scheme derives keys from.
	SeedSize = 32
	// SignatureSize is the length of a fixed-size signature.
	SignatureSize = 64
)

// Scheme is the signing capability implemented by every adapter.
//
// Implementations hold no mutable state; all methods are safe for concurrent
// use and perform no I/O.
type Scheme interface {
	// Name returns the canonical scheme name.
	Name() string

	// Generate deterministically derives a signing key from a 32-byte seed.
	Generate(seed []byte) (SigningKey, error)

	// Sign produces a deterministic signature over message.
	Sign(key SigningKey, message []byte) (Signature, error)

	// Verify returns nil if sig is a valid signature of message by pub.
	// A signature that does not validate yields ErrInvalidSignature; one that
	// cannot be decoded yields ErrMalformedSignature.
	Verify(pub VerifyingKey, message []byte, sig []byte) error

	// ParseVerifyingKey decodes a serialized public key.
	ParseVerifyingKey(raw []byte) (VerifyingKey, error)
}

// SigningKey is the secret half of a key pair. It is owned by one holder and
// never changes after construction; Zero wipes it once the holder is done.
type SigningKey struct {
	scheme string
	secret []byte
	public VerifyingKey
}

// Scheme returns the name of the scheme that produced the key.
func (k SigningKey) Scheme() string { return k.scheme }

// Public returns the verifying key derived from k.
func (k SigningKey) Public() VerifyingKey { return k.public }

// Seed returns a copy of the 32-byte seed k was generated from.
func (k SigningKey) Seed() []byte {
	if len(k.secret) < SeedSize {
		return nil
	}
	return append([]byte(nil), k.secret[:SeedSize]...)
}

// Zero overwrites the secret material. The key, and every copy of it, is
// unusable afterwards.
func (k *SigningKey) Zero() {
	for i := range k.secret {
		k.secret[i] = 0
	}
	k.secret = nil
}

// String never includes secret material.
func (k SigningKey) String() string {
	return fmt.Sprintf("SigningKey{%s %s}", k.scheme, k.public)
}

// VerifyingKey is a public key. It is an immutable value: copies are
// independent and keys compare with ==.
type VerifyingKey struct {
	scheme string
	key    string
}

// Scheme returns the name of the scheme the key belongs to.
func (k VerifyingKey) Scheme() string { return k.scheme }

// Bytes returns a copy of the encoded key.
func (k VerifyingKey) Bytes() []byte { return []byte(k.key) }

// IsZero reports whether k is the zero value.
func (k VerifyingKey) IsZero() bool { return k.key == "" }

func (k VerifyingKey) String() string { return hex.EncodeToString([]byte(k.key)) }

// Signature is a fixed-size 64-byte signature.
type Signature [SignatureSize]byte

// ParseSignature copies raw into a Signature.
func ParseSignature(raw []byte) (Signature, error) {
	var sig Signature
	if len(raw) != SignatureSize {
		return sig, fmt.Errorf("%w: have %d bytes, want %d", ErrMalformedSignature, len(raw), SignatureSize)
	}
	copy(sig[:], raw)
	return sig, nil
}

// Bytes returns the signature as a slice.
func (s Signature) Bytes() []byte { return append([]byte(nil), s[:]...) }

func (s Signature) String() string { return hex.EncodeToString(s[:]) }

// GenerateKey reads a seed from rand (crypto/rand when nil) and derives a key.
func GenerateKey(scheme Scheme, rand io.Reader) (SigningKey, error) {
	if rand == nil {
		rand = crand.Reader
	}
	seed := make([]byte, SeedSize)
	defer func() {
		for i := range seed {
			seed[i] = 0
		}
	}()
	if _, err := io.ReadFull(rand, seed); err != nil {
		return SigningKey{}, err
	}
	return scheme.Generate(seed)
}

// Valid is a boolean form of Scheme.Verify.
func Valid(scheme Scheme, pub VerifyingKey, message []byte, sig []byte) bool {
	return scheme.Verify(pub, message, sig) == nil
}

func checkSeed(seed []byte) error {
	if len(seed) != SeedSize {
		return fmt.Errorf("%w: have %d bytes, want %d", ErrInvalidSeedLength, len(seed), SeedSize)
	}
	return nil
}

func checkSigningKey(scheme string, k SigningKey, secretLen int) error {
	if k.scheme != scheme {
		return fmt.Errorf("%w: %s key used with %s scheme", ErrInvalidKey, k.scheme, scheme)
	}
	if len(k.secret) != secretLen || allZero(k.secret) {
		return fmt.Errorf("%w: key material missing or zeroed", ErrInvalidKey)
	}
	return nil
}

// allZero reports whether b holds only zero bytes. No valid secret of any
// scheme is all zeros, so this catches keys wiped through another copy.
func allZero(b []byte) bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}
	return acc == 0
}

func checkVerifyingKey(scheme string, k VerifyingKey) error {
	if k.scheme != scheme {
		return fmt.Errorf("%w: %s public key used with %s scheme", ErrInvalidKey, k.scheme, scheme)
	}
	return nil
}
