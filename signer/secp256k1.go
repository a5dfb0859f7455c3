package signer

import (
	"crypto/sha256"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
)

// DigestSize is the length of the message digest signed by Secp256k1.
const DigestSize = sha256.Size

// Secp256k1 is deterministic (RFC 6979) ECDSA over secp256k1 with SHA-256
// message digests. Signatures are fixed 64-byte r||s values with low S;
// FixedToASN1 converts them to DER.
var Secp256k1 = secp256k1Scheme{}

type secp256k1Scheme struct{}

func (secp256k1Scheme) Name() string { return SchemeSecp256k1 }

// Generate uses seed as the private scalar. Seeds of zero or at least the
// group order are rejected with ErrInvalidKey.
func (secp256k1Scheme) Generate(seed []byte) (SigningKey, error) {
	if err := checkSeed(seed); err != nil {
		return SigningKey{}, err
	}
	var scalar btcec.ModNScalar
	if overflow := scalar.SetByteSlice(seed); overflow || scalar.IsZero() {
		return SigningKey{}, fmt.Errorf("%w: secp256k1 seed is not a valid scalar", ErrInvalidKey)
	}
	scalar.Zero()
	priv, pub := btcec.PrivKeyFromBytes(seed)
	defer priv.Zero()
	return SigningKey{
		scheme: SchemeSecp256k1,
		secret: append([]byte(nil), seed...),
		public: VerifyingKey{scheme: SchemeSecp256k1, key: string(pub.SerializeCompressed())},
	}, nil
}

func (s secp256k1Scheme) Sign(key SigningKey, message []byte) (Signature, error) {
	digest := sha256.Sum256(message)
	return s.SignDigest(key, digest[:])
}

// SignDigest signs a precomputed 32-byte digest.
func (secp256k1Scheme) SignDigest(key SigningKey, digest []byte) (Signature, error) {
	if err := checkSigningKey(SchemeSecp256k1, key, SeedSize); err != nil {
		return Signature{}, err
	}
	if len(digest) != DigestSize {
		return Signature{}, fmt.Errorf("%w: have %d bytes, want %d", ErrInvalidDigestLength, len(digest), DigestSize)
	}
	priv, _ := btcec.PrivKeyFromBytes(key.secret)
	defer priv.Zero()

	fixed, err := ASN1ToFixed(ecdsa.Sign(priv, digest).Serialize())
	if err != nil {
		return Signature{}, err
	}
	var sig Signature
	copy(sig[:], fixed)
	return sig, nil
}

func (s secp256k1Scheme) Verify(pub VerifyingKey, message []byte, sig []byte) error {
	digest := sha256.Sum256(message)
	return s.VerifyDigest(pub, digest[:], sig)
}

// VerifyDigest checks a fixed 64-byte signature over a precomputed digest.
func (secp256k1Scheme) VerifyDigest(pub VerifyingKey, digest []byte, sig []byte) error {
	if err := checkVerifyingKey(SchemeSecp256k1, pub); err != nil {
		return err
	}
	if len(digest) != DigestSize {
		return fmt.Errorf("%w: have %d bytes, want %d", ErrInvalidDigestLength, len(digest), DigestSize)
	}
	if len(sig) != SignatureSize {
		return fmt.Errorf("%w: have %d bytes, want %d", ErrMalformedSignature, len(sig), SignatureSize)
	}
	key, err := btcec.ParsePubKey([]byte(pub.key))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	var r, s btcec.ModNScalar
	if overflow := r.SetByteSlice(sig[:scalarSize]); overflow || r.IsZero() {
		return fmt.Errorf("%w: r out of range", ErrMalformedSignature)
	}
	if overflow := s.SetByteSlice(sig[scalarSize:]); overflow || s.IsZero() {
		return fmt.Errorf("%w: s out of range", ErrMalformedSignature)
	}
	if !ecdsa.NewSignature(&r, &s).Verify(digest, key) {
		return ErrInvalidSignature
	}
	return nil
}

// ParseVerifyingKey accepts compressed (33-byte) or uncompressed (65-byte)
// SEC1 keys and stores them compressed.
func (secp256k1Scheme) ParseVerifyingKey(raw []byte) (VerifyingKey, error) {
	key, err := btcec.ParsePubKey(raw)
	if err != nil {
		return VerifyingKey{}, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return VerifyingKey{scheme: SchemeSecp256k1, key: string(key.SerializeCompressed())}, nil
}
