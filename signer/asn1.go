package signer

import (
	"fmt"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

const (
	scalarSize = 32

	// MaxASN1SignatureSize is the longest DER encoding of a 256-bit ECDSA
	// signature: two 33-byte INTEGERs plus headers.
	MaxASN1SignatureSize = 72
)

// FixedToASN1 converts a fixed 64-byte r||s signature into its ASN.1 DER form,
// a SEQUENCE of two minimally encoded INTEGERs.
func FixedToASN1(sig []byte) ([]byte, error) {
	if len(sig) != 2*scalarSize {
		return nil, fmt.Errorf("%w: have %d bytes, want %d", ErrMalformedSignature, len(sig), 2*scalarSize)
	}
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		addASN1Scalar(b, sig[:scalarSize])
		addASN1Scalar(b, sig[scalarSize:])
	})
	return b.Bytes()
}

func addASN1Scalar(b *cryptobyte.Builder, x []byte) {
	for len(x) > 0 && x[0] == 0 {
		x = x[1:]
	}
	b.AddASN1(asn1.INTEGER, func(b *cryptobyte.Builder) {
		if len(x) == 0 || x[0]&0x80 != 0 {
			b.AddUint8(0)
		}
		b.AddBytes(x)
	})
}

// ASN1ToFixed parses a DER encoded ECDSA signature into fixed 64-byte r||s
// form. Integers longer than 32 bytes are accepted only with a single sign
// padding byte, and trailing data is rejected.
func ASN1ToFixed(der []byte) ([]byte, error) {
	if len(der) > MaxASN1SignatureSize {
		return nil, fmt.Errorf("%w: signature of %d bytes exceeds %d", ErrParse, len(der), MaxASN1SignatureSize)
	}
	var (
		input = cryptobyte.String(der)
		inner cryptobyte.String
	)
	if !input.ReadASN1(&inner, asn1.SEQUENCE) {
		return nil, fmt.Errorf("%w: expected SEQUENCE", ErrParse)
	}
	if !input.Empty() {
		return nil, fmt.Errorf("%w: trailing data after signature", ErrParse)
	}
	r, err := readASN1Scalar(&inner, "r")
	if err != nil {
		return nil, err
	}
	s, err := readASN1Scalar(&inner, "s")
	if err != nil {
		return nil, err
	}
	if !inner.Empty() {
		return nil, fmt.Errorf("%w: trailing data in SEQUENCE", ErrParse)
	}
	out := make([]byte, 2*scalarSize)
	copy(out[scalarSize-len(r):scalarSize], r)
	copy(out[2*scalarSize-len(s):], s)
	return out, nil
}

func readASN1Scalar(in *cryptobyte.String, name string) ([]byte, error) {
	var x cryptobyte.String
	if !in.ReadASN1(&x, asn1.INTEGER) {
		return nil, fmt.Errorf("%w: expected INTEGER %s", ErrParse, name)
	}
	if len(x) == 0 {
		return nil, fmt.Errorf("%w: empty INTEGER %s", ErrParse, name)
	}
	if x[0]&0x80 != 0 {
		return nil, fmt.Errorf("%w: negative %s", ErrParse, name)
	}
	if len(x) > scalarSize {
		if len(x) != scalarSize+1 || x[0] != 0 {
			return nil, fmt.Errorf("%w: overlong %s", ErrParse, name)
		}
		x = x[1:]
	}
	for len(x) > 0 && x[0] == 0 {
		x = x[1:]
	}
	return x, nil
}
