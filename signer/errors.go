package signer

import "errors"

var (
	// ErrInvalidSeedLength is returned by Generate when the seed is not
	// exactly 32 bytes.
	ErrInvalidSeedLength = errors.New("signer: invalid seed length")
	// ErrMalformedSignature is returned when a signature has the wrong size
	// or does not encode valid curve values.
	ErrMalformedSignature = errors.New("signer: malformed signature")
	// ErrInvalidSignature is the ordinary outcome of a signature that does
	// not verify. Callers are expected to branch on it.
	ErrInvalidSignature = errors.New("signer: invalid signature")
	// ErrInvalidKey is returned for key material that is malformed, zeroed or
	// belongs to a different scheme.
	ErrInvalidKey = errors.New("signer: invalid key")
	// ErrUnsupportedBackend is returned when a configuration asks for a curve
	// backend this binary was not built with.
	ErrUnsupportedBackend = errors.New("signer: unsupported backend")
	// ErrUnknownScheme is returned by Lookup for unregistered scheme names.
	ErrUnknownScheme = errors.New("signer: unknown signature scheme")
	// ErrInvalidDigestLength is returned by the digest variants of sign and
	// verify for digests that are not 32 bytes.
	ErrInvalidDigestLength = errors.New("signer: invalid digest length")
	// ErrParse is returned when an encoded signature cannot be parsed.
	ErrParse = errors.New("signer: parse error")
)
