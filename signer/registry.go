package signer

import (
	"fmt"
	"strings"
)

const (
	SchemeEd25519   = "ed25519"
	SchemeSecp256k1 = "secp256k1"
)

func normalizeScheme(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case SchemeEd25519, "eddsa":
		return SchemeEd25519, nil
	case SchemeSecp256k1, "ethereum_secp256k1":
		return SchemeSecp256k1, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScheme, name)
	}
}

// CanonicalScheme normalizes a scheme alias to its canonical lowercase name.
func CanonicalScheme(name string) (string, error) {
	return normalizeScheme(name)
}

// Lookup returns the scheme registered under name or one of its aliases.
func Lookup(name string) (Scheme, error) {
	canonical, err := normalizeScheme(name)
	if err != nil {
		return nil, err
	}
	switch canonical {
	case SchemeSecp256k1:
		return Secp256k1, nil
	default:
		return Ed25519, nil
	}
}

// Schemes returns the canonical names of all registered schemes.
func Schemes() []string {
	return []string{SchemeEd25519, SchemeSecp256k1}
}
