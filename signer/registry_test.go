package signer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := map[string]string{
		"ed25519":            SchemeEd25519,
		" EdDSA ":            SchemeEd25519,
		"ED25519":            SchemeEd25519,
		"secp256k1":          SchemeSecp256k1,
		"ethereum_secp256k1": SchemeSecp256k1,
	}
	for in, want := range tests {
		scheme, err := Lookup(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, scheme.Name(), in)

		canonical, err := CanonicalScheme(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, canonical, in)
	}

	_, err := Lookup("rsa")
	assert.ErrorIs(t, err, ErrUnknownScheme)
	_, err = Lookup("")
	assert.ErrorIs(t, err, ErrUnknownScheme)
}

func TestSchemesAreInterchangeable(t *testing.T) {
	for _, name := range Schemes() {
		scheme, err := Lookup(name)
		require.NoError(t, err)

		key, err := scheme.Generate(fill(0x31))
		require.NoError(t, err, name)
		sig, err := scheme.Sign(key, []byte("shared interface"))
		require.NoError(t, err, name)
		assert.NoError(t, scheme.Verify(key.Public(), []byte("shared interface"), sig[:]), name)

		pub, err := scheme.ParseVerifyingKey(key.Public().Bytes())
		require.NoError(t, err, name)
		assert.Equal(t, key.Public(), pub, name)
	}
}

func TestCheckBackend(t *testing.T) {
	assert.Contains(t, Backends, Backend())
	assert.NoError(t, CheckBackend(""))
	assert.NoError(t, CheckBackend(Backend()))
	assert.NoError(t, CheckBackend(" "+Backend()+" "))

	for _, name := range Backends {
		if name == Backend() {
			continue
		}
		assert.ErrorIs(t, CheckBackend(name), ErrUnsupportedBackend, name)
	}
	assert.ErrorIs(t, CheckBackend("neon"), ErrUnsupportedBackend)
}
