package signer

import (
	"bytes"
	stded25519 "crypto/ed25519"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(b byte) []byte { return bytes.Repeat([]byte{b}, SeedSize) }

func TestEd25519GenerateDeterministic(t *testing.T) {
	a, err := Ed25519.Generate(fill(0x21))
	require.NoError(t, err)
	b, err := Ed25519.Generate(fill(0x21))
	require.NoError(t, err)

	assert.Equal(t, a.Public(), b.Public())
	assert.True(t, a.Public() == b.Public())
	assert.Equal(t, fill(0x21), a.Seed())
	assert.Equal(t, SchemeEd25519, a.Scheme())
	assert.Equal(t, SchemeEd25519, a.Public().Scheme())
}

func TestEd25519ZeroSeed(t *testing.T) {
	key, err := Ed25519.Generate(make([]byte, SeedSize))
	require.NoError(t, err)
	assert.Equal(t, "3b6a27bcceb6a42d62a3a8d02a6f0d73653215771de243a63ac048a18b59da29", key.Public().String())

	sig, err := Ed25519.Sign(key, []byte("test"))
	require.NoError(t, err)
	assert.Equal(t, "9653710561c3169b7a9577a01955169def183fb3ae282e05bec624826e255b0c3eede3ecfe054fb5a40efeaef040afaa45220ccd7bf8413ba531f24f3f869209", sig.String())
	want := stded25519.Sign(stded25519.NewKeyFromSeed(make([]byte, SeedSize)), []byte("test"))
	assert.Equal(t, hex.EncodeToString(want), sig.String())
}

func TestEd25519RoundTrip(t *testing.T) {
	key, err := Ed25519.Generate(fill(0x01))
	require.NoError(t, err)

	for _, msg := range [][]byte{nil, {}, []byte("hello"), bytes.Repeat([]byte{0xab}, 4096)} {
		sig, err := Ed25519.Sign(key, msg)
		require.NoError(t, err)
		assert.NoError(t, Ed25519.Verify(key.Public(), msg, sig[:]))
		assert.True(t, Valid(Ed25519, key.Public(), msg, sig.Bytes()))

		again, err := Ed25519.Sign(key, msg)
		require.NoError(t, err)
		assert.Equal(t, sig, again, "signing must be deterministic")
	}
}

func TestEd25519DistinctMessages(t *testing.T) {
	key, err := Ed25519.Generate(fill(0x02))
	require.NoError(t, err)
	a, _ := Ed25519.Sign(key, []byte("a"))
	b, _ := Ed25519.Sign(key, []byte("b"))
	assert.NotEqual(t, a, b)

	err = Ed25519.Verify(key.Public(), []byte("b"), a[:])
	assert.True(t, errors.Is(err, ErrInvalidSignature), "have %v", err)
}

func TestEd25519BitFlips(t *testing.T) {
	key, err := Ed25519.Generate(fill(0x03))
	require.NoError(t, err)
	msg := []byte("every bit counts")
	sig, err := Ed25519.Sign(key, msg)
	require.NoError(t, err)

	for bit := 0; bit < SignatureSize*8; bit++ {
		mutated := sig
		mutated[bit/8] ^= 1 << (bit % 8)
		err := Ed25519.Verify(key.Public(), msg, mutated[:])
		if err == nil {
			t.Fatalf("bit %d: mutated signature verified", bit)
		}
		if !errors.Is(err, ErrInvalidSignature) && !errors.Is(err, ErrMalformedSignature) {
			t.Fatalf("bit %d: unexpected error %v", bit, err)
		}
	}
}

func TestEd25519MalformedSignature(t *testing.T) {
	key, err := Ed25519.Generate(fill(0x04))
	require.NoError(t, err)
	sig, err := Ed25519.Sign(key, []byte("m"))
	require.NoError(t, err)

	err = Ed25519.Verify(key.Public(), []byte("m"), sig[:63])
	assert.ErrorIs(t, err, ErrMalformedSignature)
	err = Ed25519.Verify(key.Public(), []byte("m"), nil)
	assert.ErrorIs(t, err, ErrMalformedSignature)

	_, err = ParseSignature(sig[:63])
	assert.ErrorIs(t, err, ErrMalformedSignature)
	parsed, err := ParseSignature(sig[:])
	require.NoError(t, err)
	assert.Equal(t, sig, parsed)
}

func TestEd25519SeedLength(t *testing.T) {
	for _, n := range []int{0, 31, 33, 64} {
		_, err := Ed25519.Generate(make([]byte, n))
		assert.ErrorIs(t, err, ErrInvalidSeedLength, "seed length %d", n)
	}
}

func TestEd25519ParseVerifyingKey(t *testing.T) {
	key, err := Ed25519.Generate(fill(0x05))
	require.NoError(t, err)

	pub, err := Ed25519.ParseVerifyingKey(key.Public().Bytes())
	require.NoError(t, err)
	assert.Equal(t, key.Public(), pub)

	_, err = Ed25519.ParseVerifyingKey(make([]byte, 31))
	assert.ErrorIs(t, err, ErrInvalidKey)

	// y = 2 has no x on the curve.
	offCurve := make([]byte, 32)
	offCurve[0] = 2
	_, err = Ed25519.ParseVerifyingKey(offCurve)
	assert.ErrorIs(t, err, ErrInvalidKey)

	// Bytes hands out a copy.
	raw := pub.Bytes()
	raw[0] ^= 0xff
	assert.Equal(t, key.Public(), pub)
}

func TestSigningKeyZero(t *testing.T) {
	key, err := Ed25519.Generate(fill(0x06))
	require.NoError(t, err)
	alias := key

	key.Zero()
	_, err = Ed25519.Sign(key, []byte("m"))
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, err = Ed25519.Sign(alias, []byte("m"))
	assert.ErrorIs(t, err, ErrInvalidKey)
	assert.Nil(t, key.Seed())

	var empty SigningKey
	_, err = Ed25519.Sign(empty, []byte("m"))
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestSigningKeyStringHidesSecret(t *testing.T) {
	key, err := Ed25519.Generate(fill(0x07))
	require.NoError(t, err)
	s := key.String()
	assert.Contains(t, s, key.Public().String())
	assert.NotContains(t, s, hex.EncodeToString(key.Seed()))
}

func TestGenerateKeyFromReader(t *testing.T) {
	key, err := GenerateKey(Ed25519, bytes.NewReader(fill(0x08)))
	require.NoError(t, err)
	assert.Equal(t, fill(0x08), key.Seed())

	_, err = GenerateKey(Ed25519, bytes.NewReader(make([]byte, 10)))
	assert.Error(t, err)

	random, err := GenerateKey(Ed25519, nil)
	require.NoError(t, err)
	assert.False(t, random.Public().IsZero())
}
