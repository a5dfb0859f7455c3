package signer

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedSig(r, s []byte) []byte {
	out := make([]byte, 2*scalarSize)
	copy(out[scalarSize-len(r):scalarSize], r)
	copy(out[2*scalarSize-len(s):], s)
	return out
}

func TestFixedToASN1(t *testing.T) {
	high := append([]byte{0x80}, make([]byte, 31)...)
	tests := []struct {
		name  string
		fixed []byte
		der   string
	}{
		{"small", fixedSig([]byte{1}, []byte{1}), "3006020101020101"},
		{"zero r", fixedSig(nil, []byte{0x7f}), "300602010002017f"},
		{"high bit r", fixedSig(high, []byte{1}), "3026022100" + hex.EncodeToString(high) + "020101"},
		{"max length", fixedSig(high, high), "3046022100" + hex.EncodeToString(high) + "022100" + hex.EncodeToString(high)},
	}
	for _, tc := range tests {
		der, err := FixedToASN1(tc.fixed)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.der, hex.EncodeToString(der), tc.name)
		assert.LessOrEqual(t, len(der), MaxASN1SignatureSize, tc.name)

		back, err := ASN1ToFixed(der)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.fixed, back, tc.name)
	}

	_, err := FixedToASN1(make([]byte, 63))
	assert.ErrorIs(t, err, ErrMalformedSignature)
}

func TestASN1ToFixedRejects(t *testing.T) {
	overlong := "3027022201" + hex.EncodeToString(bytes.Repeat([]byte{0x11}, 33)) + "020101"
	tests := []struct {
		name string
		der  string
	}{
		{"empty", ""},
		{"not a sequence", "3106020101020101"},
		{"trailing data", "300602010102010100"},
		{"trailing data in sequence", "3009020101020101020101"},
		{"negative r", "3006020181020101"},
		{"empty integer", "30050200020101"},
		{"missing s", "3003020101"},
		{"overlong r", overlong},
		{"length mismatch", "3007020101020101"},
		{"non-minimal length", "308106020101020101"},
	}
	for _, tc := range tests {
		der, err := hex.DecodeString(tc.der)
		require.NoError(t, err, tc.name)
		_, err = ASN1ToFixed(der)
		assert.ErrorIs(t, err, ErrParse, tc.name)
	}

	_, err := ASN1ToFixed(make([]byte, MaxASN1SignatureSize+1))
	assert.ErrorIs(t, err, ErrParse)
}

func TestASN1ToFixedStripsPadding(t *testing.T) {
	// A redundant zero byte on a value without the high bit is tolerated.
	der, _ := hex.DecodeString("300702020001020101")
	fixed, err := ASN1ToFixed(der)
	require.NoError(t, err)
	assert.Equal(t, fixedSig([]byte{1}, []byte{1}), fixed)
}
