package signer

import (
	"bytes"
	"testing"

	"github.com/davecgh/go-spew/spew"
	fuzz "github.com/google/gofuzz"
)

func FuzzASN1ToFixed(f *testing.F) {
	f.Add([]byte{0x30, 0x06, 0x02, 0x01, 0x01, 0x02, 0x01, 0x01})
	f.Add([]byte{0x30, 0x00})

	f.Fuzz(func(t *testing.T, der []byte) {
		fixed, err := ASN1ToFixed(der)
		if err != nil {
			return
		}
		reencoded, err := FixedToASN1(fixed)
		if err != nil {
			t.Fatalf("re-encode failed: %v", err)
		}
		again, err := ASN1ToFixed(reencoded)
		if err != nil || !bytes.Equal(again, fixed) {
			t.Fatalf("round trip mismatch: %v\n%s", err, spew.Sdump(der, fixed, reencoded, again))
		}
	})
}

func FuzzFixedToASN1(f *testing.F) {
	f.Add([]byte{0x00})
	f.Add(bytes.Repeat([]byte{0x80}, 64))

	f.Fuzz(func(t *testing.T, input []byte) {
		var fixed [2 * scalarSize]byte
		fuzz.NewFromGoFuzz(input).Fuzz(&fixed)

		der, err := FixedToASN1(fixed[:])
		if err != nil {
			t.Fatalf("encode failed: %v", err)
		}
		if len(der) > MaxASN1SignatureSize {
			t.Fatalf("encoding too long: %d bytes", len(der))
		}
		back, err := ASN1ToFixed(der)
		if err != nil || !bytes.Equal(back, fixed[:]) {
			t.Fatalf("round trip mismatch: %v\n%s", err, spew.Sdump(fixed, der, back))
		}
	})
}
