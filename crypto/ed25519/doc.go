// Package ed25519 implements RFC 8032 Ed25519 on top of a curve engine that is
// chosen when the binary is built. All engines produce byte-identical keys and
// signatures; they differ only in speed on a given platform.
//
//	(no tag)        u64   filippo.io/edwards25519, 64-bit limbs
//	ed25519_u32     u32   github.com/agl/ed25519/edwards25519, 32-bit limbs
//	ed25519_avx2    avx2  github.com/oasisprotocol/curve25519-voi, AVX2 vectors (amd64)
//
// The tags are mutually exclusive. Combining them, or requesting avx2 on a
// non-amd64 target, is rejected at compile time.
//
// The tests compare every engine against crypto/ed25519 and fixed vectors, so
// running them once per tag checks that the engines agree:
//
//	go test ./...
//	go test -tags ed25519_u32 ./...
//	go test -tags ed25519_avx2 ./...
//
// `make test-backends` runs all three.
package ed25519
