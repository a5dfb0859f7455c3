package ed25519

import "crypto/sha512"

// order is the group order L = 2^252 + 27742317777372353535851937790883648493,
// little-endian.
var order = [32]byte{
	0xed, 0xd3, 0xf5, 0x5c, 0x1a, 0x63, 0x12, 0x58,
	0xd6, 0x9c, 0xf7, 0xa2, 0xde, 0xf9, 0xde, 0x14,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x10,
}

// expandSeed hashes the seed into the clamped secret scalar and the nonce
// prefix (RFC 8032 section 5.1.5).
func expandSeed(seed []byte) (scalar [32]byte, prefix [32]byte) {
	h := sha512.Sum512(seed)
	copy(scalar[:], h[:32])
	scalar[0] &= 248
	scalar[31] &= 127
	scalar[31] |= 64
	copy(prefix[:], h[32:])
	return scalar, prefix
}

// nonceHash returns SHA-512(prefix || M), reduced mod L by the engine.
func nonceHash(prefix []byte, message []byte) [64]byte {
	h := sha512.New()
	h.Write(prefix)
	h.Write(message)
	var out [64]byte
	h.Sum(out[:0])
	return out
}

// challengeHash returns SHA-512(R || A || M), reduced mod L by the engine.
func challengeHash(encodedR []byte, publicKey []byte, message []byte) [64]byte {
	h := sha512.New()
	h.Write(encodedR)
	h.Write(publicKey)
	h.Write(message)
	var out [64]byte
	h.Sum(out[:0])
	return out
}

// isCanonicalScalar reports whether the little-endian s is strictly below L.
func isCanonicalScalar(s []byte) bool {
	if len(s) != 32 {
		return false
	}
	for i := 31; i >= 0; i-- {
		switch {
		case s[i] < order[i]:
			return true
		case s[i] > order[i]:
			return false
		}
	}
	return false
}
