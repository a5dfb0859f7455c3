package signer

import (
	"fmt"
	"strings"

	"github.com/tos-network/edsigner/crypto/ed25519"
)

// Backends lists the Ed25519 curve engines a binary can be built with, in
// build-tag order: no tag, ed25519_u32, ed25519_avx2.
var Backends = []string{"u64", "u32", "avx2"}

// Backend returns the Ed25519 curve engine compiled into this binary.
func Backend() string {
	return ed25519.Backend()
}

// CheckBackend verifies that want names the compiled engine. An empty want
// accepts any engine. Backends are fixed at build time, so a mismatch can only
// be fixed by rebuilding with the matching tag.
func CheckBackend(want string) error {
	want = strings.ToLower(strings.TrimSpace(want))
	if want == "" || want == Backend() {
		return nil
	}
	for _, name := range Backends {
		if name == want {
			return fmt.Errorf("%w: binary built with %q, rebuild with %s", ErrUnsupportedBackend, Backend(), backendBuildTag(name))
		}
	}
	return fmt.Errorf("%w: unknown backend %q (known: %s)", ErrUnsupportedBackend, want, strings.Join(Backends, ", "))
}

func backendBuildTag(name string) string {
	switch name {
	case "u32":
		return "-tags ed25519_u32"
	case "avx2":
		return "-tags ed25519_avx2"
	default:
		return "no backend tags"
	}
}
