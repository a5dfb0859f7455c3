//go:build (ed25519_u32 && ed25519_avx2) || (ed25519_avx2 && !amd64)

package ed25519

// Build fails here: ed25519_u32 and ed25519_avx2 are mutually exclusive, and
// ed25519_avx2 requires GOARCH=amd64.
var _ = ed25519_unsupported_backend_selection
