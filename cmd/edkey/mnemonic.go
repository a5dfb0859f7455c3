package main

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/tos-network/edsigner/signer"
	"github.com/tyler-smith/go-bip39"
)

const (
	defaultMnemonicBits = 128
	hdHardenedOffset    = uint32(0x80000000)
)

// Default derivation paths per scheme. SLIP-0010 only defines hardened
// derivation for ed25519, so every level of its path is hardened.
var defaultHDPaths = map[string]string{
	signer.SchemeEd25519:   "m/44'/501'/0'/0'",
	signer.SchemeSecp256k1: "m/44'/60'/0'/0/0",
}

func generateMnemonic(bits int) (string, error) {
	if err := validateMnemonicBits(bits); err != nil {
		return "", err
	}
	entropy, err := bip39.NewEntropy(bits)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

func validateMnemonicBits(bits int) error {
	switch bits {
	case 128, 160, 192, 224, 256:
		return nil
	default:
		return fmt.Errorf("invalid mnemonic bits %d (allowed: 128,160,192,224,256)", bits)
	}
}

// deriveSeedFromMnemonic turns a BIP-39 mnemonic into the 32-byte seed of
// the key at path for the given scheme.
func deriveSeedFromMnemonic(scheme, mnemonic, passphrase, path string) ([]byte, error) {
	seed, err := bip39.NewSeedWithErrorChecking(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}
	indices, err := parseDerivationPath(path)
	if err != nil {
		return nil, fmt.Errorf("invalid hd path %q: %w", path, err)
	}
	switch scheme {
	case signer.SchemeEd25519:
		return deriveSLIP10Ed25519(seed, indices)
	case signer.SchemeSecp256k1:
		return deriveBIP32Secp256k1(seed, indices)
	default:
		return nil, fmt.Errorf("%w: %s", signer.ErrUnknownScheme, scheme)
	}
}

// parseDerivationPath parses paths of the form m/44'/60'/0'/0/0. Both ' and
// H mark hardened components.
func parseDerivationPath(path string) ([]uint32, error) {
	components := strings.Split(strings.TrimSpace(path), "/")
	if len(components) == 0 || components[0] != "m" {
		return nil, errors.New("path must start with m")
	}
	var result []uint32
	for _, component := range components[1:] {
		component = strings.TrimSpace(component)
		hardened := strings.HasSuffix(component, "'") || strings.HasSuffix(component, "H")
		if hardened {
			component = component[:len(component)-1]
		}
		value, err := strconv.ParseUint(component, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid component %q", component)
		}
		if uint32(value) >= hdHardenedOffset {
			return nil, fmt.Errorf("component %v out of allowed range", value)
		}
		index := uint32(value)
		if hardened {
			index += hdHardenedOffset
		}
		result = append(result, index)
	}
	return result, nil
}

// deriveSLIP10Ed25519 implements SLIP-0010 private key derivation on the
// ed25519 curve. The child key is the seed of the derived signing key.
func deriveSLIP10Ed25519(seed []byte, path []uint32) ([]byte, error) {
	key, chainCode := hmacSplit([]byte("ed25519 seed"), seed)
	for _, index := range path {
		if index < hdHardenedOffset {
			return nil, fmt.Errorf("ed25519 derivation requires hardened components, got %d", index)
		}
		data := make([]byte, 0, 37)
		data = append(data, 0)
		data = append(data, key...)
		data = binary.BigEndian.AppendUint32(data, index)
		key, chainCode = hmacSplit(chainCode, data)
	}
	return key, nil
}

// deriveBIP32Secp256k1 implements BIP-32 private key derivation.
func deriveBIP32Secp256k1(seed []byte, path []uint32) ([]byte, error) {
	key, chainCode := hmacSplit([]byte("Bitcoin seed"), seed)
	if err := checkSecp256k1Scalar(key); err != nil {
		return nil, err
	}
	for _, index := range path {
		data := make([]byte, 0, 37)
		if index >= hdHardenedOffset {
			data = append(data, 0)
			data = append(data, key...)
		} else {
			_, pub := btcec.PrivKeyFromBytes(key)
			data = append(data, pub.SerializeCompressed()...)
		}
		data = binary.BigEndian.AppendUint32(data, index)

		il, ir := hmacSplit(chainCode, data)
		var tweak, parent btcec.ModNScalar
		if overflow := tweak.SetByteSlice(il); overflow {
			return nil, errors.New("invalid derived key, try next index")
		}
		parent.SetByteSlice(key)
		parent.Add(&tweak)
		if parent.IsZero() {
			return nil, errors.New("invalid derived key, try next index")
		}
		child := parent.Bytes()
		key, chainCode = child[:], ir
	}
	return key, nil
}

func checkSecp256k1Scalar(key []byte) error {
	var s btcec.ModNScalar
	if overflow := s.SetByteSlice(key); overflow || s.IsZero() {
		return errors.New("invalid master key")
	}
	return nil
}

func hmacSplit(key, data []byte) ([]byte, []byte) {
	mac := hmac.New(sha512.New, key)
	mac.Write(data)
	sum := mac.Sum(nil)
	return sum[:32], sum[32:]
}
