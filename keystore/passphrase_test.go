package keystore

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tos-network/edsigner/signer"
	"golang.org/x/crypto/pbkdf2"
)

const (
	veryLightScryptN = 2
	veryLightScryptP = 1
)

func testSeed(b byte) []byte { return bytes.Repeat([]byte{b}, signer.SeedSize) }

func TestKeyEncryptDecrypt(t *testing.T) {
	for _, scheme := range signer.Schemes() {
		key, err := NewKey(scheme, testSeed(0x42))
		require.NoError(t, err, scheme)

		keyjson, err := EncryptKey(key, "foo", veryLightScryptN, veryLightScryptP)
		require.NoError(t, err, scheme)

		// Wrong passphrase.
		_, err = DecryptKey(keyjson, "bar")
		assert.ErrorIs(t, err, ErrDecrypt, scheme)

		decrypted, err := DecryptKey(keyjson, "foo")
		require.NoError(t, err, scheme)
		assert.Equal(t, key.Id, decrypted.Id)
		assert.Equal(t, key.Public(), decrypted.Public())
		assert.Equal(t, testSeed(0x42), decrypted.SigningKey.Seed())

		info, err := ReadKeyInfo(keyjson)
		require.NoError(t, err, scheme)
		assert.Equal(t, scheme, info.Scheme)
		assert.Equal(t, key.Public(), info.PublicKey)
		assert.Equal(t, key.Id.String(), info.Id)
	}
}

func TestDecryptKeyLightScrypt(t *testing.T) {
	key, err := NewKey(signer.SchemeEd25519, testSeed(0x01))
	require.NoError(t, err)
	keyjson, err := EncryptKey(key, "", LightScryptN, LightScryptP)
	require.NoError(t, err)
	decrypted, err := DecryptKey(keyjson, "")
	require.NoError(t, err)
	assert.Equal(t, key.Public(), decrypted.Public())
}

func TestDecryptKeyPublicKeyMismatch(t *testing.T) {
	key, err := NewKey(signer.SchemeEd25519, testSeed(0x02))
	require.NoError(t, err)
	other, err := NewKey(signer.SchemeEd25519, testSeed(0x03))
	require.NoError(t, err)

	keyjson, err := EncryptKey(key, "pw", veryLightScryptN, veryLightScryptP)
	require.NoError(t, err)
	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(keyjson, &raw))
	raw["publicKey"] = other.Public().String()
	tampered, err := json.Marshal(raw)
	require.NoError(t, err)

	_, err = DecryptKey(tampered, "pw")
	assert.ErrorIs(t, err, ErrPublicKeyMismatch)
}

func TestDecryptKeyRejects(t *testing.T) {
	key, err := NewKey(signer.SchemeEd25519, testSeed(0x04))
	require.NoError(t, err)
	keyjson, err := EncryptKey(key, "pw", veryLightScryptN, veryLightScryptP)
	require.NoError(t, err)

	mutate := func(f func(m map[string]interface{})) []byte {
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(keyjson, &m))
		f(m)
		out, err := json.Marshal(m)
		require.NoError(t, err)
		return out
	}

	_, err = DecryptKey(mutate(func(m map[string]interface{}) { m["version"] = 1 }), "pw")
	assert.ErrorContains(t, err, "version not supported")

	_, err = DecryptKey(mutate(func(m map[string]interface{}) { m["scheme"] = "rsa" }), "pw")
	assert.ErrorIs(t, err, signer.ErrUnknownScheme)

	_, err = DecryptKey(mutate(func(m map[string]interface{}) {
		m["crypto"].(map[string]interface{})["cipher"] = "aes-256-gcm"
	}), "pw")
	assert.ErrorContains(t, err, "cipher not supported")

	_, err = DecryptKey(mutate(func(m map[string]interface{}) {
		m["crypto"].(map[string]interface{})["kdf"] = "argon2"
	}), "pw")
	assert.ErrorContains(t, err, "unsupported KDF")

	_, err = DecryptKey([]byte("not json"), "pw")
	assert.Error(t, err)
}

func TestDecryptDataV3PBKDF2(t *testing.T) {
	var (
		salt  = testSeed(0x77)
		iv    = bytes.Repeat([]byte{0x01}, 16)
		plain = testSeed(0x55)
	)
	derived := pbkdf2.Key([]byte("testpassword"), salt, 1024, 32, sha256.New)
	cipherText, err := aesCTRXOR(derived[:16], plain, iv)
	require.NoError(t, err)

	cj := CryptoJSON{
		Cipher:       "aes-128-ctr",
		CipherText:   hex.EncodeToString(cipherText),
		CipherParams: cipherparamsJSON{IV: hex.EncodeToString(iv)},
		KDF:          "pbkdf2",
		KDFParams: map[string]interface{}{
			"c":     1024.0,
			"dklen": 32.0,
			"prf":   "hmac-sha256",
			"salt":  hex.EncodeToString(salt),
		},
		MAC: hex.EncodeToString(keccak256(derived[16:32], cipherText)),
	}
	out, err := DecryptDataV3(cj, "testpassword")
	require.NoError(t, err)
	assert.Equal(t, plain, out)

	cj.KDFParams["prf"] = "hmac-sha1"
	_, err = DecryptDataV3(cj, "testpassword")
	assert.ErrorContains(t, err, "unsupported PBKDF2 PRF")
}

func TestPlainKeyJSON(t *testing.T) {
	key, err := NewKey(signer.SchemeSecp256k1, testSeed(0x05))
	require.NoError(t, err)

	enc, err := json.Marshal(key)
	require.NoError(t, err)
	var dec Key
	require.NoError(t, json.Unmarshal(enc, &dec))
	assert.Equal(t, key.Id, dec.Id)
	assert.Equal(t, key.Public(), dec.Public())

	key.Zero()
	_, err = json.Marshal(key)
	assert.Error(t, err)
}

func TestWriteKeyFile(t *testing.T) {
	dir := t.TempDir()
	key, err := NewKey(signer.SchemeEd25519, testSeed(0x06))
	require.NoError(t, err)

	name := KeyFileName(key.Public())
	assert.True(t, strings.HasPrefix(name, "UTC--"), name)
	assert.True(t, strings.HasSuffix(name, "--ed25519-"+key.Public().String()), name)

	file := filepath.Join(dir, "nested", name)
	require.NoError(t, WriteKeyFile(file, []byte("content")))

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "content", string(content))

	fi, err := os.Stat(file)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), fi.Mode().Perm())
	di, err := os.Stat(filepath.Dir(file))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), di.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(file))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}
