package main

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tos-network/edsigner/signer"
)

func TestMessageSignVerify(t *testing.T) {
	tmpdir := t.TempDir()
	keyfile := filepath.Join(tmpdir, "the-keyfile")
	pwfile := writePasswordFile(t, tmpdir, "foobar")
	message := "test message"

	// Create the key.
	out := mustRun(t, "", "generate", "--lightkdf", "--passwordfile", pwfile, keyfile)
	assert.Equal(t, signer.SchemeEd25519, field(t, out, "Scheme"))
	pub := field(t, out, "Public key")
	assert.Len(t, pub, 64)

	// Sign a message.
	out = mustRun(t, "", "signmessage", "--passwordfile", pwfile, keyfile, message)
	signature := field(t, out, "Signature")
	assert.Len(t, signature, 128)

	// Verify by public key and by keyfile.
	out = mustRun(t, "", "verifymessage", pub, signature, message)
	assert.Contains(t, out, "Signature verification successful!")
	assert.Equal(t, pub, field(t, out, "Public key"))

	out = mustRun(t, "", "verifymessage", keyfile, signature, message)
	assert.Contains(t, out, "Signature verification successful!")

	// A different message must not verify.
	run := runEdkey(t, "", "verifymessage", pub, signature, "other message")
	assert.EqualError(t, run.err, "signature verification failed")

	// A truncated signature is malformed, which also fails verification.
	run = runEdkey(t, "", "verifymessage", pub, signature[:126], message)
	assert.EqualError(t, run.err, "signature verification failed")
}

func TestMessageSignVerifySecp256k1DER(t *testing.T) {
	tmpdir := t.TempDir()
	keyfile := filepath.Join(tmpdir, "secp-keyfile")
	pwfile := writePasswordFile(t, tmpdir, "pw")

	out := mustRun(t, "", "generate", "--lightkdf", "--scheme", "ethereum_secp256k1", "--passwordfile", pwfile, keyfile)
	assert.Equal(t, signer.SchemeSecp256k1, field(t, out, "Scheme"))
	pub := field(t, out, "Public key")

	out = mustRun(t, "", "signmessage", "--der", "--passwordfile", pwfile, keyfile, "hello")
	fixed := field(t, out, "Signature")
	der := field(t, out, "DER")

	for _, sig := range []string{fixed, der} {
		out = mustRun(t, "", "verifymessage", "--scheme", "secp256k1", pub, sig, "hello")
		assert.Contains(t, out, "Signature verification successful!")
	}

	// Without --scheme the public key is read as ed25519 and rejected.
	run := runEdkey(t, "", "verifymessage", pub, fixed, "hello")
	assert.ErrorIs(t, run.err, signer.ErrInvalidKey)
}

func TestMessageFile(t *testing.T) {
	tmpdir := t.TempDir()
	keyfile := filepath.Join(tmpdir, "keyfile")
	pwfile := writePasswordFile(t, tmpdir, "pw")
	msgfile := filepath.Join(tmpdir, "msg")
	require.NoError(t, os.WriteFile(msgfile, []byte("file contents\n"), 0600))

	mustRun(t, "", "generate", "--lightkdf", "--passwordfile", pwfile, keyfile)
	out := mustRun(t, "", "signmessage", "--json", "--msgfile", msgfile, "--passwordfile", pwfile, keyfile)
	var signed outputSign
	require.NoError(t, json.Unmarshal([]byte(out), &signed))

	out = mustRun(t, "", "verifymessage", "--json", "--msgfile", msgfile, keyfile, signed.Signature)
	var verified outputVerify
	require.NoError(t, json.Unmarshal([]byte(out), &verified))
	assert.True(t, verified.Success)
	assert.Equal(t, signer.SchemeEd25519, verified.Scheme)

	run := runEdkey(t, "", "signmessage", "--msgfile", msgfile, "--passwordfile", pwfile, keyfile, "extra")
	assert.Error(t, run.err)
}

func TestSignWrongPassword(t *testing.T) {
	tmpdir := t.TempDir()
	keyfile := filepath.Join(tmpdir, "keyfile")
	mustRun(t, "", "generate", "--lightkdf", "--passwordfile", writePasswordFile(t, tmpdir, "right"), keyfile)

	run := runEdkey(t, "", "signmessage", "--passwordfile", writePasswordFile(t, t.TempDir(), "wrong"), keyfile, "m")
	require.Error(t, run.err)
	assert.True(t, strings.Contains(run.err.Error(), "could not decrypt key"), run.err.Error())
}

func TestSignDERRequiresSecp256k1(t *testing.T) {
	tmpdir := t.TempDir()
	keyfile := filepath.Join(tmpdir, "keyfile")
	pwfile := writePasswordFile(t, tmpdir, "pw")
	mustRun(t, "", "generate", "--lightkdf", "--passwordfile", pwfile, keyfile)

	run := runEdkey(t, "", "signmessage", "--der", "--passwordfile", pwfile, keyfile, "m")
	assert.Error(t, run.err)
}

func TestVerifyBadHex(t *testing.T) {
	run := runEdkey(t, "", "verifymessage", "zz", hex.EncodeToString(make([]byte, 64)), "m")
	assert.Error(t, run.err)
}
