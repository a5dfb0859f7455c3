// Copyright 2014 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package keystore

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/tos-network/edsigner/signer"
)

const (
	version = 3
)

// Key pairs a signing key with the random id recorded in its key file.
type Key struct {
	Id uuid.UUID // Version 4 "random" for unique id not derived from key data
	// SigningKey is always plaintext in memory.
	SigningKey signer.SigningKey
}

type plainKeyJSON struct {
	Scheme     string `json:"scheme"`
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privatekey"`
	Id         string `json:"id"`
	Version    int    `json:"version"`
}

type encryptedKeyJSONV3 struct {
	Scheme    string     `json:"scheme"`
	PublicKey string     `json:"publicKey"`
	Crypto    CryptoJSON `json:"crypto"`
	Id        string     `json:"id"`
	Version   int        `json:"version"`
}

type CryptoJSON struct {
	Cipher       string                 `json:"cipher"`
	CipherText   string                 `json:"ciphertext"`
	CipherParams cipherparamsJSON       `json:"cipherparams"`
	KDF          string                 `json:"kdf"`
	KDFParams    map[string]interface{} `json:"kdfparams"`
	MAC          string                 `json:"mac"`
}

type cipherparamsJSON struct {
	IV string `json:"iv"`
}

// NewKey derives a key for the named scheme from seed and assigns it a fresh
// random id.
func NewKey(scheme string, seed []byte) (*Key, error) {
	s, err := signer.Lookup(scheme)
	if err != nil {
		return nil, err
	}
	sk, err := s.Generate(seed)
	if err != nil {
		return nil, err
	}
	return newKeyFromSigningKey(sk)
}

func newKeyFromSigningKey(sk signer.SigningKey) (*Key, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, fmt.Errorf("could not create random uuid: %w", err)
	}
	return &Key{Id: id, SigningKey: sk}, nil
}

// Public returns the verifying key of k.
func (k *Key) Public() signer.VerifyingKey {
	return k.SigningKey.Public()
}

// Zero wipes the plaintext key material.
func (k *Key) Zero() {
	k.SigningKey.Zero()
}

func (k *Key) MarshalJSON() (j []byte, err error) {
	seed := k.SigningKey.Seed()
	if seed == nil {
		return nil, fmt.Errorf("missing %s private key", k.SigningKey.Scheme())
	}
	jStruct := plainKeyJSON{
		k.SigningKey.Scheme(),
		k.Public().String(),
		hex.EncodeToString(seed),
		k.Id.String(),
		version,
	}
	return json.Marshal(jStruct)
}

func (k *Key) UnmarshalJSON(j []byte) (err error) {
	keyJSON := new(plainKeyJSON)
	if err = json.Unmarshal(j, &keyJSON); err != nil {
		return err
	}
	id, err := uuid.Parse(keyJSON.Id)
	if err != nil {
		return err
	}
	seed, err := hex.DecodeString(keyJSON.PrivateKey)
	if err != nil {
		return err
	}
	s, err := signer.Lookup(keyJSON.Scheme)
	if err != nil {
		return err
	}
	sk, err := s.Generate(seed)
	if err != nil {
		return err
	}
	if keyJSON.PublicKey != "" && keyJSON.PublicKey != sk.Public().String() {
		return ErrPublicKeyMismatch
	}
	k.Id = id
	k.SigningKey = sk
	return nil
}

func writeTemporaryKeyFile(file string, content []byte) (string, error) {
	// Create the keystore directory with appropriate permissions
	// in case it is not present yet.
	const dirPerm = 0700
	if err := os.MkdirAll(filepath.Dir(file), dirPerm); err != nil {
		return "", err
	}
	// Atomic write: create a temporary hidden file first
	// then move it into place. TempFile assigns mode 0600.
	f, err := os.CreateTemp(filepath.Dir(file), "."+filepath.Base(file)+".tmp")
	if err != nil {
		return "", err
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	f.Close()
	return f.Name(), nil
}

// WriteKeyFile atomically writes content to file with mode 0600, creating
// the parent directory with mode 0700 when missing.
func WriteKeyFile(file string, content []byte) error {
	name, err := writeTemporaryKeyFile(file, content)
	if err != nil {
		return err
	}
	return os.Rename(name, file)
}

// KeyFileName implements the naming convention for key files:
// UTC--<created_at UTC ISO8601>--<scheme>-<public key hex>
func KeyFileName(pub signer.VerifyingKey) string {
	ts := time.Now().UTC()
	return fmt.Sprintf("UTC--%s--%s-%s", toISO8601(ts), pub.Scheme(), pub)
}

func toISO8601(t time.Time) string {
	var tz string
	name, offset := t.Zone()
	if name == "UTC" {
		tz = "Z"
	} else {
		tz = fmt.Sprintf("%03d00", offset/3600)
	}
	return fmt.Sprintf("%04d-%02d-%02dT%02d-%02d-%02d.%09d%s",
		t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), tz)
}
