package main

import (
	crand "crypto/rand"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tos-network/edsigner/internal/flags"
	"github.com/tos-network/edsigner/keystore"
	"github.com/tos-network/edsigner/log"
	"github.com/tos-network/edsigner/signer"
	"github.com/urfave/cli/v2"
)

type outputGenerate struct {
	PublicKey      string `json:"publicKey"`
	Scheme         string `json:"scheme"`
	Keyfile        string `json:"keyfile"`
	DerivationPath string `json:"derivationPath,omitempty"`
	Mnemonic       string `json:"mnemonic,omitempty"`
}

var (
	privateKeyFlag = &cli.StringFlag{
		Name:     "privatekey",
		Usage:    "file containing a hex encoded 32-byte seed to encrypt",
		Category: flags.KeyCategory,
	}
	lightKDFFlag = &cli.BoolFlag{
		Name:     "lightkdf",
		Usage:    "use less secure scrypt parameters",
		Category: flags.KeyCategory,
	}
	mnemonicGenerateFlag = &cli.BoolFlag{
		Name:     "mnemonic-generate",
		Usage:    "Generate a BIP39 mnemonic and derive key using --hd-path",
		Category: flags.KeyCategory,
	}
	mnemonicFlag = &cli.StringFlag{
		Name:     "mnemonic",
		Usage:    "Use existing BIP39 mnemonic to derive the key",
		Category: flags.KeyCategory,
	}
	mnemonicPassphraseFlag = &cli.StringFlag{
		Name:     "mnemonic-passphrase",
		Usage:    "Optional BIP39 passphrase for mnemonic-to-seed",
		Category: flags.KeyCategory,
	}
	mnemonicBitsFlag = &cli.IntFlag{
		Name:     "mnemonic-bits",
		Usage:    "Entropy bits for generated mnemonic (128,160,192,224,256)",
		Value:    defaultMnemonicBits,
		Category: flags.KeyCategory,
	}
	hdPathFlag = &cli.StringFlag{
		Name:     "hd-path",
		Usage:    "Derivation path used with mnemonic flow (default depends on --scheme)",
		Category: flags.KeyCategory,
	}
)

var commandGenerate = &cli.Command{
	Name:      "generate",
	Usage:     "generate new keyfile",
	ArgsUsage: "[ <keyfile> ]",
	Description: `
Generate a new keyfile.

If you want to encrypt an existing seed, it can be specified by setting
--privatekey with the location of the file containing the hex encoded seed.
Keys can also be derived from a BIP39 mnemonic with --mnemonic or
--mnemonic-generate.
`,
	Flags: []cli.Flag{
		passphraseFlag,
		jsonFlag,
		schemeFlag,
		privateKeyFlag,
		lightKDFFlag,
		mnemonicGenerateFlag,
		mnemonicFlag,
		mnemonicPassphraseFlag,
		mnemonicBitsFlag,
		hdPathFlag,
	},
	Action: func(ctx *cli.Context) error {
		cfg, err := makeConfig(ctx)
		if err != nil {
			return err
		}
		// Check if keyfile path given and make sure it doesn't already exist.
		// Keys generated into the configured key directory are named after
		// their public key once it is known.
		keyfilepath := ctx.Args().First()
		if keyfilepath == "" && cfg.Keystore.KeyDir == "" {
			keyfilepath = defaultKeyfileName
		}
		if keyfilepath != "" {
			if err := checkKeyfileAbsent(keyfilepath); err != nil {
				return err
			}
		}

		var (
			seed           []byte
			derivationPath string
			mnemonicOutput string
			mnemonicInput  = strings.TrimSpace(ctx.String(mnemonicFlag.Name))
			mnemonicMode   = mnemonicInput != "" || ctx.Bool(mnemonicGenerateFlag.Name)
			scheme         = cfg.Signer.Scheme
		)
		switch {
		case ctx.String(privateKeyFlag.Name) != "":
			if mnemonicMode {
				return errors.New("can't use --privatekey with mnemonic flags")
			}
			seed, err = loadSeedHex(ctx.String(privateKeyFlag.Name))
			if err != nil {
				return fmt.Errorf("can't load private key: %v", err)
			}
		case mnemonicMode:
			if mnemonicInput == "" {
				mnemonicInput, err = generateMnemonic(ctx.Int(mnemonicBitsFlag.Name))
				if err != nil {
					return fmt.Errorf("failed to generate mnemonic: %v", err)
				}
				mnemonicOutput = mnemonicInput
			}
			derivationPath = ctx.String(hdPathFlag.Name)
			if derivationPath == "" {
				derivationPath = defaultHDPaths[scheme]
			}
			seed, err = deriveSeedFromMnemonic(scheme, mnemonicInput, ctx.String(mnemonicPassphraseFlag.Name), derivationPath)
			if err != nil {
				return fmt.Errorf("failed to derive %s key from mnemonic: %v", scheme, err)
			}
		default:
			seed = make([]byte, signer.SeedSize)
			if _, err := io.ReadFull(crand.Reader, seed); err != nil {
				return fmt.Errorf("failed to generate random seed: %v", err)
			}
		}
		key, err := keystore.NewKey(scheme, seed)
		for i := range seed {
			seed[i] = 0
		}
		if err != nil {
			return fmt.Errorf("invalid %s key: %v", scheme, err)
		}
		defer key.Zero()

		if keyfilepath == "" {
			keyfilepath = filepath.Join(cfg.Keystore.KeyDir, keystore.KeyFileName(key.Public()))
			if err := checkKeyfileAbsent(keyfilepath); err != nil {
				return err
			}
		}

		// Encrypt key with passphrase.
		passphrase, err := getPassphrase(ctx, true)
		if err != nil {
			return err
		}
		scryptN, scryptP := keystore.StandardScryptN, keystore.StandardScryptP
		if cfg.Keystore.LightKDF {
			scryptN, scryptP = keystore.LightScryptN, keystore.LightScryptP
		}
		keyjson, err := keystore.EncryptKey(key, passphrase, scryptN, scryptP)
		if err != nil {
			return fmt.Errorf("error encrypting key: %v", err)
		}

		// Store the file to disk.
		if err := keystore.WriteKeyFile(keyfilepath, keyjson); err != nil {
			return fmt.Errorf("failed to write keyfile to %s: %v", keyfilepath, err)
		}
		log.Info("Generated key", "scheme", scheme, "backend", signer.Backend(), "keyfile", keyfilepath)

		// Output some information.
		out := outputGenerate{
			PublicKey:      key.Public().String(),
			Scheme:         scheme,
			Keyfile:        keyfilepath,
			DerivationPath: derivationPath,
			Mnemonic:       mnemonicOutput,
		}
		if ctx.Bool(jsonFlag.Name) {
			return printJSON(ctx, out)
		}
		w := ctx.App.Writer
		fmt.Fprintln(w, "Public key:", out.PublicKey)
		fmt.Fprintln(w, "Scheme:", out.Scheme)
		if out.DerivationPath != "" {
			fmt.Fprintln(w, "Derivation path:", out.DerivationPath)
		}
		if out.Mnemonic != "" {
			fmt.Fprintln(w, "Mnemonic:", out.Mnemonic)
		}
		return nil
	},
}

func checkKeyfileAbsent(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("keyfile already exists at %s", path)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("error checking if keyfile exists: %v", err)
	}
	return nil
}
