package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/tos-network/edsigner/internal/flags"
	"github.com/tos-network/edsigner/keystore"
	"github.com/tos-network/edsigner/log"
	"github.com/tos-network/edsigner/signer"
	"github.com/urfave/cli/v2"
)

type outputSign struct {
	Signature string
	DER       string `json:",omitempty"`
}

var (
	msgfileFlag = &cli.StringFlag{
		Name:     "msgfile",
		Usage:    "file containing the message to sign/verify",
		Category: flags.SigningCategory,
	}
	derFlag = &cli.BoolFlag{
		Name:     "der",
		Usage:    "also print the ASN.1 DER form of secp256k1 signatures",
		Category: flags.SigningCategory,
	}
)

var commandSignMessage = &cli.Command{
	Name:      "signmessage",
	Usage:     "sign a message",
	ArgsUsage: "<keyfile> <message>",
	Description: `
Sign the message with a keyfile.

To sign a message contained in a file, use the --msgfile flag.
`,
	Flags: flags.Merge(keyfileFlags, []cli.Flag{
		msgfileFlag,
		derFlag,
	}),
	Action: func(ctx *cli.Context) error {
		message, err := readMessage(ctx, 1)
		if err != nil {
			return err
		}
		keyfilepath := ctx.Args().First()

		// Load the keyfile.
		keyjson, err := os.ReadFile(keyfilepath)
		if err != nil {
			return fmt.Errorf("failed to read the keyfile at '%s': %v", keyfilepath, err)
		}
		passphrase, err := getPassphrase(ctx, false)
		if err != nil {
			return err
		}
		key, err := keystore.DecryptKey(keyjson, passphrase)
		if err != nil {
			return fmt.Errorf("error decrypting key: %v", err)
		}
		defer key.Zero()

		scheme, err := signer.Lookup(key.SigningKey.Scheme())
		if err != nil {
			return err
		}
		signature, err := scheme.Sign(key.SigningKey, message)
		if err != nil {
			return fmt.Errorf("failed to sign message: %v", err)
		}
		log.Debug("Signed message", "scheme", scheme.Name(), "backend", signer.Backend(), "len", len(message))

		out := outputSign{Signature: signature.String()}
		if ctx.Bool(derFlag.Name) {
			if scheme.Name() != signer.SchemeSecp256k1 {
				return errors.New("--der is only supported for secp256k1 keys")
			}
			der, err := signer.FixedToASN1(signature[:])
			if err != nil {
				return err
			}
			out.DER = hex.EncodeToString(der)
		}
		if ctx.Bool(jsonFlag.Name) {
			return printJSON(ctx, out)
		}
		fmt.Fprintln(ctx.App.Writer, "Signature:", out.Signature)
		if out.DER != "" {
			fmt.Fprintln(ctx.App.Writer, "DER:", out.DER)
		}
		return nil
	},
}

type outputVerify struct {
	Success   bool
	Scheme    string
	PublicKey string
}

var commandVerifyMessage = &cli.Command{
	Name:      "verifymessage",
	Usage:     "verify the signature of a signed message",
	ArgsUsage: "<public key | keyfile> <signature> <message>",
	Description: `
Verify the signature of the message. The signer is given either as a hex
encoded public key, interpreted under --scheme, or as a keyfile whose public
key is read without decrypting it. secp256k1 signatures may be given in
fixed 64-byte or ASN.1 DER form.

It is possible to refer to a file containing the message.`,
	Flags: []cli.Flag{
		jsonFlag,
		msgfileFlag,
		schemeFlag,
	},
	Action: func(ctx *cli.Context) error {
		cfg, err := makeConfig(ctx)
		if err != nil {
			return err
		}
		signerArg := ctx.Args().First()
		signatureHex := ctx.Args().Get(1)
		message, err := readMessage(ctx, 2)
		if err != nil {
			return err
		}

		scheme, pub, err := resolveVerifyingKey(signerArg, cfg.Signer.Scheme)
		if err != nil {
			return err
		}
		sig, err := decodeHexArg(signatureHex)
		if err != nil {
			return fmt.Errorf("signature encoding is not hexadecimal: %v", err)
		}
		if scheme.Name() == signer.SchemeSecp256k1 && len(sig) != signer.SignatureSize {
			if sig, err = signer.ASN1ToFixed(sig); err != nil {
				return err
			}
		}

		out := outputVerify{
			Success:   true,
			Scheme:    scheme.Name(),
			PublicKey: pub.String(),
		}
		if err := scheme.Verify(pub, message, sig); err != nil {
			if !errors.Is(err, signer.ErrInvalidSignature) && !errors.Is(err, signer.ErrMalformedSignature) {
				return err
			}
			out.Success = false
			log.Debug("Signature rejected", "err", err)
		}
		if ctx.Bool(jsonFlag.Name) {
			if err := printJSON(ctx, out); err != nil {
				return err
			}
		} else if out.Success {
			fmt.Fprintln(ctx.App.Writer, "Signature verification successful!")
			fmt.Fprintln(ctx.App.Writer, "Scheme:", out.Scheme)
			fmt.Fprintln(ctx.App.Writer, "Public key:", out.PublicKey)
		}
		if !out.Success {
			return errors.New("signature verification failed")
		}
		return nil
	},
}

// resolveVerifyingKey interprets arg as a keyfile path when such a file
// exists, and as a hex encoded public key of the named scheme otherwise.
func resolveVerifyingKey(arg string, schemeName string) (signer.Scheme, signer.VerifyingKey, error) {
	if keyjson, err := os.ReadFile(arg); err == nil {
		info, err := keystore.ReadKeyInfo(keyjson)
		if err != nil {
			return nil, signer.VerifyingKey{}, fmt.Errorf("invalid keyfile %s: %v", arg, err)
		}
		scheme, err := signer.Lookup(info.Scheme)
		return scheme, info.PublicKey, err
	}
	scheme, err := signer.Lookup(schemeName)
	if err != nil {
		return nil, signer.VerifyingKey{}, err
	}
	raw, err := decodeHexArg(arg)
	if err != nil {
		return nil, signer.VerifyingKey{}, fmt.Errorf("public key encoding is not hexadecimal: %v", err)
	}
	pub, err := scheme.ParseVerifyingKey(raw)
	if err != nil {
		return nil, signer.VerifyingKey{}, err
	}
	return scheme, pub, nil
}
