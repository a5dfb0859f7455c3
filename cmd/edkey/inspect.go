package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/tos-network/edsigner/internal/flags"
	"github.com/tos-network/edsigner/keystore"
	"github.com/urfave/cli/v2"
)

type outputInspect struct {
	Id         string
	Scheme     string
	PublicKey  string
	PrivateKey string `json:",omitempty"`
}

var (
	privateFlag = &cli.BoolFlag{
		Name:     "private",
		Usage:    "include the private key in the output",
		Category: flags.KeyCategory,
	}
)

var commandInspect = &cli.Command{
	Name:      "inspect",
	Usage:     "inspect a keyfile",
	ArgsUsage: "<keyfile>",
	Description: `
Print various information about the keyfile.

Private key information can be printed by using the --private flag;
make sure to use this feature with great caution!`,
	Flags: flags.Merge(keyfileFlags, []cli.Flag{
		privateFlag,
	}),
	Action: func(ctx *cli.Context) error {
		keyfilepath := ctx.Args().First()

		// Read key from file.
		keyjson, err := os.ReadFile(keyfilepath)
		if err != nil {
			return fmt.Errorf("failed to read the keyfile at '%s': %v", keyfilepath, err)
		}

		// Decrypt key with passphrase.
		passphrase, err := getPassphrase(ctx, false)
		if err != nil {
			return err
		}
		key, err := keystore.DecryptKey(keyjson, passphrase)
		if err != nil {
			return fmt.Errorf("error decrypting key: %v", err)
		}
		defer key.Zero()

		showPrivate := ctx.Bool(privateFlag.Name)
		out := outputInspect{
			Id:        key.Id.String(),
			Scheme:    key.SigningKey.Scheme(),
			PublicKey: key.Public().String(),
		}
		if showPrivate {
			out.PrivateKey = hex.EncodeToString(key.SigningKey.Seed())
		}

		if ctx.Bool(jsonFlag.Name) {
			return printJSON(ctx, out)
		}
		w := ctx.App.Writer
		fmt.Fprintln(w, "Id:            ", out.Id)
		fmt.Fprintln(w, "Scheme:        ", out.Scheme)
		fmt.Fprintln(w, "Public key:    ", out.PublicKey)
		if showPrivate {
			fmt.Fprintln(w, "Private key:   ", out.PrivateKey)
		}
		return nil
	},
}
