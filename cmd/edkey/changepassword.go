package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/tos-network/edsigner/internal/flags"
	"github.com/tos-network/edsigner/keystore"
	"github.com/tos-network/edsigner/log"
	"github.com/urfave/cli/v2"
)

type outputChangePassword struct {
	Id        string `json:"id"`
	PublicKey string `json:"publicKey"`
	Keyfile   string `json:"keyfile"`
}

var newPassphraseFlag = &cli.StringFlag{
	Name:     "newpasswordfile",
	Usage:    "the file that contains the new password for the keyfile",
	Category: flags.KeyCategory,
}

var commandChangePassword = &cli.Command{
	Name:      "changepassword",
	Usage:     "change the password on a keyfile",
	ArgsUsage: "<keyfile>",
	Description: `
Change the password of a keyfile. The key keeps its id and public key and is
re-encrypted with fresh salt and IV.`,
	Flags: flags.Merge(keyfileFlags, []cli.Flag{
		newPassphraseFlag,
		lightKDFFlag,
	}),
	Action: func(ctx *cli.Context) error {
		cfg, err := makeConfig(ctx)
		if err != nil {
			return err
		}
		keyfilepath := ctx.Args().First()
		if keyfilepath == "" {
			return errors.New("missing keyfile argument")
		}

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

		// Get a new passphrase.
		var newPassphrase string
		if file := ctx.String(newPassphraseFlag.Name); file != "" {
			newPassphrase, err = readPasswordFile(file)
		} else {
			newPassphrase, err = promptNewPassphrase(ctx, "New password: ", "Repeat new password: ")
		}
		if err != nil {
			return err
		}

		// Encrypt the key with the new passphrase.
		scryptN, scryptP := keystore.StandardScryptN, keystore.StandardScryptP
		if cfg.Keystore.LightKDF {
			scryptN, scryptP = keystore.LightScryptN, keystore.LightScryptP
		}
		newJson, err := keystore.EncryptKey(key, newPassphrase, scryptN, scryptP)
		if err != nil {
			return fmt.Errorf("error encrypting with new password: %v", err)
		}

		// Then write the new keyfile in place of the old one.
		if err := keystore.WriteKeyFile(keyfilepath, newJson); err != nil {
			return fmt.Errorf("error writing new keyfile to disk: %v", err)
		}
		log.Info("Changed keyfile password", "keyfile", keyfilepath, "scheme", key.SigningKey.Scheme())

		out := outputChangePassword{
			Id:        key.Id.String(),
			PublicKey: key.Public().String(),
			Keyfile:   keyfilepath,
		}
		if ctx.Bool(jsonFlag.Name) {
			return printJSON(ctx, out)
		}
		fmt.Fprintln(ctx.App.Writer, "Password changed for", out.Keyfile)
		return nil
	},
}
