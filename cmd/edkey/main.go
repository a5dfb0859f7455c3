package main

import (
	"fmt"
	"os"

	"github.com/tos-network/edsigner/internal/flags"
	"github.com/urfave/cli/v2"
)

const (
	defaultKeyfileName = "keyfile.json"
)

// Git SHA1 commit hash of the release (set via linker flags)
var gitCommit = ""
var gitDate = ""

func newApp() *cli.App {
	app := flags.NewApp(gitCommit, gitDate, "an Ed25519 key manager")
	app.Flags = flags.Merge(configFlags, loggingFlags)
	app.Before = func(ctx *cli.Context) error {
		cfg, err := makeConfig(ctx)
		if err != nil {
			return err
		}
		return setupLogging(ctx, cfg.Log)
	}
	app.Commands = []*cli.Command{
		commandGenerate,
		commandInspect,
		commandChangePassword,
		commandSignMessage,
		commandVerifyMessage,
		commandBackend,
		commandBench,
		commandDumpConfig,
		commandVersion,
	}
	return app
}

// Commonly used command line flags.
var (
	passphraseFlag = &cli.StringFlag{
		Name:     "passwordfile",
		Usage:    "the file that contains the password for the keyfile",
		Category: flags.KeyCategory,
	}
	jsonFlag = &cli.BoolFlag{
		Name:     "json",
		Usage:    "output JSON instead of human-readable format",
		Category: flags.MiscCategory,
	}
	schemeFlag = &cli.StringFlag{
		Name:     "scheme",
		Usage:    "signature scheme (`ed25519` default, supports `secp256k1`)",
		Category: flags.SigningCategory,
	}

	// keyfileFlags are shared by every command that decrypts a keyfile.
	keyfileFlags = []cli.Flag{passphraseFlag, jsonFlag}
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Fatal:", err)
		os.Exit(1)
	}
}
