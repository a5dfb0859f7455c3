package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"unicode"

	"github.com/naoina/toml"
	"github.com/tos-network/edsigner/internal/flags"
	"github.com/tos-network/edsigner/log"
	"github.com/tos-network/edsigner/signer"
	"github.com/urfave/cli/v2"
)

var (
	configFileFlag = &cli.StringFlag{
		Name:     "config",
		Usage:    "TOML configuration file",
		Category: flags.MiscCategory,
	}
	verbosityFlag = &cli.IntFlag{
		Name:     "verbosity",
		Usage:    "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value:    int(log.LvlInfo),
		Category: flags.LoggingCategory,
	}
	logFormatFlag = &cli.StringFlag{
		Name:     "log.format",
		Usage:    "Log format to use (terminal|logfmt)",
		Value:    "terminal",
		Category: flags.LoggingCategory,
	}

	configFlags  = []cli.Flag{configFileFlag}
	loggingFlags = []cli.Flag{verbosityFlag, logFormatFlag}

	commandDumpConfig = &cli.Command{
		Action:      dumpConfig,
		Name:        "dumpconfig",
		Usage:       "Show configuration values",
		ArgsUsage:   "",
		Flags:       []cli.Flag{schemeFlag, lightKDFFlag},
		Description: `The dumpconfig command shows configuration values.`,
	}
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

type edkeyConfig struct {
	Signer   SignerConfig
	Keystore KeystoreConfig
	Log      LogConfig
}

// SignerConfig selects the signature scheme and pins the curve backend.
type SignerConfig struct {
	Scheme string
	// Backend, when set, must name the engine compiled into the binary.
	Backend string
}

type KeystoreConfig struct {
	KeyDir   string
	LightKDF bool
}

type LogConfig struct {
	Verbosity int
	Format    string
}

func defaultConfig() edkeyConfig {
	return edkeyConfig{
		Signer:   SignerConfig{Scheme: signer.SchemeEd25519},
		Keystore: KeystoreConfig{},
		Log:      LogConfig{Verbosity: int(log.LvlInfo), Format: "terminal"},
	}
}

func loadConfig(file string, cfg *edkeyConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// makeConfig loads the config file, applies command line overrides and
// validates the result.
func makeConfig(ctx *cli.Context) (edkeyConfig, error) {
	cfg := defaultConfig()
	if file := ctx.String(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}
	if ctx.IsSet(schemeFlag.Name) {
		cfg.Signer.Scheme = ctx.String(schemeFlag.Name)
	}
	if ctx.IsSet(lightKDFFlag.Name) {
		cfg.Keystore.LightKDF = ctx.Bool(lightKDFFlag.Name)
	}
	if ctx.IsSet(verbosityFlag.Name) {
		cfg.Log.Verbosity = ctx.Int(verbosityFlag.Name)
	}
	if ctx.IsSet(logFormatFlag.Name) {
		cfg.Log.Format = ctx.String(logFormatFlag.Name)
	}

	scheme, err := signer.CanonicalScheme(cfg.Signer.Scheme)
	if err != nil {
		return cfg, err
	}
	cfg.Signer.Scheme = scheme
	if err := signer.CheckBackend(cfg.Signer.Backend); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}
	dump := ctx.App.Writer
	if ctx.NArg() > 0 {
		f, err := os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		dump = f
	}
	_, err = dump.Write(out)
	return err
}
