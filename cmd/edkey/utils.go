package main

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/tos-network/edsigner/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

// getPassphrase obtains a passphrase given by the user. It first checks the
// --passwordfile command line flag and ultimately prompts the user for a
// passphrase.
func getPassphrase(ctx *cli.Context, confirmation bool) (string, error) {
	// Look for the --passwordfile flag.
	if file := ctx.String(passphraseFlag.Name); file != "" {
		return readPasswordFile(file)
	}

	// Otherwise prompt the user for the passphrase.
	if confirmation {
		return promptNewPassphrase(ctx, "Password: ", "Repeat password: ")
	}
	return promptPassphrase(ctx, "Password: ")
}

// readPasswordFile returns the first line of file without its line ending.
func readPasswordFile(file string) (string, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read password file '%s': %v", file, err)
	}
	return strings.TrimRight(string(content), "\r\n"), nil
}

// promptNewPassphrase asks for a passphrase twice and fails if the two
// answers differ.
func promptNewPassphrase(ctx *cli.Context, prompt, confirmPrompt string) (string, error) {
	passphrase, err := promptPassphrase(ctx, prompt)
	if err != nil {
		return "", err
	}
	confirm, err := promptPassphrase(ctx, confirmPrompt)
	if err != nil {
		return "", err
	}
	if passphrase != confirm {
		return "", errors.New("passwords do not match")
	}
	return passphrase, nil
}

func promptPassphrase(ctx *cli.Context, prompt string) (string, error) {
	in, out := ctx.App.Reader, ctx.App.ErrWriter
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(out, prompt)
		pw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %v", err)
		}
		return string(pw), nil
	}
	fmt.Fprintln(out, "!! Unsupported terminal, password will be echoed.")
	fmt.Fprint(out, prompt)
	line, err := readLine(in)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %v", err)
	}
	return line, nil
}

// readLine reads up to the next newline without buffering past it, so that
// consecutive prompts can share one reader.
func readLine(in io.Reader) (string, error) {
	var (
		line []byte
		b    [1]byte
	)
	for {
		n, err := in.Read(b[:])
		if n == 1 {
			if b[0] == '\n' {
				break
			}
			line = append(line, b[0])
		}
		if err == io.EOF && len(line) > 0 {
			break
		}
		if err != nil {
			return "", err
		}
	}
	return strings.TrimRight(string(line), "\r"), nil
}

// readMessage returns the message argument at index i, or the contents of
// --msgfile when given.
func readMessage(ctx *cli.Context, i int) ([]byte, error) {
	if file := ctx.String(msgfileFlag.Name); file != "" {
		if ctx.NArg() > i {
			return nil, errors.New("can't use --msgfile and message argument at the same time")
		}
		msg, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("can't read message file: %v", err)
		}
		return msg, nil
	}
	if ctx.NArg() == i+1 {
		return []byte(ctx.Args().Get(i)), nil
	}
	return nil, fmt.Errorf("invalid number of arguments: want %d, got %d", i+1, ctx.NArg())
}

// loadSeedHex reads a hex encoded seed from a file.
func loadSeedHex(file string) ([]byte, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	raw := strings.TrimPrefix(strings.TrimSpace(string(content)), "0x")
	return hex.DecodeString(raw)
}

func decodeHexArg(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "0x"))
}

// printJSON writes v as indented JSON to the app's output.
func printJSON(ctx *cli.Context, v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON object: %v", err)
	}
	_, err = fmt.Fprintln(ctx.App.Writer, string(out))
	return err
}

func setupLogging(ctx *cli.Context, cfg LogConfig) error {
	var (
		output   = ctx.App.ErrWriter
		usecolor = false
	)
	if output == os.Stderr {
		usecolor = (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		if usecolor {
			output = colorable.NewColorableStderr()
		}
	}
	var format log.Format
	switch cfg.Format {
	case "", "terminal":
		format = log.TerminalFormat(usecolor)
	case "logfmt":
		format = log.LogfmtFormat()
	default:
		return fmt.Errorf("unknown log format %q", cfg.Format)
	}
	handler := log.StreamHandler(output, format)
	if log.Lvl(cfg.Verbosity) >= log.LvlDebug {
		handler = log.CallerFileHandler(handler)
	}
	if cfg.Verbosity <= 0 {
		handler = log.DiscardHandler()
	}
	log.Root().SetHandler(log.LvlFilterHandler(log.Lvl(cfg.Verbosity), handler))
	return nil
}
