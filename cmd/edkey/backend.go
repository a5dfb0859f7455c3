package main

import (
	"fmt"
	"runtime"

	"github.com/tos-network/edsigner/crypto/ed25519"
	"github.com/tos-network/edsigner/signer"
	"github.com/urfave/cli/v2"
	"golang.org/x/sys/cpu"
)

type outputBackend struct {
	Backend           string
	NativeAccelerated bool
	CPUHasAVX2        bool
	Arch              string
	Schemes           []string
}

var commandBackend = &cli.Command{
	Name:  "backend",
	Usage: "show the compiled Ed25519 curve backend",
	Description: `
Print the curve engine this binary was built with and whether the host CPU
supports the vectorized engine. Rebuild with -tags ed25519_u32 or
-tags ed25519_avx2 to select another engine.`,
	Flags: []cli.Flag{
		jsonFlag,
	},
	Action: func(ctx *cli.Context) error {
		out := outputBackend{
			Backend:           signer.Backend(),
			NativeAccelerated: ed25519.NativeAccelerated(),
			CPUHasAVX2:        cpu.X86.HasAVX2,
			Arch:              runtime.GOARCH,
			Schemes:           signer.Schemes(),
		}
		if ctx.Bool(jsonFlag.Name) {
			return printJSON(ctx, out)
		}
		w := ctx.App.Writer
		fmt.Fprintln(w, "Backend:            ", out.Backend)
		fmt.Fprintln(w, "Native accelerated: ", out.NativeAccelerated)
		fmt.Fprintln(w, "CPU has AVX2:       ", out.CPUHasAVX2)
		fmt.Fprintln(w, "Architecture:       ", out.Arch)
		fmt.Fprintln(w, "Schemes:            ", out.Schemes)
		return nil
	},
}
