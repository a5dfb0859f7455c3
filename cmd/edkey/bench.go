package main

import (
	stded25519 "crypto/ed25519"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/cpu"
	"github.com/tos-network/edsigner/internal/flags"
	"github.com/tos-network/edsigner/log"
	"github.com/tos-network/edsigner/signer"
	"github.com/urfave/cli/v2"
)

var (
	signOpsFlag = &cli.IntFlag{
		Name:     "sign-ops",
		Usage:    "number of sign operations per scheme",
		Value:    5000,
		Category: flags.BenchCategory,
	}
	verifyOpsFlag = &cli.IntFlag{
		Name:     "verify-ops",
		Usage:    "number of verify operations per scheme",
		Value:    5000,
		Category: flags.BenchCategory,
	}
	threadsFlag = &cli.IntFlag{
		Name:     "threads",
		Usage:    "number of goroutines sharing the operations",
		Value:    1,
		Category: flags.BenchCategory,
	}
)

var commandBench = &cli.Command{
	Name:  "bench",
	Usage: "measure sign and verify throughput",
	Description: `
Sign and verify a fixed message with every registered scheme and with the
standard library Ed25519 implementation for comparison. Operations are split
across --threads goroutines; keys are shared since schemes hold no state.`,
	Flags: []cli.Flag{
		signOpsFlag,
		verifyOpsFlag,
		threadsFlag,
	},
	Action: func(ctx *cli.Context) error {
		var (
			signOps   = ctx.Int(signOpsFlag.Name)
			verifyOps = ctx.Int(verifyOpsFlag.Name)
			threads   = ctx.Int(threadsFlag.Name)
		)
		if signOps <= 0 || verifyOps <= 0 {
			return errors.New("sign-ops and verify-ops must be > 0")
		}
		if threads <= 0 {
			return errors.New("threads must be > 0")
		}
		message := []byte("edkey benchmark message")

		var out []benchResult
		for _, name := range signer.Schemes() {
			scheme, err := signer.Lookup(name)
			if err != nil {
				return err
			}
			res, err := benchScheme(scheme, message, signOps, verifyOps, threads)
			if err != nil {
				return err
			}
			out = append(out, res)
		}
		out = append(out, benchStdlib(message, signOps, verifyOps, threads))
		sort.SliceStable(out, func(i, j int) bool { return out[i].verifyOps > out[j].verifyOps })

		w := ctx.App.Writer
		fmt.Fprintf(w, "Host: %s (%d logical CPUs, %s/%s)\n", cpuModel(), runtime.NumCPU(), runtime.GOOS, runtime.GOARCH)
		fmt.Fprintf(w, "Ed25519 backend: %s, threads: %d\n", signer.Backend(), threads)

		table := tablewriter.NewWriter(w)
		table.SetHeader([]string{"Scheme", "Sign us/op", "Sign ops/s", "Verify us/op", "Verify ops/s"})
		for _, r := range out {
			table.Append([]string{
				r.name,
				strconv.FormatFloat(r.signUS, 'f', 2, 64),
				strconv.FormatFloat(r.signOps, 'f', 0, 64),
				strconv.FormatFloat(r.verifyUS, 'f', 2, 64),
				strconv.FormatFloat(r.verifyOps, 'f', 0, 64),
			})
		}
		table.Render()
		return nil
	},
}

type benchResult struct {
	name      string
	signUS    float64
	verifyUS  float64
	signOps   float64
	verifyOps float64
}

// bench runs fn n times split across the given number of goroutines and
// returns the wall-clock time.
func bench(n, threads int, fn func() error) (time.Duration, error) {
	var (
		wg    sync.WaitGroup
		errMu sync.Mutex
		first error
	)
	start := time.Now()
	for t := 0; t < threads; t++ {
		share := n / threads
		if t < n%threads {
			share++
		}
		wg.Add(1)
		go func(share int) {
			defer wg.Done()
			for i := 0; i < share; i++ {
				if err := fn(); err != nil {
					errMu.Lock()
					if first == nil {
						first = err
					}
					errMu.Unlock()
					return
				}
			}
		}(share)
	}
	wg.Wait()
	return time.Since(start), first
}

func perOpUS(d time.Duration, n int) float64 {
	return float64(d.Microseconds()) / float64(n)
}

func perSecOps(d time.Duration, n int) float64 {
	return float64(n) / d.Seconds()
}

func benchScheme(scheme signer.Scheme, message []byte, signOps, verifyOps, threads int) (benchResult, error) {
	key, err := signer.GenerateKey(scheme, nil)
	if err != nil {
		return benchResult{}, err
	}
	defer key.Zero()
	sig, err := scheme.Sign(key, message)
	if err != nil {
		return benchResult{}, err
	}
	dSign, err := bench(signOps, threads, func() error {
		_, err := scheme.Sign(key, message)
		return err
	})
	if err != nil {
		return benchResult{}, err
	}
	dVerify, err := bench(verifyOps, threads, func() error {
		return scheme.Verify(key.Public(), message, sig[:])
	})
	if err != nil {
		return benchResult{}, fmt.Errorf("%s verify failed: %v", scheme.Name(), err)
	}
	name := scheme.Name()
	if name == signer.SchemeEd25519 {
		name += " (" + signer.Backend() + ")"
	}
	log.Debug("Benchmarked scheme", "scheme", name, "sign", dSign, "verify", dVerify)
	return benchResult{
		name:      name,
		signUS:    perOpUS(dSign, signOps),
		verifyUS:  perOpUS(dVerify, verifyOps),
		signOps:   perSecOps(dSign, signOps),
		verifyOps: perSecOps(dVerify, verifyOps),
	}, nil
}

func benchStdlib(message []byte, signOps, verifyOps, threads int) benchResult {
	priv := stded25519.NewKeyFromSeed(make([]byte, stded25519.SeedSize))
	pub := priv.Public().(stded25519.PublicKey)
	sig := stded25519.Sign(priv, message)

	dSign, _ := bench(signOps, threads, func() error {
		stded25519.Sign(priv, message)
		return nil
	})
	dVerify, _ := bench(verifyOps, threads, func() error {
		if !stded25519.Verify(pub, message, sig) {
			return errors.New("ed25519 std verify failed")
		}
		return nil
	})
	return benchResult{
		name:      "ed25519 (stdlib)",
		signUS:    perOpUS(dSign, signOps),
		verifyUS:  perOpUS(dVerify, verifyOps),
		signOps:   perSecOps(dSign, signOps),
		verifyOps: perSecOps(dVerify, verifyOps),
	}
}

func cpuModel() string {
	infos, err := cpu.Info()
	if err != nil || len(infos) == 0 {
		log.Debug("Failed to read CPU info", "err", err)
		return "unknown CPU"
	}
	return infos[0].ModelName
}
