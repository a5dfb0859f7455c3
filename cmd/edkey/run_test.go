package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type testRun struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
	err    error
}

// runEdkey runs the edkey app in-process with the given arguments and
// standard input.
func runEdkey(t *testing.T, stdin string, args ...string) *testRun {
	t.Helper()
	var (
		run = new(testRun)
		app = newApp()
	)
	app.Writer = &run.stdout
	app.ErrWriter = &run.stderr
	app.Reader = io.Reader(strings.NewReader(stdin))
	run.err = app.Run(append([]string{"edkey"}, args...))
	return run
}

// mustRun fails the test if the command returns an error.
func mustRun(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	run := runEdkey(t, stdin, args...)
	if run.err != nil {
		t.Fatalf("edkey %v failed: %v\nstderr:\n%s", args, run.err, run.stderr.String())
	}
	return run.stdout.String()
}

func writePasswordFile(t *testing.T, dir, password string) string {
	t.Helper()
	file := filepath.Join(dir, "password")
	if err := os.WriteFile(file, []byte(password+"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	return file
}

// field returns the value printed after "name:" in human-readable output.
func field(t *testing.T, out, name string) string {
	t.Helper()
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, name+":") {
			return strings.TrimSpace(strings.TrimPrefix(line, name+":"))
		}
	}
	t.Fatalf("no %q in output:\n%s", name, out)
	return ""
}
