// Command clawstrap is a container entrypoint wrapper: it materializes
// base64-encoded credential environment variables into the files the wrapped
// tooling expects, then exec-replaces itself with the wrapped command line.
//
//	clawstrap [flags] -- openclaw gateway --port 18789
//
// Secrets are best-effort: a missing or malformed variable is logged and
// skipped, and the wrapped application always launches.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jonwraymond/clawstrap/bootstrap"
)

// version is stamped via -ldflags at build time.
var version = "dev"

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		if errors.Is(err, bootstrap.ErrNoCommand) {
			fmt.Fprintln(os.Stderr, "ERROR: no command to run; usage: clawstrap [flags] -- command [args...]")
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}
