//go:build unix

package bootstrap

import "golang.org/x/sys/unix"

// execReplace swaps the current process image for argv0, preserving pid,
// stdio, and signal disposition. A spawn-and-wait would break exit-code and
// signal propagation to the container supervisor, so exec is the contract.
func execReplace(argv0 string, argv []string, envv []string) error {
	return unix.Exec(argv0, argv, envv)
}
