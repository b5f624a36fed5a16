//go:build !unix

package bootstrap

import "errors"

func execReplace(argv0 string, argv []string, envv []string) error {
	return errors.New("process replacement is not supported on this platform")
}
