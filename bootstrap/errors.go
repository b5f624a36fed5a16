package bootstrap

import "errors"

var (
	// ErrNoCommand indicates no wrapped command line was supplied.
	ErrNoCommand = errors.New("bootstrap: no command to hand off to")
)
