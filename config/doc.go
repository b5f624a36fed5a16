// Package config resolves the bootstrapper's deployment-variant settings.
//
// Precedence: flags > environment variables > config file > defaults.
// Environment prefix: CLAWSTRAP_.
//
// The secret table defaults to the two OAuth files the wrapped calendar
// tooling reads; deployments with different variable names or mount points
// override it with a YAML manifest.
package config
