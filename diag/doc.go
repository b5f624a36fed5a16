// Package diag provides best-effort startup diagnostics for the bootstrapper.
//
// A Checker inspects one aspect of the environment the wrapped application is
// about to inherit: the executable search path, the credential files the
// bootstrap step was supposed to materialize, the wrapped CLI itself, and the
// freshness of the OAuth token cache. Checks run sequentially, tolerate any
// failure, and report through Results that the caller logs to stderr.
//
// Nothing in this package gates startup. A deployment that fails every check
// still hands off to the wrapped application, which detects and reports
// missing credentials with its own error model.
package diag
