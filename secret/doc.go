// Package secret materializes base64-encoded environment variables into
// credential files on local disk.
//
// It supports:
//   - Cleaning values of whitespace injected by secret stores (see CleanBase64)
//   - An ordered list of candidate decode strategies (see Decoder, Strategies)
//   - Atomic, best-effort file materialization (see Materializer)
//
// Every failure mode degrades to a logged warning and a per-entry Outcome;
// nothing here ever aborts startup. Deployments that cannot supply every
// secret are normal, and the wrapped application reports missing credentials
// with its own error model.
package secret
