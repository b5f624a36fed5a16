// Package observe provides the diagnostic surface of the bootstrapper.
//
// It supports:
//   - Line-oriented leveled logging on stderr (see Logger)
//   - Opt-in OpenTelemetry span tracing of the bootstrap run (see Tracing)
//
// Log lines use the form "LEVEL: message key=value ..." so that hosting
// platforms can grep them out of aggregated container logs. The logger never
// writes to stdout; stdout belongs to the wrapped application.
package observe
