// Package bootstrap wires credential materialization, diagnostics, and the
// final process handoff into one startup sequence.
//
// Usage:
//
//	app := bootstrap.New(cfg, logger)
//	err := app.Run(ctx, []string{"openclaw", "gateway"})
//	// err is non-nil only if the exec itself failed: Run does not return
//	// on success because the process image has been replaced.
//
// The sequence is best-effort by contract: any number of secrets may fail to
// materialize and the wrapped application still launches. The only fatal
// error is a handoff that cannot execute.
package bootstrap
