package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jonwraymond/clawstrap/config"
	"github.com/jonwraymond/clawstrap/diag"
	"github.com/jonwraymond/clawstrap/observe"
	"github.com/jonwraymond/clawstrap/secret"
)

// ExecFunc replaces the current process image. It only returns on failure.
type ExecFunc func(argv0 string, argv []string, envv []string) error

// App is one bootstrap run: decode the secret table, optionally diagnose,
// then exec-replace into the wrapped command.
type App struct {
	cfg      *config.Config
	log      observe.Logger
	mat      *secret.Materializer
	version  string
	execFn   ExecFunc
	lookPath func(file string) (string, error)
}

// Option customizes an App.
type Option func(*App)

// WithExecFunc overrides the process-replacement primitive (used in tests).
func WithExecFunc(fn ExecFunc) Option {
	return func(a *App) { a.execFn = fn }
}

// WithLookPath overrides executable resolution (used in tests).
func WithLookPath(fn func(string) (string, error)) Option {
	return func(a *App) { a.lookPath = fn }
}

// WithVersion sets the version reported in trace resources.
func WithVersion(v string) Option {
	return func(a *App) { a.version = v }
}

// New creates an App.
func New(cfg *config.Config, logger observe.Logger, opts ...Option) *App {
	if logger == nil {
		logger = observe.NewNoopLogger()
	}
	a := &App{
		cfg:      cfg,
		log:      logger,
		mat:      secret.NewMaterializer(logger),
		version:  "dev",
		execFn:   execReplace,
		lookPath: exec.LookPath,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run executes the full bootstrap sequence and hands off to argv.
//
// On success it never returns: the process image is replaced by argv. The
// returned error covers only a missing command line or a failed exec; no
// per-secret outcome can surface as an error here.
func (a *App) Run(ctx context.Context, argv []string) error {
	if len(argv) == 0 || argv[0] == "" {
		return ErrNoCommand
	}

	tracing, err := observe.StartTracing(ctx, a.cfg.Debug, os.Stderr, a.version)
	if err != nil {
		// Tracing is a diagnostic extra, never a reason to block startup.
		a.log.Warn(ctx, "could not start trace exporter",
			observe.Field{Key: "error", Value: err.Error()},
		)
		tracing, _ = observe.StartTracing(ctx, false, nil, a.version)
	}

	a.materializeAll(ctx, tracing)

	if a.cfg.Debug {
		diagCtx, span := tracing.StartSpan(ctx, "bootstrap.diag")
		results := a.Diagnose(diagCtx, argv[0])
		diag.Report(diagCtx, a.log, results)
		span.SetAttributes(attribute.String("diag.overall", diag.Overall(results).String()))
		tracing.EndSpan(span, nil)
	}

	if err := tracing.Shutdown(ctx); err != nil {
		a.log.Warn(ctx, "trace flush failed",
			observe.Field{Key: "error", Value: err.Error()},
		)
	}

	return a.handoff(ctx, argv)
}

// Diagnose runs the startup checks against the current configuration. The
// command may be empty when no handoff target is known (doctor mode).
func (a *App) Diagnose(ctx context.Context, command string) []diag.Result {
	runner := diag.NewRunner(5 * time.Second)
	runner.Register(&diag.PathChecker{Command: command})
	runner.Register(&diag.ConfigDirChecker{Dir: a.cfg.ConfigDir})
	runner.Register(&diag.FileChecker{Entries: a.cfg.Entries})
	if tokenTarget, ok := a.tokenTarget(); ok {
		runner.Register(&diag.TokenExpiryChecker{Path: tokenTarget})
	}
	if command != "" {
		runner.Register(&diag.ProbeChecker{Command: command})
	}
	return runner.RunAll(ctx)
}

func (a *App) materializeAll(ctx context.Context, tracing *observe.Tracing) {
	for _, e := range a.cfg.Entries {
		entryCtx, span := tracing.StartSpan(ctx, "bootstrap.secret."+e.ID,
			attribute.String("secret.id", e.ID),
			attribute.String("secret.env", e.EnvVar),
			attribute.String("secret.target", e.Target),
		)
		res := a.mat.Materialize(entryCtx, e)
		span.SetAttributes(attribute.String("secret.outcome", res.Outcome.String()))
		if res.Strategy != "" {
			span.SetAttributes(attribute.String("secret.strategy", res.Strategy))
		}
		tracing.EndSpan(span, nil)
	}
}

// handoff resolves argv[0] on PATH and replaces the process image, forwarding
// the argument vector and environment untouched. Exit code and signal
// semantics from here on belong entirely to the wrapped application.
func (a *App) handoff(ctx context.Context, argv []string) error {
	path, err := a.lookPath(argv[0])
	if err != nil {
		return fmt.Errorf("bootstrap: resolve %s: %w", argv[0], err)
	}

	a.log.Debug(ctx, "handing off",
		observe.Field{Key: "exe", Value: path},
		observe.Field{Key: "argv", Value: strings.Join(argv, " ")},
	)

	if err := a.execFn(path, argv, os.Environ()); err != nil {
		return fmt.Errorf("bootstrap: exec %s: %w", path, err)
	}
	return nil
}

// tokenTarget finds the token-cache entry, if the table has one.
func (a *App) tokenTarget() (string, bool) {
	for _, e := range a.cfg.Entries {
		if strings.Contains(e.ID, "token") {
			return e.Target, true
		}
	}
	return "", false
}
