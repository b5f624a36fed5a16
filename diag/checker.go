package diag

import (
	"context"
	"time"
)

// Status represents the outcome of a diagnostic check.
type Status int

const (
	// StatusHealthy indicates the aspect looks ready for handoff.
	StatusHealthy Status = iota
	// StatusDegraded indicates an expected gap (e.g. an optional credential
	// that was never supplied).
	StatusDegraded
	// StatusUnhealthy indicates the wrapped application will very likely
	// fail to start or run.
	StatusUnhealthy
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// Result contains the outcome of a diagnostic check.
type Result struct {
	// Name is the checker that produced this result.
	Name string

	// Status is the diagnostic status.
	Status Status

	// Message provides additional context about the status.
	Message string

	// Details contains arbitrary metadata about the check.
	Details map[string]any

	// Duration is how long the check took.
	Duration time.Duration

	// Error is the underlying error, if any.
	Error error
}

// Healthy creates a healthy result.
func Healthy(message string) Result {
	return Result{Status: StatusHealthy, Message: message}
}

// Degraded creates a degraded result.
func Degraded(message string) Result {
	return Result{Status: StatusDegraded, Message: message}
}

// Unhealthy creates an unhealthy result.
func Unhealthy(message string, err error) Result {
	return Result{Status: StatusUnhealthy, Message: message, Error: err}
}

// WithDetails adds details to a result.
func (r Result) WithDetails(details map[string]any) Result {
	r.Details = details
	return r
}

// Checker is the interface for diagnostic checks.
type Checker interface {
	// Name returns the name of this checker.
	Name() string

	// Check performs the check and returns the result.
	Check(ctx context.Context) Result
}

// CheckerFunc is an adapter to allow ordinary functions to be used as Checkers.
type CheckerFunc struct {
	name string
	fn   func(context.Context) Result
}

// NewCheckerFunc creates a new CheckerFunc.
func NewCheckerFunc(name string, fn func(context.Context) Result) *CheckerFunc {
	return &CheckerFunc{name: name, fn: fn}
}

// Name returns the name of this checker.
func (f *CheckerFunc) Name() string { return f.name }

// Check performs the check.
func (f *CheckerFunc) Check(ctx context.Context) Result { return f.fn(ctx) }

// Runner runs checkers sequentially in registration order.
//
// The bootstrap path is strictly single-threaded, so unlike a service health
// aggregator there is no parallel mode; each check gets its own timeout so a
// hanging probe cannot consume the budget of the checks after it.
type Runner struct {
	timeout  time.Duration
	order    []string
	checkers map[string]Checker
}

// NewRunner creates a Runner. The timeout applies per check; zero or negative
// means the 10 second default.
func NewRunner(timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Runner{
		timeout:  timeout,
		checkers: make(map[string]Checker),
	}
}

// Register adds a checker. Re-registering a name replaces the checker but
// keeps its original position.
func (r *Runner) Register(c Checker) {
	if c == nil {
		return
	}
	if _, exists := r.checkers[c.Name()]; !exists {
		r.order = append(r.order, c.Name())
	}
	r.checkers[c.Name()] = c
}

// RunAll runs every registered checker in order and returns their results.
func (r *Runner) RunAll(ctx context.Context) []Result {
	results := make([]Result, 0, len(r.order))
	for _, name := range r.order {
		results = append(results, r.runCheck(ctx, r.checkers[name]))
	}
	return results
}

// Overall computes the combined status from a set of results: unhealthy if
// any check is unhealthy, degraded if any is degraded, healthy otherwise.
func Overall(results []Result) Status {
	overall := StatusHealthy
	for _, res := range results {
		switch res.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			overall = StatusDegraded
		}
	}
	return overall
}

func (r *Runner) runCheck(ctx context.Context, c Checker) Result {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	res := c.Check(ctx)
	res.Name = c.Name()
	res.Duration = time.Since(start)
	return res
}
