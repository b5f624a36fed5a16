package secret

import (
	"context"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/jonwraymond/clawstrap/observe"
)

// Materializer decodes entries into credential files, best-effort.
type Materializer struct {
	log      observe.Logger
	decoders []Decoder
}

// NewMaterializer creates a Materializer. With no decoders the default
// strategy order from Strategies is used.
func NewMaterializer(logger observe.Logger, decoders ...Decoder) *Materializer {
	if logger == nil {
		logger = observe.NewNoopLogger()
	}
	if len(decoders) == 0 {
		decoders = Strategies()
	}
	return &Materializer{log: logger, decoders: decoders}
}

// Materialize decodes one entry's environment variable into its target file.
//
// It never returns an error: every failure is logged at warning level and
// reported through the Result so the remaining entries, and startup itself,
// proceed regardless.
func (m *Materializer) Materialize(ctx context.Context, e Entry) Result {
	res := Result{Entry: e}

	raw, ok := os.LookupEnv(e.EnvVar)
	cleaned := CleanBase64(raw)
	if !ok || cleaned == "" {
		m.log.Warn(ctx, "credential variable not set, skipping",
			observe.Field{Key: "env", Value: e.EnvVar},
			observe.Field{Key: "target", Value: e.Target},
		)
		res.Outcome = OutcomeSkipped
		return res
	}

	data, strategy, ok := m.decode(cleaned)
	if !ok {
		m.log.Warn(ctx, "could not decode credential variable",
			observe.Field{Key: "env", Value: e.EnvVar},
			observe.Field{Key: "target", Value: e.Target},
		)
		res.Outcome = OutcomeFailed
		return res
	}

	if err := m.write(e.Target, data); err != nil {
		m.log.Warn(ctx, "could not write credential file",
			observe.Field{Key: "env", Value: e.EnvVar},
			observe.Field{Key: "target", Value: e.Target},
			observe.Field{Key: "error", Value: err.Error()},
		)
		res.Outcome = OutcomeFailed
		return res
	}

	m.log.Info(ctx, "wrote credential file",
		observe.Field{Key: "env", Value: e.EnvVar},
		observe.Field{Key: "target", Value: e.Target},
		observe.Field{Key: "strategy", Value: strategy},
		observe.Field{Key: "bytes", Value: len(data)},
	)
	res.Outcome = OutcomeWritten
	res.Strategy = strategy
	res.Bytes = len(data)
	return res
}

// MaterializeAll processes entries in order. Entries are independent; one
// failure never affects the others.
func (m *Materializer) MaterializeAll(ctx context.Context, entries []Entry) []Result {
	results := make([]Result, 0, len(entries))
	for _, e := range entries {
		results = append(results, m.Materialize(ctx, e))
	}
	return results
}

func (m *Materializer) decode(cleaned string) (data []byte, strategy string, ok bool) {
	for _, d := range m.decoders {
		out, err := d.Decode(cleaned)
		if err == nil {
			return out, d.Name(), true
		}
	}
	return nil, "", false
}

// write lands data at target via a unique temp file in the same directory and
// an atomic replace, so the target is either its previous content or the full
// new content, never a partial write.
func (m *Materializer) write(target string, data []byte) error {
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(target)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Chmod(0o600); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := atomic.ReplaceFile(tmpName, target); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
