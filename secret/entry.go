package secret

// Entry maps one environment variable to the credential file it populates.
//
// The original deployment scripts looked variables up by dynamically built
// name; here the mapping is an explicit table iterated directly.
type Entry struct {
	// ID is a short stable identifier used in logs and span names.
	ID string `yaml:"id"`

	// EnvVar is the environment variable expected to hold the base64 value.
	EnvVar string `yaml:"env"`

	// Target is the file the decoded bytes are written to.
	Target string `yaml:"target"`
}

// Outcome classifies what happened to a single entry.
type Outcome int

const (
	// OutcomeSkipped means the variable was unset or empty after cleaning.
	OutcomeSkipped Outcome = iota
	// OutcomeWritten means the target file now holds the decoded bytes.
	OutcomeWritten
	// OutcomeFailed means decoding or writing failed; the target is untouched.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSkipped:
		return "skipped"
	case OutcomeWritten:
		return "written"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result reports the outcome of materializing one entry.
type Result struct {
	Entry   Entry
	Outcome Outcome

	// Strategy names the decoder that succeeded when Outcome is OutcomeWritten.
	Strategy string

	// Bytes is the decoded length when Outcome is OutcomeWritten.
	Bytes int
}
