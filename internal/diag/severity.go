package diag

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevHint is for suggestions that do not affect acceptance.
	SevHint Severity = iota
	// SevWarning is for warning diagnostics.
	SevWarning
	SevError
)

func (s Severity) String() string {
	switch s {
	case SevHint:
		return "HINT"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}
