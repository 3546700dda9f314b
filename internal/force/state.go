package force

// State tracks how far a component's coefficients have been specified.
type State int

const (
	// Unconfigured: built, no coefficients set.
	Unconfigured State = iota
	// PartiallyConfigured: some keys set, at least one key incomplete.
	PartiallyConfigured
	// Configured: every key has a complete coefficient set.
	Configured
	// Destroyed: removed from its context; every call fails.
	Destroyed
)

func (s State) String() string {
	switch s {
	case Unconfigured:
		return "unconfigured"
	case PartiallyConfigured:
		return "partially_configured"
	case Configured:
		return "configured"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}
