package sim

// State is the engine's run state.
type State int

const (
	// StateIdle accepts roster changes and a new Run.
	StateIdle State = iota
	// StateRunning is set for the duration of Run.
	StateRunning
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}
