package contract

// State represents the lifecycle phase of a production strategy.
type State int

// Lifecycle phases in the order they are normally entered.
const (
	StateUnprepared State = iota // The target has not been resolved yet.
	StatePrepared                // The target is resolved, nothing has been invoked.
	StateReady                   // The setup invocation succeeded and its value is cached.
	StateFailed                  // The setup invocation failed; terminal.
)

func (s State) String() string {
	switch s {
	case StateUnprepared:
		return "unprepared"
	case StatePrepared:
		return "prepared"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// CanTransition reports whether moving from s to next is a legal lifecycle
// step. StateReady and StateFailed are terminal.
func (s State) CanTransition(next State) bool {
	switch s {
	case StateUnprepared:
		return next == StatePrepared
	case StatePrepared:
		return next == StateReady || next == StateFailed
	default:
		return false
	}
}
