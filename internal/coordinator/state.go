package coordinator

import "fmt"

// State is a coordinator's position in its single-run lifecycle:
// Idle → Partitioned → Running → Joined → Reported, or Aborted on failure.
type State int32

const (
	// Idle indicates the coordinator has been created but not run.
	Idle State = iota
	// Partitioned indicates the budget has been split across workers.
	Partitioned
	// Running indicates workers have been launched.
	Running
	// Joined indicates every worker has terminated.
	Joined
	// Reported indicates the Result has been produced.
	Reported
	// Aborted indicates the run failed and produced no Result.
	Aborted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Partitioned:
		return "partitioned"
	case Running:
		return "running"
	case Joined:
		return "joined"
	case Reported:
		return "reported"
	case Aborted:
		return "aborted"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == Reported || s == Aborted
}
