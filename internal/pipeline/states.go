package pipeline

import (
	"fmt"

	"briefdesk/internal/model"
)

// allowedTransition reports whether a run may move from one state to the
// next. Runs traverse the states strictly forward; Failed is reachable
// from any non-idle, non-terminal state; no state is re-entered.
func allowedTransition(from, to model.RunState) bool {
	if to == model.StateFailed {
		return from != model.StateIdle && !from.IsTerminal()
	}
	switch from {
	case model.StateIdle:
		return to == model.StateIngesting
	case model.StateIngesting:
		return to == model.StateNormalizing
	case model.StateNormalizing:
		return to == model.StateValidating
	case model.StateValidating:
		return to == model.StateSynthesizing
	case model.StateSynthesizing:
		return to == model.StateWriting
	case model.StateWriting:
		return to == model.StateDone
	default:
		return false
	}
}

// transition performs a validated state change on the run
func transition(run *model.RunReport, to model.RunState) error {
	if !allowedTransition(run.State, to) {
		return fmt.Errorf("disallowed run transition: %s -> %s", run.State, to)
	}
	run.State = to
	return nil
}
