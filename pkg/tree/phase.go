// Package tree defines the pass-level contract between panels and the
// child-collection engine: tree-pass phases, the per-phase parallelism
// configuration, widget identity, the update scheduler, and the Context
// value threaded through every tree operation.
package tree

import "fmt"

// Phase identifies one of the tree-wide passes driven through a child list.
type Phase int

const (
	// PhaseInit attaches children to the tree.
	PhaseInit Phase = iota
	// PhaseDeinit detaches children from the tree.
	PhaseDeinit
	// PhaseInfo rebuilds the info tree (identity and bounds) for children.
	PhaseInfo
	// PhaseEvent delivers an input event to children.
	PhaseEvent
	// PhaseUpdate runs child state updates and applies queued edits.
	PhaseUpdate
	// PhaseRender records the frame for children.
	PhaseRender
	// PhaseRenderUpdate patches recorded transforms without re-recording.
	PhaseRenderUpdate

	numPhases
)

// String returns a human-readable representation of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseDeinit:
		return "deinit"
	case PhaseInfo:
		return "info"
	case PhaseEvent:
		return "event"
	case PhaseUpdate:
		return "update"
	case PhaseRender:
		return "render"
	case PhaseRenderUpdate:
		return "render_update"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Phases lists every phase in pass order. Useful for configuration and tests.
func Phases() []Phase {
	out := make([]Phase, numPhases)
	for i := range out {
		out[i] = Phase(i)
	}
	return out
}

// PhaseFromName resolves a configuration name to a phase.
// Returns false for unknown names.
func PhaseFromName(name string) (Phase, bool) {
	for i := Phase(0); i < numPhases; i++ {
		if i.String() == name {
			return i, true
		}
	}
	return 0, false
}
