package cuboid

// Phase identifies one search run inside a solve.
type Phase int

const (
	// PhaseProjected solves the projected puzzle, where merged color
	// classes are indistinguishable, with the full catalog.
	PhaseProjected Phase = iota

	// PhaseHalfTurn finishes from the end of the projected phase using
	// only half turns.
	PhaseHalfTurn

	// PhaseDirect solves the real puzzle in one search with the full
	// catalog.
	PhaseDirect
)

// String returns a short identifier for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseProjected:
		return "projected"
	case PhaseHalfTurn:
		return "half_turn"
	case PhaseDirect:
		return "direct"
	default:
		return "unknown"
	}
}

// DisplayName returns a human-readable name for the phase.
func (p Phase) DisplayName() string {
	switch p {
	case PhaseProjected:
		return "Projected Colors"
	case PhaseHalfTurn:
		return "Half Turn Finish"
	case PhaseDirect:
		return "Direct Search"
	default:
		return "Unknown"
	}
}

// ParsePhase converts a phase identifier back to a Phase.
func ParsePhase(s string) (Phase, bool) {
	for _, p := range []Phase{PhaseProjected, PhaseHalfTurn, PhaseDirect} {
		if p.String() == s {
			return p, true
		}
	}
	return 0, false
}

// Stage is how far a state is from the goal. Stages are ordered, so they
// can be compared with < and >.
type Stage int

const (
	// StageScrambled means the projected pattern does not match the goal.
	StageScrambled Stage = iota

	// StageProjected means the state matches the goal once projected: only
	// merged color classes are still swapped.
	StageProjected

	// StageSolved means the state equals the goal.
	StageSolved
)

// String returns a short identifier for the stage.
func (s Stage) String() string {
	switch s {
	case StageScrambled:
		return "scrambled"
	case StageProjected:
		return "projected"
	case StageSolved:
		return "solved"
	default:
		return "unknown"
	}
}

// DisplayName returns a human-readable name for the stage.
func (s Stage) DisplayName() string {
	switch s {
	case StageScrambled:
		return "Scrambled"
	case StageProjected:
		return "Projected Pattern Solved"
	case StageSolved:
		return "Solved"
	default:
		return "Unknown"
	}
}

// IsComplete returns true if the stage is StageSolved.
func (s Stage) IsComplete() bool {
	return s == StageSolved
}
