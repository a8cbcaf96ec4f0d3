package cuboid

// Stage detection against a puzzle goal.

// IsSolved returns true if s equals the goal.
func (p Puzzle) IsSolved(s State) bool {
	return s.Equal(p.Goal)
}

// IsProjectedSolved returns true if s matches the goal after projection.
// A solved state is also projected-solved.
func (p Puzzle) IsProjectedSolved(s State) bool {
	return s.Project(p.Projection).Equal(p.Goal.Project(p.Projection))
}

// DetectStage returns the highest stage s has reached.
func (p Puzzle) DetectStage(s State) Stage {
	switch {
	case p.IsSolved(s):
		return StageSolved
	case p.IsProjectedSolved(s):
		return StageProjected
	default:
		return StageScrambled
	}
}

// Mismatches returns the facelet positions where s differs from the goal.
func (p Puzzle) Mismatches(s State) []int {
	var positions []int
	for i := range s {
		if i >= len(p.Goal) || s[i] != p.Goal[i] {
			positions = append(positions, i)
		}
	}
	return positions
}
