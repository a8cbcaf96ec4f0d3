package cuboid

// Tracker replays catalog moves on a state and reports stage changes.
type Tracker struct {
	puzzle        Puzzle
	catalog       *Catalog
	start         State
	state         State
	history       []string
	highestStage  Stage // Monotonic - never goes backwards
	stageCallback func(stage Stage)
}

// NewTracker creates a tracker starting from start.
func NewTracker(p Puzzle, cat *Catalog, start State) *Tracker {
	t := &Tracker{
		puzzle:  p,
		catalog: cat,
		start:   start.Clone(),
	}
	t.Reset()
	return t
}

// SetStageCallback sets a callback that fires when a new highest stage is
// reached.
func (t *Tracker) SetStageCallback(cb func(stage Stage)) {
	t.stageCallback = cb
}

// Reset returns the tracker to its start state and clears the history.
func (t *Tracker) Reset() {
	t.state = t.start.Clone()
	t.history = nil
	t.highestStage = t.puzzle.DetectStage(t.state)
}

// Apply applies one catalog move and checks for stage transitions.
func (t *Tracker) Apply(label string) error {
	if err := t.catalog.Apply(t.state, []string{label}); err != nil {
		return err
	}
	t.history = append(t.history, label)
	t.checkStageTransition()
	return nil
}

// ApplyAll applies moves in order, stopping at the first unknown label.
func (t *Tracker) ApplyAll(labels []string) error {
	for _, l := range labels {
		if err := t.Apply(l); err != nil {
			return err
		}
	}
	return nil
}

// Undo reverts the last applied move. It returns false when the history
// is empty.
func (t *Tracker) Undo() bool {
	if len(t.history) == 0 {
		return false
	}
	last := t.history[len(t.history)-1]
	inv, ok := t.catalog.Move(last)
	if !ok {
		return false
	}
	inv.Inverse().Apply(t.state)
	t.history = t.history[:len(t.history)-1]
	return true
}

func (t *Tracker) checkStageTransition() {
	current := t.puzzle.DetectStage(t.state)
	if current > t.highestStage {
		t.highestStage = current
		if t.stageCallback != nil {
			t.stageCallback(current)
		}
	}
}

// Stage returns the stage of the current state.
func (t *Tracker) Stage() Stage {
	return t.puzzle.DetectStage(t.state)
}

// HighestStage returns the highest stage reached since the last reset.
func (t *Tracker) HighestStage() Stage {
	return t.highestStage
}

// IsSolved returns true if the current state equals the goal.
func (t *Tracker) IsSolved() bool {
	return t.puzzle.IsSolved(t.state)
}

// State returns a copy of the current state.
func (t *Tracker) State() State {
	return t.state.Clone()
}

// History returns the moves applied since the last reset.
func (t *Tracker) History() []string {
	history := make([]string, len(t.history))
	copy(history, t.history)
	return history
}

// Puzzle returns the tracked puzzle.
func (t *Tracker) Puzzle() Puzzle {
	return t.puzzle
}
