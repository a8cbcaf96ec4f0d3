package storage

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/SeamusWaldron/cuboid"
)

// Fingerprint identifies a problem instance: the catalog, the start and the
// goal. Two solver runs on the same instance share a fingerprint whatever
// strategy or options they used.
func Fingerprint(cat *cuboid.Catalog, start, goal cuboid.State) string {
	h := blake3.New()
	for _, part := range []string{strings.Join(cat.Labels(), ","), start.String(), goal.String()} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Record is a solver run ready to be stored.
type Record struct {
	Solution Solution
	Moves    []MoveRecord
	Phases   []PhaseResult
}

// NewRecord converts a solver result. The moves are replayed from the
// start so every MoveRecord carries the state it leads to.
func NewRecord(p cuboid.Puzzle, cat *cuboid.Catalog, sol *cuboid.Solution, notes string) (*Record, error) {
	rec := &Record{
		Solution: Solution{
			Puzzle:      p.Name,
			Strategy:    string(sol.Strategy),
			StartState:  sol.Start.String(),
			GoalState:   sol.Goal.String(),
			Found:       sol.Found,
			Exhausted:   sol.Exhausted,
			Moves:       append([]string{}, sol.Moves...),
			Fingerprint: Fingerprint(cat, sol.Start, sol.Goal),
			ElapsedMs:   sol.Elapsed.Milliseconds(),
			Expanded:    sol.Stats.Expanded(),
			Visited:     sol.Stats.Visited(),
		},
	}
	if notes != "" {
		rec.Solution.Notes = &notes
	}

	tracker := cuboid.NewTracker(p, cat, sol.Start)
	index := 0
	for i, ph := range sol.Phases {
		rec.Phases = append(rec.Phases, PhaseResult{
			OrderIndex:       i,
			Phase:            ph.Phase.String(),
			StartState:       ph.Start.String(),
			GoalState:        ph.Goal.String(),
			Found:            ph.Found,
			Exhausted:        ph.Exhausted,
			MoveCount:        len(ph.Moves),
			ForwardExpanded:  ph.Stats.ForwardExpanded,
			BackwardExpanded: ph.Stats.BackwardExpanded,
			ForwardVisited:   ph.Stats.ForwardVisited,
			BackwardVisited:  ph.Stats.BackwardVisited,
			ElapsedMs:        ph.Elapsed.Milliseconds(),
		})
		if !sol.Found {
			continue
		}
		for _, label := range ph.Moves {
			if err := tracker.Apply(label); err != nil {
				return nil, fmt.Errorf("failed to replay move %d: %w", index, err)
			}
			rec.Moves = append(rec.Moves, MoveRecord{
				MoveIndex:  index,
				Phase:      ph.Phase.String(),
				Notation:   label,
				StateAfter: tracker.State().String(),
			})
			index++
		}
	}

	if sol.Found && !tracker.IsSolved() {
		return nil, fmt.Errorf("solution does not reach the goal: ends at %s", tracker.State())
	}
	return rec, nil
}
