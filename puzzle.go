package cuboid

import (
	"fmt"
	"strings"
)

// FaceTurn is one row of a geometry table: the facelet cycles moved by a
// single turn of one face.
type FaceTurn struct {
	// Name is the face letter, e.g. "U".
	Name string
	// Quarter is true when the face accepts 90 degree turns. Such a face
	// produces X, X2 and X' catalog entries; other faces only produce X2
	// and their cycles must describe the half turn.
	Quarter bool
	// Cycles lists the facelet cycles of one turn.
	Cycles [][]int
}

// Puzzle bundles everything the solver needs to know about a puzzle.
type Puzzle struct {
	Name       string
	Size       int
	Alphabet   []Color
	Goal       State
	Projection Projection
	Faces      []FaceTurn

	// Layout places facelet indices on a printable net, -1 for a blank
	// cell. Optional.
	Layout [][]int
}

// ParseState parses s as a configuration of this puzzle.
func (p Puzzle) ParseState(s string) (State, error) {
	return parseState(s, p.Size, p.Alphabet)
}

// Validate checks the goal and projection against the puzzle size and
// alphabet. Face cycles are checked by NewCatalog.
func (p Puzzle) Validate() error {
	if p.Size <= 0 {
		return fmt.Errorf("%w: size %d", ErrInvalidGeometry, p.Size)
	}
	if _, err := parseState(p.Goal.String(), p.Size, p.Alphabet); err != nil {
		return fmt.Errorf("%w: goal: %v", ErrInvalidGeometry, err)
	}
	return p.Projection.Validate()
}

// Catalog builds the move catalog of the puzzle.
func (p Puzzle) Catalog() (*Catalog, error) {
	return NewCatalog(p.Size, p.Faces)
}

// CheckCounts reports ErrColorCount when s does not use every color as
// often as the goal does. Such a state can never reach the goal.
func (p Puzzle) CheckCounts(s State) error {
	want := p.Goal.Counts()
	got := s.Counts()
	var diffs []string
	for _, c := range p.Alphabet {
		if got[c] != want[c] {
			diffs = append(diffs, fmt.Sprintf("%s=%d (want %d)", c, got[c], want[c]))
		}
	}
	if len(diffs) > 0 {
		return fmt.Errorf("%w: %s", ErrColorCount, strings.Join(diffs, ", "))
	}
	return nil
}
