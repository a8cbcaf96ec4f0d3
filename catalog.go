package cuboid

import (
	"fmt"
)

// Catalog is the named set of generator moves of a puzzle. It is built
// once and never modified; Subset and HalfTurns return new catalogs.
type Catalog struct {
	size   int
	labels []string
	moves  map[string]Move
}

// NewCatalog builds the catalog for a geometry table of the given size.
//
// Faces without quarter turns yield one self-inverse entry "X2". Quarter
// turn faces yield "X", "X2" and "X'", the primitive turn composed once,
// twice and three times. Entries keep table order.
func NewCatalog(size int, faces []FaceTurn) (*Catalog, error) {
	c := &Catalog{size: size, moves: make(map[string]Move)}
	for _, face := range faces {
		if face.Name == "" {
			return nil, fmt.Errorf("%w: face without a name", ErrInvalidGeometry)
		}
		cycles := make([]Move, 0, len(face.Cycles))
		for _, cycle := range face.Cycles {
			if err := validateCycle(cycle, size); err != nil {
				return nil, fmt.Errorf("face %s: %w", face.Name, err)
			}
			cycles = append(cycles, Cycle(cycle...))
		}
		turn := Sequence(cycles...)

		if !face.Quarter {
			if err := c.add(face.Name+HalfTurnMarker, turn); err != nil {
				return nil, err
			}
			continue
		}
		turn = turn.WithLabel(face.Name)
		for i, label := range []string{face.Name, face.Name + HalfTurnMarker, face.Name + InverseMarker} {
			if err := c.add(label, Repeat(turn, i+1)); err != nil {
				return nil, err
			}
		}
	}
	return c, nil
}

// MustCatalog is like NewCatalog but panics on an invalid table. Use it for
// compiled-in tables, where a bad cycle is a programming error.
func MustCatalog(size int, faces []FaceTurn) *Catalog {
	c, err := NewCatalog(size, faces)
	if err != nil {
		panic(err)
	}
	return c
}

func validateCycle(cycle []int, size int) error {
	if len(cycle) < 2 {
		return fmt.Errorf("%w: cycle %v shorter than 2", ErrInvalidGeometry, cycle)
	}
	seen := make(map[int]bool, len(cycle))
	for _, p := range cycle {
		if p < 0 || p >= size {
			return fmt.Errorf("%w: index %d out of range [0,%d)", ErrInvalidGeometry, p, size)
		}
		if seen[p] {
			return fmt.Errorf("%w: index %d repeated in cycle %v", ErrInvalidGeometry, p, cycle)
		}
		seen[p] = true
	}
	return nil
}

func (c *Catalog) add(label string, m Move) error {
	if _, ok := c.moves[label]; ok {
		return fmt.Errorf("%w: duplicate move %s", ErrInvalidGeometry, label)
	}
	c.labels = append(c.labels, label)
	c.moves[label] = m.WithLabel(label)
	return nil
}

// Size returns the number of facelets the catalog operates on.
func (c *Catalog) Size() int {
	return c.size
}

// Len returns the number of moves.
func (c *Catalog) Len() int {
	return len(c.labels)
}

// Labels returns the move labels in catalog order.
func (c *Catalog) Labels() []string {
	labels := make([]string, len(c.labels))
	copy(labels, c.labels)
	return labels
}

// Contains reports whether the catalog has a move with this label.
func (c *Catalog) Contains(label string) bool {
	_, ok := c.moves[label]
	return ok
}

// Move returns the move with this label.
func (c *Catalog) Move(label string) (Move, bool) {
	m, ok := c.moves[label]
	return m, ok
}

// Subset returns a catalog holding only the given labels, in catalog order.
func (c *Catalog) Subset(labels ...string) (*Catalog, error) {
	keep := make(map[string]bool, len(labels))
	for _, l := range labels {
		if !c.Contains(l) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownMove, l)
		}
		keep[l] = true
	}
	sub := &Catalog{size: c.size, moves: make(map[string]Move, len(keep))}
	for _, l := range c.labels {
		if keep[l] {
			sub.labels = append(sub.labels, l)
			sub.moves[l] = c.moves[l]
		}
	}
	return sub, nil
}

// HalfTurns returns the self-inverse subset of the catalog: every move
// whose label ends in "2".
func (c *Catalog) HalfTurns() *Catalog {
	var labels []string
	for _, l := range c.labels {
		if IsHalfTurn(l) {
			labels = append(labels, l)
		}
	}
	sub, _ := c.Subset(labels...)
	return sub
}

// Inverse returns the label of the catalog move undoing label.
func (c *Catalog) Inverse(label string) (string, error) {
	if !c.Contains(label) {
		return "", fmt.Errorf("%w: %q", ErrUnknownMove, label)
	}
	inv := InvertLabel(label)
	if !c.Contains(inv) {
		return "", fmt.Errorf("%w: inverse %q of %q", ErrUnknownMove, inv, label)
	}
	return inv, nil
}

// Apply applies the named moves to s in place, in order.
func (c *Catalog) Apply(s State, labels []string) error {
	if err := ValidateLabels(c, labels); err != nil {
		return err
	}
	for _, l := range labels {
		c.moves[l].Apply(s)
	}
	return nil
}

// Replay returns a copy of start with the named moves applied.
func (c *Catalog) Replay(start State, labels []string) (State, error) {
	s := start.Clone()
	if err := c.Apply(s, labels); err != nil {
		return nil, err
	}
	return s, nil
}
