package cuboid

import (
	"fmt"
	"strings"
)

// Color represents a facelet color. The value is the single ASCII symbol
// used in the textual form of a state.
type Color byte

const (
	Red    Color = 'r' // F face when solved
	Blue   Color = 'b' // U face when solved
	Orange Color = 'o' // B face when solved
	Green  Color = 'g' // D face when solved
	White  Color = 'w' // L face when solved
	Yellow Color = 'y' // R face when solved
)

func (c Color) String() string {
	return string(rune(c))
}

// Name returns the full color name.
func (c Color) Name() string {
	switch c {
	case Red:
		return "red"
	case Blue:
		return "blue"
	case Orange:
		return "orange"
	case Green:
		return "green"
	case White:
		return "white"
	case Yellow:
		return "yellow"
	default:
		return "unknown"
	}
}

// State is a puzzle configuration: one color per facelet position.
// The length is fixed by the puzzle geometry.
type State []Color

// Apply rotates the colors along cycle in place. The color at cycle[0]
// moves to cycle[1], cycle[1] to cycle[2], and the last back to cycle[0].
//
// Every index must be in range and distinct; the catalog validates this
// once at construction so Apply does no checking of its own.
func (s State) Apply(cycle []int) {
	n := len(cycle)
	if n < 2 {
		return
	}
	last := s[cycle[n-1]]
	for i := n - 1; i > 0; i-- {
		s[cycle[i]] = s[cycle[i-1]]
	}
	s[cycle[0]] = last
}

// Clone creates a deep copy of the state.
func (s State) Clone() State {
	clone := make(State, len(s))
	copy(clone, s)
	return clone
}

// Equal reports whether both states hold the same colors in the same order.
func (s State) Equal(other State) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Key returns the state as a string, suitable as a map key.
func (s State) Key() string {
	return string(s)
}

// String returns the compact textual form, e.g. "rrrrrrbbb...".
func (s State) String() string {
	return string(s)
}

// Counts returns how many facelets carry each color.
func (s State) Counts() map[Color]int {
	counts := make(map[Color]int)
	for _, c := range s {
		counts[c]++
	}
	return counts
}

// Project returns a new state with every color mapped through p.
// Colors that p does not mention are kept.
func (s State) Project(p Projection) State {
	result := make(State, len(s))
	for i, c := range s {
		if to, ok := p[c]; ok {
			c = to
		}
		result[i] = c
	}
	return result
}

// stateFromKey is the inverse of Key.
func stateFromKey(key string) State {
	return State(key)
}

// Projection merges color classes: each key color is replaced by its value.
type Projection map[Color]Color

// Validate checks that no projection target is itself projected, which keeps
// Project idempotent.
func (p Projection) Validate() error {
	for from, to := range p {
		if _, ok := p[to]; ok && to != from {
			return fmt.Errorf("%w: projection target %s is also a source", ErrInvalidGeometry, to)
		}
	}
	return nil
}

// parseState converts s into a State of exactly size facelets drawn from
// alphabet.
func parseState(s string, size int, alphabet []Color) (State, error) {
	s = strings.TrimSpace(s)
	if len(s) != size {
		return nil, fmt.Errorf("%w: got %d facelets, want %d", ErrInvalidLength, len(s), size)
	}

	allowed := make(map[Color]bool, len(alphabet))
	for _, c := range alphabet {
		allowed[c] = true
	}

	state := make(State, size)
	for i := 0; i < len(s); i++ {
		c := Color(s[i])
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if !allowed[c] {
			return nil, fmt.Errorf("%w: %q at position %d", ErrInvalidColor, s[i], i)
		}
		state[i] = c
	}
	return state, nil
}

// ParseState parses a domino configuration string such as
// "ooorrrgbggbgbgbroorrobggbgbbbgwwywwywywyyy".
func ParseState(s string) (State, error) {
	return Domino().ParseState(s)
}
