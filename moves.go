package cuboid

import (
	"fmt"
	"strings"
)

// Notation suffixes.
const (
	InverseMarker  = "'" // Counter-clockwise quarter turn
	HalfTurnMarker = "2" // 180 degrees
)

// IsHalfTurn reports whether label names a 180 degree turn, e.g. "R2".
func IsHalfTurn(label string) bool {
	return len(label) > 1 && strings.HasSuffix(label, HalfTurnMarker)
}

// InvertLabel returns the label of the inverse move.
// R2 stays R2, U' becomes U, U becomes U'.
func InvertLabel(label string) string {
	switch {
	case IsHalfTurn(label):
		return label
	case len(label) > 1 && strings.HasSuffix(label, InverseMarker):
		return strings.TrimSuffix(label, InverseMarker)
	default:
		return label + InverseMarker
	}
}

// InvertPath returns the path that undoes labels: the order is reversed and
// every label inverted.
func InvertPath(labels []string) []string {
	result := make([]string, len(labels))
	for i, l := range labels {
		result[len(labels)-1-i] = InvertLabel(l)
	}
	return result
}

// Assemble joins the two halves of a bidirectional search. forward leads
// from the start to the meeting state and backward from the goal to the
// meeting state; the result leads from the start to the goal.
func Assemble(forward, backward []string) []string {
	result := make([]string, 0, len(forward)+len(backward))
	result = append(result, forward...)
	return append(result, InvertPath(backward)...)
}

// ParseLabels splits a space-separated move sequence such as "U' L2 U".
// Backticks are accepted as inverse markers.
func ParseLabels(s string) []string {
	parts := strings.Fields(s)
	labels := make([]string, 0, len(parts))
	for _, part := range parts {
		labels = append(labels, strings.ReplaceAll(part, "`", InverseMarker))
	}
	return labels
}

// FormatLabels formats labels as a space-separated notation string.
func FormatLabels(labels []string) string {
	return strings.Join(labels, " ")
}

// ValidateLabels checks that every label is present in the catalog.
func ValidateLabels(cat *Catalog, labels []string) error {
	for i, l := range labels {
		if !cat.Contains(l) {
			return fmt.Errorf("%w: %q at index %d", ErrUnknownMove, l, i)
		}
	}
	return nil
}

// splitLabel returns the face name of a label and its quarter turn count:
// 1 for X, 2 for X2, 3 for X'.
func splitLabel(label string) (string, int) {
	switch {
	case IsHalfTurn(label):
		return strings.TrimSuffix(label, HalfTurnMarker), 2
	case len(label) > 1 && strings.HasSuffix(label, InverseMarker):
		return strings.TrimSuffix(label, InverseMarker), 3
	default:
		return label, 1
	}
}

// joinLabel is the inverse of splitLabel. turns must be 1, 2 or 3.
func joinLabel(face string, turns int) string {
	switch turns {
	case 2:
		return face + HalfTurnMarker
	case 3:
		return face + InverseMarker
	default:
		return face
	}
}

// Simplify merges adjacent turns of the same face, e.g. "U U2" becomes
// "U'" and "L2 L2" disappears. A merge is skipped when the combined turn
// is not in the catalog. The result has the same effect as labels.
func Simplify(cat *Catalog, labels []string) []string {
	type turn struct {
		face  string
		turns int
	}
	stack := make([]turn, 0, len(labels))
	for _, l := range labels {
		face, n := splitLabel(l)
		if len(stack) > 0 && stack[len(stack)-1].face == face {
			top := stack[len(stack)-1]
			merged := (top.turns + n) % 4
			switch {
			case merged == 0:
				stack = stack[:len(stack)-1]
				continue
			case cat.Contains(joinLabel(face, merged)):
				stack[len(stack)-1].turns = merged
				continue
			}
		}
		stack = append(stack, turn{face, n})
	}

	result := make([]string, len(stack))
	for i, t := range stack {
		result[i] = joinLabel(t.face, t.turns)
	}
	return result
}
