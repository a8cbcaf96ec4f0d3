package cuboid

// MoveKind identifies the variant held by a Move.
type MoveKind uint8

const (
	KindIdentity  MoveKind = iota // No-op
	KindCycle                     // Single index cycle
	KindComposite                 // Left then right
)

func (k MoveKind) String() string {
	switch k {
	case KindIdentity:
		return "identity"
	case KindCycle:
		return "cycle"
	case KindComposite:
		return "composite"
	default:
		return "unknown"
	}
}

// Move is an action over a State.
//
// A Move is an immutable tree: composites point at their children and
// children may be shared between several parents. Nothing mutates a node
// after construction, so sharing is safe and composing never copies.
//
// The zero Move is the identity.
type Move struct {
	kind  MoveKind
	label string
	cycle []int
	left  *Move
	right *Move
}

// Identity returns the no-op move.
func Identity() Move {
	return Move{kind: KindIdentity}
}

// Cycle returns a move that rotates the facelets at positions one step
// along the cycle. See State.Apply.
func Cycle(positions ...int) Move {
	cycle := make([]int, len(positions))
	copy(cycle, positions)
	return Move{kind: KindCycle, cycle: cycle}
}

// Sequence composes moves left to right. Sequence() is the identity and
// Sequence(m) is m itself.
//
// Example:
//
//	u := cuboid.Sequence(cuboid.Cycle(6, 8, 14, 12), cuboid.Cycle(7, 11, 13, 9))
func Sequence(moves ...Move) Move {
	if len(moves) == 0 {
		return Identity()
	}
	result := moves[0]
	for _, m := range moves[1:] {
		result = result.Then(m)
	}
	return result
}

// Repeat composes m with itself n times. n <= 0 gives the identity.
func Repeat(m Move, n int) Move {
	if n <= 0 {
		return Identity()
	}
	moves := make([]Move, n)
	for i := range moves {
		moves[i] = m
	}
	return Sequence(moves...)
}

// Kind returns the variant of the move.
func (m Move) Kind() MoveKind {
	return m.kind
}

// Label returns the generator name of the move, or "" if it has none.
func (m Move) Label() string {
	return m.label
}

// WithLabel returns a copy of the move carrying the given label.
func (m Move) WithLabel(label string) Move {
	m.label = label
	return m
}

// Cycle returns a copy of the positions of a cycle move, nil otherwise.
func (m Move) Cycle() []int {
	if m.kind != KindCycle {
		return nil
	}
	cycle := make([]int, len(m.cycle))
	copy(cycle, m.cycle)
	return cycle
}

// Then returns the unlabeled composite that applies m and then other.
func (m Move) Then(other Move) Move {
	left, right := m, other
	return Move{kind: KindComposite, left: &left, right: &right}
}

// Apply applies the move to s in place.
func (m Move) Apply(s State) {
	switch m.kind {
	case KindCycle:
		s.Apply(m.cycle)
	case KindComposite:
		m.left.Apply(s)
		m.right.Apply(s)
	}
}

// Clone returns a structurally independent deep copy with the same label.
func (m Move) Clone() Move {
	clone := Move{kind: m.kind, label: m.label}
	switch m.kind {
	case KindCycle:
		clone.cycle = m.Cycle()
	case KindComposite:
		left, right := m.left.Clone(), m.right.Clone()
		clone.left, clone.right = &left, &right
	}
	return clone
}

// Labels returns the generator labels the move reports, in application
// order.
//
// A node is a reporting unit if and only if it carries a label: a labeled
// composite such as "U2" (stored as U applied twice) reports just "U2",
// while an unlabeled composite reports the labels of its children left then
// right. Unlabeled leaves report nothing.
func (m Move) Labels() []string {
	var labels []string
	m.collectLabels(&labels)
	return labels
}

func (m Move) collectLabels(labels *[]string) {
	if m.label != "" {
		*labels = append(*labels, m.label)
		return
	}
	if m.kind == KindComposite {
		m.left.collectLabels(labels)
		m.right.collectLabels(labels)
	}
}

// Inverse returns the move that undoes m. The label, if any, is inverted
// with InvertLabel.
func (m Move) Inverse() Move {
	var inv Move
	switch m.kind {
	case KindCycle:
		cycle := make([]int, len(m.cycle))
		for i, p := range m.cycle {
			cycle[len(cycle)-1-i] = p
		}
		inv = Move{kind: KindCycle, cycle: cycle}
	case KindComposite:
		inv = m.right.Inverse().Then(m.left.Inverse())
	default:
		inv = Identity()
	}
	if m.label != "" {
		inv.label = InvertLabel(m.label)
	}
	return inv
}
