package cuboid

import (
	"reflect"
	"testing"
)

func dominoCatalog(t *testing.T) *Catalog {
	t.Helper()
	p := Domino()
	cat, err := NewCatalog(p.Size, p.Faces)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return cat
}

func applied(m Move, s State) State {
	c := s.Clone()
	m.Apply(c)
	return c
}

func TestIdentityIsNoop(t *testing.T) {
	var zero Move
	if zero.Kind() != KindIdentity {
		t.Errorf("Zero move kind = %v, want identity", zero.Kind())
	}
	s := State(referenceStart)
	if !applied(Identity(), s).Equal(s) {
		t.Error("Identity changed the state")
	}
	if !applied(zero, s).Equal(s) {
		t.Error("Zero move changed the state")
	}
}

func TestRoundTripAllMoves(t *testing.T) {
	cat := dominoCatalog(t)
	start := State(referenceStart)
	for _, label := range cat.Labels() {
		m, _ := cat.Move(label)
		invLabel, err := cat.Inverse(label)
		if err != nil {
			t.Fatalf("Inverse(%s): %v", label, err)
		}
		inv, _ := cat.Move(invLabel)
		if got := applied(inv, applied(m, start)); !got.Equal(start) {
			t.Errorf("%s then %s should return to start", label, invLabel)
		}

		structural := m.Inverse()
		if structural.Label() != invLabel {
			t.Errorf("%s.Inverse().Label() = %q, want %q", label, structural.Label(), invLabel)
		}
		if got := applied(structural, applied(m, start)); !got.Equal(start) {
			t.Errorf("%s then its structural inverse should return to start", label)
		}
	}
}

func TestHalfTurnsAreInvolutions(t *testing.T) {
	cat := dominoCatalog(t)
	start := State(referenceStart)
	for _, label := range cat.HalfTurns().Labels() {
		m, _ := cat.Move(label)
		once := applied(m, start)
		if once.Equal(start) {
			t.Errorf("%s should change the state", label)
		}
		if !applied(m, once).Equal(start) {
			t.Errorf("%s %s should return to start", label, label)
		}
	}
}

func TestQuarterTurnOrderFour(t *testing.T) {
	cat := dominoCatalog(t)
	p := Domino()
	for _, label := range []string{"U", "D", "U'", "D'"} {
		m, _ := cat.Move(label)
		s := p.Goal.Clone()
		for i := 0; i < 4; i++ {
			m.Apply(s)
			if i < 3 && p.IsSolved(s) {
				t.Errorf("%s x %d should not be solved", label, i+1)
			}
		}
		if !p.IsSolved(s) {
			t.Errorf("%s x 4 should return to solved", label)
		}
	}
}

func TestCompositionLaw(t *testing.T) {
	cat := dominoCatalog(t)
	start := State(referenceStart)
	labels := cat.Labels()
	for _, a := range labels {
		for _, b := range labels {
			ma, _ := cat.Move(a)
			mb, _ := cat.Move(b)
			want := applied(mb, applied(ma, start))
			if got := applied(ma.Then(mb), start); !got.Equal(want) {
				t.Errorf("composite(%s,%s) differs from %s then %s", a, b, a, b)
			}
		}
	}
}

func TestCompositionOrderMatters(t *testing.T) {
	cat := dominoCatalog(t)
	u, _ := cat.Move("U")
	l, _ := cat.Move("L2")
	goal := Domino().Goal
	if applied(u.Then(l), goal).Equal(applied(l.Then(u), goal)) {
		t.Error("U then L2 should differ from L2 then U")
	}
}

func TestLabelsLabeledCompositeIsAtomic(t *testing.T) {
	cat := dominoCatalog(t)
	u2, _ := cat.Move("U2")
	if u2.Kind() != KindComposite {
		t.Fatalf("U2 kind = %v, want composite", u2.Kind())
	}
	if got := u2.Labels(); !reflect.DeepEqual(got, []string{"U2"}) {
		t.Errorf("U2.Labels() = %v, want [U2]", got)
	}
}

func TestLabelsUnlabeledCompositeDescends(t *testing.T) {
	cat := dominoCatalog(t)
	u, _ := cat.Move("U")
	l2, _ := cat.Move("L2")
	d, _ := cat.Move("D'")

	chain := Sequence(u, l2, d)
	if chain.Label() != "" {
		t.Errorf("Sequence should be unlabeled, got %q", chain.Label())
	}
	if got := chain.Labels(); !reflect.DeepEqual(got, []string{"U", "L2", "D'"}) {
		t.Errorf("Labels() = %v, want [U L2 D']", got)
	}

	named := chain.WithLabel("X")
	if got := named.Labels(); !reflect.DeepEqual(got, []string{"X"}) {
		t.Errorf("Labeled chain Labels() = %v, want [X]", got)
	}
	if got := chain.Labels(); len(got) != 3 {
		t.Errorf("WithLabel should not modify the original, got %v", got)
	}
}

func TestLabelsUnlabeledLeaves(t *testing.T) {
	m := Sequence(Cycle(0, 1), Cycle(2, 3).WithLabel("S"), Identity())
	if got := m.Labels(); !reflect.DeepEqual(got, []string{"S"}) {
		t.Errorf("Labels() = %v, want [S]", got)
	}
	if got := Cycle(0, 1).Labels(); len(got) != 0 {
		t.Errorf("Unlabeled cycle Labels() = %v, want empty", got)
	}
}

func TestCloneMove(t *testing.T) {
	cat := dominoCatalog(t)
	start := State(referenceStart)
	for _, label := range cat.Labels() {
		m, _ := cat.Move(label)
		c := m.Clone()
		if c.Label() != m.Label() {
			t.Errorf("Clone label = %q, want %q", c.Label(), m.Label())
		}
		if !applied(c, start).Equal(applied(m, start)) {
			t.Errorf("Clone of %s applies differently", label)
		}
	}

	cyc := Cycle(0, 1, 2).WithLabel("C")
	positions := cyc.Clone().Cycle()
	positions[0] = 3
	if cyc.Cycle()[0] != 0 {
		t.Error("Editing a clone's cycle changed the original")
	}
}

func TestCycleCopiesInput(t *testing.T) {
	positions := []int{0, 1}
	m := Cycle(positions...)
	positions[0] = 2
	if got := m.Cycle(); got[0] != 0 {
		t.Errorf("Cycle kept a reference to its input: %v", got)
	}
}

func TestRepeat(t *testing.T) {
	s := State("abc")
	m := Cycle(0, 1, 2)
	if got := applied(Repeat(m, 3), s); !got.Equal(s) {
		t.Errorf("3-cycle repeated 3 times = %s, want %s", got, s)
	}
	if got := applied(Repeat(m, 0), s); !got.Equal(s) {
		t.Errorf("Repeat 0 = %s, want identity", got)
	}
	neg := Repeat(m, -2)
	if neg.Kind() != KindIdentity {
		t.Errorf("Repeat -2 kind = %v, want identity", neg.Kind())
	}
	if got := applied(neg, s); !got.Equal(s) {
		t.Errorf("Repeat -2 = %s, want identity", got)
	}
}
