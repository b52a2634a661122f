package vascular

import (
	"testing"

	apperrors "github.com/AlexRiggs/hemo/pkg/errors"
)

func TestMakeSwitches_RequiresDesignated(t *testing.T) {
	net, err := Build(2)
	if err != nil {
		t.Fatalf("Build(2) error: %v", err)
	}
	err = MakeSwitches(net)
	if !apperrors.Is(err, apperrors.ErrCodeMissingPrecondition) {
		t.Errorf("MakeSwitches on unprepared network error = %v, want MISSING_PRECONDITION", err)
	}
}

func TestMakeSwitches_SwapsFirstMatch(t *testing.T) {
	// Diamond: 0 → {1,2} → {3,4} → 5 with designated source 0 and sink 5.
	net := NewNetwork(2)
	for id := 0; id <= 5; id++ {
		if err := net.AddNode(Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%d): %v", id, err)
		}
	}
	for _, pair := range [][2]int{{0, 1}, {0, 2}, {1, 3}, {2, 4}, {3, 5}, {4, 5}} {
		if _, err := net.AddEdge(pair[0], pair[1]); err != nil {
			t.Fatalf("AddEdge(%d,%d): %v", pair[0], pair[1], err)
		}
	}
	if err := net.SetDesignated(0, 5); err != nil {
		t.Fatalf("SetDesignated: %v", err)
	}

	// Central differences: edges at the source and sink score 2 and 3, the
	// middle edges 1→3 and 2→4 score 1. Give the middle edge 1→3 the largest
	// radius; the sweep must move it onto the more peripheral edge 0→1.
	radii := map[[2]int]float64{
		{0, 1}: 1, {0, 2}: 1, {1, 3}: 5, {2, 4}: 1, {3, 5}: 1, {4, 5}: 1,
	}
	for pair, r := range radii {
		e, _ := net.EdgeBetween(pair[0], pair[1])
		e.Radius = r
	}

	if err := MakeSwitches(net); err != nil {
		t.Fatalf("MakeSwitches: %v", err)
	}

	want := map[[2]int]float64{
		{0, 1}: 5, {0, 2}: 1, {1, 3}: 1, {2, 4}: 1, {3, 5}: 1, {4, 5}: 1,
	}
	for pair, r := range want {
		e, _ := net.EdgeBetween(pair[0], pair[1])
		if e.Radius != r {
			t.Errorf("edge %d→%d radius = %g, want %g", pair[0], pair[1], e.Radius, r)
		}
	}
}

func TestMakeSwitches_ChainSwap(t *testing.T) {
	// 0 → 1 → 2: the edges meet head-to-tail, which does not count as a
	// shared endpoint, so the inverted pair is swapped.
	net := NewNetwork(1)
	for id := 0; id <= 2; id++ {
		if err := net.AddNode(Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%d): %v", id, err)
		}
	}
	e1, _ := net.AddEdge(0, 1)
	e2, _ := net.AddEdge(1, 2)
	if err := net.SetDesignated(0, 2); err != nil {
		t.Fatalf("SetDesignated: %v", err)
	}
	e1.Radius, e2.Radius = 2, 1

	if err := MakeSwitches(net); err != nil {
		t.Fatalf("MakeSwitches: %v", err)
	}
	if e1.Radius != 1 || e2.Radius != 2 {
		t.Errorf("radii after sweep = (%g, %g), want (1, 2)", e1.Radius, e2.Radius)
	}
}

func TestMakeSwitches_OnPreparedLattice(t *testing.T) {
	net, err := Build(3)
	if err != nil {
		t.Fatalf("Build(3) error: %v", err)
	}
	AssignLengths(net)
	AssignDistances(net)
	if err := AssignRandomRadii(net, RadiusOptions{Seed: 11}); err != nil {
		t.Fatalf("AssignRandomRadii: %v", err)
	}
	if err := PrepareForSimulation(net, DefaultPhysics()); err != nil {
		t.Fatalf("PrepareForSimulation: %v", err)
	}

	if err := MakeSwitches(net); err != nil {
		t.Fatalf("MakeSwitches on prepared lattice: %v", err)
	}
	for _, e := range net.Edges() {
		if e.Radius <= 0 {
			t.Errorf("edge %d→%d radius = %g after sweep, want > 0", e.From, e.To, e.Radius)
		}
	}
}

func TestCentralDifference_Values(t *testing.T) {
	net := NewNetwork(1)
	for id := 0; id <= 2; id++ {
		if err := net.AddNode(Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%d): %v", id, err)
		}
	}
	e1, _ := net.AddEdge(0, 1)
	e2, _ := net.AddEdge(1, 2)
	if err := net.SetDesignated(0, 2); err != nil {
		t.Fatalf("SetDesignated: %v", err)
	}

	oracle := newDistanceOracle(net)
	// e1: source leg hops(0→0)=0, sink leg hops(1→2)=1.
	if got, err := centralDifference(oracle, e1, 0, 2); err != nil || got != 1 {
		t.Errorf("centralDifference(0→1) = %d, %v, want 1, nil", got, err)
	}
	// e2: source leg falls back to hops(0→2)=2, sink leg hops(2→2)=0.
	if got, err := centralDifference(oracle, e2, 0, 2); err != nil || got != 2 {
		t.Errorf("centralDifference(1→2) = %d, %v, want 2, nil", got, err)
	}
}

func TestCentralDifference_Unreachable(t *testing.T) {
	net := NewNetwork(1)
	for id := 0; id <= 3; id++ {
		if err := net.AddNode(Node{ID: id}); err != nil {
			t.Fatalf("AddNode(%d): %v", id, err)
		}
	}
	// 2→3 is disconnected from the designated pair 0, 1.
	if _, err := net.AddEdge(0, 1); err != nil {
		t.Fatal(err)
	}
	e, _ := net.AddEdge(2, 3)
	if err := net.SetDesignated(0, 1); err != nil {
		t.Fatalf("SetDesignated: %v", err)
	}

	oracle := newDistanceOracle(net)
	if _, err := centralDifference(oracle, e, 0, 1); !apperrors.Is(err, apperrors.ErrCodeUnreachable) {
		t.Errorf("centralDifference on disconnected edge error = %v, want UNREACHABLE", err)
	}
}
