package vascular

import (
	"math"
	"slices"
	"sort"
	"testing"

	"gonum.org/v1/gonum/stat"

	apperrors "github.com/AlexRiggs/hemo/pkg/errors"
)

func TestSymmetricRadius_Exact(t *testing.T) {
	tests := []struct {
		n    int
		want float64
	}{
		{1, 1.0 / (2 * math.Sqrt(90*math.Pi))},
		{2, 1.0 / (3 * math.Sqrt(90*math.Pi))},
		{7, 1.0 / (8 * math.Sqrt(90*math.Pi))},
	}
	for _, tt := range tests {
		if got := SymmetricRadius(tt.n); got != tt.want {
			t.Errorf("SymmetricRadius(%d) = %g, want %g", tt.n, got, tt.want)
		}
	}
}

func TestAssignSymmetricRadii_AllEdges(t *testing.T) {
	net, err := Build(3)
	if err != nil {
		t.Fatalf("Build(3) error: %v", err)
	}
	AssignSymmetricRadii(net)

	want := SymmetricRadius(3)
	for _, e := range net.Edges() {
		if e.Radius != want {
			t.Errorf("edge %d→%d radius = %g, want %g", e.From, e.To, e.Radius, want)
		}
	}
}

func TestAssignRandomRadii_Deterministic(t *testing.T) {
	build := func(seed uint64) []float64 {
		net, err := Build(3)
		if err != nil {
			t.Fatalf("Build(3) error: %v", err)
		}
		AssignDistances(net)
		if err := AssignRandomRadii(net, RadiusOptions{Seed: seed}); err != nil {
			t.Fatalf("AssignRandomRadii: %v", err)
		}
		radii := make([]float64, 0, net.EdgeCount())
		for _, e := range net.Edges() {
			radii = append(radii, e.Radius)
		}
		return radii
	}

	a, b := build(7), build(7)
	if !slices.Equal(a, b) {
		t.Error("same seed produced different radii")
	}

	c := build(8)
	if slices.Equal(a, c) {
		t.Error("different seeds produced identical radii")
	}
}

func TestAssignRandomRadii_Positive(t *testing.T) {
	net, err := Build(4)
	if err != nil {
		t.Fatalf("Build(4) error: %v", err)
	}
	AssignDistances(net)
	if err := AssignRandomRadii(net, RadiusOptions{Seed: 1}); err != nil {
		t.Fatalf("AssignRandomRadii: %v", err)
	}
	for _, e := range net.Edges() {
		if e.Radius <= 0 {
			t.Errorf("edge %d→%d radius = %g, want > 0", e.From, e.To, e.Radius)
		}
	}
}

func TestAssignRandomRadii_NegativePasses(t *testing.T) {
	net, err := Build(2)
	if err != nil {
		t.Fatalf("Build(2) error: %v", err)
	}
	err = AssignRandomRadii(net, RadiusOptions{Passes: -1})
	if !apperrors.Is(err, apperrors.ErrCodeInvalidParameter) {
		t.Errorf("AssignRandomRadii(Passes: -1) error = %v, want INVALID_PARAMETER", err)
	}
}

func TestAssignRandomRadii_ZeroPassesAccepted(t *testing.T) {
	net, err := Build(2)
	if err != nil {
		t.Fatalf("Build(2) error: %v", err)
	}
	AssignDistances(net)
	if err := AssignRandomRadii(net, RadiusOptions{Seed: 1, Passes: 0}); err != nil {
		t.Errorf("AssignRandomRadii(Passes: 0) error = %v, want nil", err)
	}
}

func TestRepairRadiusOrdering_ZeroPassesLeavesRadii(t *testing.T) {
	a := &Edge{From: 0, To: 1, CenterDist: 2, Radius: 1}
	b := &Edge{From: 2, To: 3, CenterDist: 0, Radius: 5}
	repairRadiusOrdering([]*Edge{a, b}, 0)

	if a.Radius != 1 || b.Radius != 5 {
		t.Errorf("radii after zero passes = (%g, %g), want unchanged (1, 5)", a.Radius, b.Radius)
	}
}

// tieRanks assigns 1-based ranks, averaging ties.
func tieRanks(values []float64) []float64 {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return values[idx[i]] < values[idx[j]] })

	out := make([]float64, len(values))
	for i := 0; i < len(idx); {
		j := i
		for j < len(idx) && values[idx[j]] == values[idx[i]] {
			j++
		}
		avg := float64(i+j+1) / 2 // mean of ranks i+1..j
		for k := i; k < j; k++ {
			out[idx[k]] = avg
		}
		i = j
	}
	return out
}

// spearman computes the rank correlation between center distance and radius.
func spearman(edges []*Edge) float64 {
	cds := make([]float64, len(edges))
	radii := make([]float64, len(edges))
	for i, e := range edges {
		cds[i] = float64(e.CenterDist)
		radii[i] = e.Radius
	}
	return stat.Correlation(tieRanks(cds), tieRanks(radii), nil)
}

func TestAssignRandomRadii_RepairImprovesRankCorrelation(t *testing.T) {
	net, err := Build(4)
	if err != nil {
		t.Fatalf("Build(4) error: %v", err)
	}
	AssignDistances(net)
	if err := AssignRandomRadii(net, RadiusOptions{Seed: 17, Passes: 0}); err != nil {
		t.Fatalf("AssignRandomRadii: %v", err)
	}

	before := spearman(net.Edges())
	repairRadiusOrdering(net.Edges(), DefaultRepairPasses)
	after := spearman(net.Edges())

	// Every executed swap aligns a discordant pair without disturbing the
	// radius multiset, so the rank correlation must strictly improve over
	// the raw draw.
	if after <= before {
		t.Errorf("Spearman after repair = %g, want > %g (raw draw)", after, before)
	}
}

func TestRepairRadiusOrdering_SwapsInvertedPair(t *testing.T) {
	// Disjoint endpoints, inverted: the central edge holds the smaller radius.
	a := &Edge{From: 0, To: 1, CenterDist: 2, Radius: 1}
	b := &Edge{From: 2, To: 3, CenterDist: 0, Radius: 5}
	repairRadiusOrdering([]*Edge{a, b}, 1)

	if a.Radius != 5 || b.Radius != 1 {
		t.Errorf("radii after repair = (%g, %g), want (5, 1)", a.Radius, b.Radius)
	}
}

func TestRepairRadiusOrdering_SkipsSharedEndpoint(t *testing.T) {
	// Same tail node: the pair must be left alone even though it is inverted.
	a := &Edge{From: 0, To: 1, CenterDist: 2, Radius: 1}
	b := &Edge{From: 0, To: 3, CenterDist: 0, Radius: 5}
	repairRadiusOrdering([]*Edge{a, b}, 3)

	if a.Radius != 1 || b.Radius != 5 {
		t.Errorf("radii after repair = (%g, %g), want unchanged (1, 5)", a.Radius, b.Radius)
	}
}

func TestRepairRadiusOrdering_PreservesRadiusMultiset(t *testing.T) {
	net, err := Build(3)
	if err != nil {
		t.Fatalf("Build(3) error: %v", err)
	}
	AssignDistances(net)
	if err := AssignRandomRadii(net, RadiusOptions{Seed: 5, Passes: 1}); err != nil {
		t.Fatalf("AssignRandomRadii: %v", err)
	}

	before := make([]float64, 0, net.EdgeCount())
	for _, e := range net.Edges() {
		before = append(before, e.Radius)
	}
	repairRadiusOrdering(net.Edges(), 2)
	after := make([]float64, 0, net.EdgeCount())
	for _, e := range net.Edges() {
		after = append(after, e.Radius)
	}

	slices.Sort(before)
	slices.Sort(after)
	if !slices.Equal(before, after) {
		t.Error("repair sweeps changed the multiset of radii; they may only swap")
	}
}

func TestSharesEndpoint(t *testing.T) {
	tests := []struct {
		a, b *Edge
		want bool
	}{
		{&Edge{From: 0, To: 1}, &Edge{From: 0, To: 2}, true},  // same tail
		{&Edge{From: 1, To: 3}, &Edge{From: 2, To: 3}, true},  // same head
		{&Edge{From: 0, To: 1}, &Edge{From: 1, To: 2}, false}, // head meets tail
		{&Edge{From: 0, To: 1}, &Edge{From: 2, To: 3}, false}, // disjoint
	}
	for _, tt := range tests {
		if got := sharesEndpoint(tt.a, tt.b); got != tt.want {
			t.Errorf("sharesEndpoint(%d→%d, %d→%d) = %v, want %v",
				tt.a.From, tt.a.To, tt.b.From, tt.b.To, got, tt.want)
		}
	}
}
