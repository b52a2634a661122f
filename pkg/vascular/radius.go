package vascular

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	apperrors "github.com/AlexRiggs/hemo/pkg/errors"
)

// =============================================================================
// Defaults
// =============================================================================

const (
	// DefaultGammaShape is the shape parameter α of the radius distribution.
	DefaultGammaShape = 5.0

	// DefaultRepairPasses is the number of radius-ordering repair sweeps.
	DefaultRepairPasses = 2
)

// SymmetricRadius returns the uniform vessel radius 1/((N+1)·√(90π)) that
// gives a symmetric lattice of resolution N the target vascular fraction.
func SymmetricRadius(n int) float64 {
	return 1.0 / (float64(n+1) * math.Sqrt(90*math.Pi))
}

// AssignSymmetricRadii gives every edge the exact symmetric radius.
// Deterministic; used when the network is generated in symmetric mode.
func AssignSymmetricRadii(net *Network) {
	r := SymmetricRadius(net.Resolution())
	for _, e := range net.Edges() {
		e.Radius = r
	}
}

// =============================================================================
// Random assignment
// =============================================================================

// RadiusOptions configures gamma-distributed radius assignment.
type RadiusOptions struct {
	// Shape is the gamma shape parameter α. Zero selects DefaultGammaShape.
	Shape float64

	// Passes is the number of repair sweeps, taken literally: zero leaves
	// the raw gamma draw untouched. Negative is rejected. Callers that want
	// the standard behavior pass DefaultRepairPasses.
	Passes int

	// Seed seeds the random source so generation is reproducible.
	Seed uint64
}

// AssignRandomRadii draws a radius for every edge from a Gamma(α, β)
// distribution with scale β = 1/(α·(N+1)·√(90π)), so the mean matches the
// symmetric radius, then runs the repair sweeps to bias larger radii toward
// edges with larger center distance. AssignDistances must have run first for
// the sweeps to be meaningful; center distances default to zero otherwise.
//
// The sweeps visit every unordered pair of edges not sharing a tail or head
// endpoint; whenever the edge with the strictly greater center distance has
// the strictly smaller radius, the two radii are swapped. Only Passes full
// sweeps run, so the result is a statistical monotonicity, not a total
// order; Passes of zero keeps the raw draw.
func AssignRandomRadii(net *Network, opts RadiusOptions) error {
	if opts.Passes < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidParameter, "repair passes must be non-negative, got %d", opts.Passes)
	}
	shape := opts.Shape
	if shape == 0 {
		shape = DefaultGammaShape
	}
	if shape < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidParameter, "gamma shape must be positive, got %g", shape)
	}
	// distuv parameterizes by rate, the reciprocal of the scale.
	gamma := distuv.Gamma{
		Alpha: shape,
		Beta:  shape / SymmetricRadius(net.Resolution()),
		Src:   rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15),
	}
	for _, e := range net.Edges() {
		e.Radius = gamma.Rand()
	}

	repairRadiusOrdering(net.Edges(), opts.Passes)
	return nil
}

// repairRadiusOrdering runs bounded bubble-style sweeps over edge pairs,
// keeping the O(passes·E²) nested-pair structure of the heuristic rather
// than sorting outright. Pairs sharing a tail node or a head node are
// skipped, the same conflict rule MakeSwitches applies: edges meeting
// head-to-tail may still trade radii.
func repairRadiusOrdering(edges []*Edge, passes int) {
	for p := 0; p < passes; p++ {
		for i, a := range edges {
			for _, b := range edges[i+1:] {
				if sharesEndpoint(a, b) {
					continue
				}
				if a.CenterDist > b.CenterDist && a.Radius < b.Radius {
					a.Radius, b.Radius = b.Radius, a.Radius
				} else if b.CenterDist > a.CenterDist && b.Radius < a.Radius {
					a.Radius, b.Radius = b.Radius, a.Radius
				}
			}
		}
	}
}

// sharesEndpoint reports whether two edges share a tail or a head node.
// Such pairs are skipped by both the repair sweeps and MakeSwitches.
func sharesEndpoint(a, b *Edge) bool {
	return a.From == b.From || a.To == b.To
}
