package vascular

import (
	"math"

	apperrors "github.com/AlexRiggs/hemo/pkg/errors"
)

// =============================================================================
// Aggregate hemodynamic metrics
// =============================================================================
//
// All metric functions are pure reads over a finished network. Malformed
// edges fail fast with MISSING_ATTRIBUTE rather than contributing defaults.

// TotalFlow returns the volumetric flow rate leaving the designated aggregate
// source: the sum of inverse transit time × volume over edges whose tail is
// that source. Requires a prepared network (MISSING_PRECONDITION otherwise).
func TotalFlow(net *Network) (float64, error) {
	source, _, ok := net.Designated()
	if !ok {
		return 0, apperrors.New(apperrors.ErrCodeMissingPrecondition, "designated source not set; prepare the network first")
	}
	q := 0.0
	for _, e := range net.Edges() {
		if e.From != source {
			continue
		}
		if e.Volume <= 0 || e.InverseTransitTime <= 0 {
			return 0, apperrors.New(apperrors.ErrCodeMissingAttribute, "edge %d→%d lacks volume or transit time", e.From, e.To)
		}
		q += e.InverseTransitTime * e.Volume
	}
	return q, nil
}

// TotalResistance returns the configured pressure drop divided by the total
// flow. A network with exactly zero flow (degenerate or disconnected) has no
// defined resistance and reports UNDEFINED_METRIC instead of ±Inf or NaN.
func TotalResistance(net *Network, phys Physics) (float64, error) {
	q, err := TotalFlow(net)
	if err != nil {
		return 0, err
	}
	if q == 0 {
		return 0, apperrors.New(apperrors.ErrCodeUndefinedMetric, "total flow is zero; resistance is undefined")
	}
	return phys.PressureDrop / q, nil
}

// SurfaceArea returns the sum of radius × length over all edges,
// proportional to the lateral vessel surface area.
func SurfaceArea(net *Network) (float64, error) {
	sa := 0.0
	for _, e := range net.Edges() {
		if e.Length <= 0 || e.Radius <= 0 {
			return 0, apperrors.New(apperrors.ErrCodeMissingAttribute, "edge %d→%d lacks length or radius", e.From, e.To)
		}
		sa += e.Radius * e.Length
	}
	return sa, nil
}

// TotalVolume returns the total cylindrical vessel volume Σ πr²L.
func TotalVolume(net *Network) (float64, error) {
	v := 0.0
	for _, e := range net.Edges() {
		if e.Length <= 0 || e.Radius <= 0 {
			return 0, apperrors.New(apperrors.ErrCodeMissingAttribute, "edge %d→%d lacks length or radius", e.From, e.To)
		}
		v += math.Pi * e.Radius * e.Radius * e.Length
	}
	return v, nil
}

// TracerMass computes the tracer mass curve W(t) from an externally produced
// solution array indexed [time step][state index]. The state vector is laid
// out as one free-tracer segment, one bound segment, and an optional liposome
// segment, each of length E; the bound segment is read unless liposomes is
// set, in which case the liposome segment is.
//
// For each time step t: W[t] = Σ_edges c·vol_e·soln[t][offset+idx_e], with
// c the configured tracer coefficient and offset E or 2E. The result has the
// same length as times.
func TracerMass(net *Network, times []float64, soln [][]float64, liposomes bool, phys Physics) ([]float64, error) {
	if len(soln) != len(times) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParameter, "solution has %d time steps, expected %d", len(soln), len(times))
	}
	edgeCount := net.EdgeCount()
	offset := edgeCount
	if liposomes {
		offset = 2 * edgeCount
	}
	for t, row := range soln {
		if len(row) < offset+edgeCount {
			return nil, apperrors.New(apperrors.ErrCodeInvalidParameter, "solution row %d has %d states, need at least %d", t, len(row), offset+edgeCount)
		}
	}

	wt := make([]float64, len(times))
	for _, e := range net.Edges() {
		if e.Idx == NoIndex {
			return nil, apperrors.New(apperrors.ErrCodeMissingAttribute, "edge %d→%d has no state index", e.From, e.To)
		}
		if e.Volume <= 0 {
			return nil, apperrors.New(apperrors.ErrCodeMissingAttribute, "edge %d→%d has no volume", e.From, e.To)
		}
		for t := range times {
			wt[t] += phys.TracerCoefficient * e.Volume * soln[t][offset+e.Idx]
		}
	}
	return wt, nil
}
