package vascular

import (
	apperrors "github.com/AlexRiggs/hemo/pkg/errors"
)

// MakeSwitches runs a single greedy refinement sweep over the radii using
// per-edge central differences measured against the designated aggregate
// source and sink (not the per-node role sets used by AssignDistances).
//
// For every ordered edge pair not sharing a tail or head endpoint: if the
// first edge has a strictly smaller central difference and a strictly larger
// radius than the second, the radii are swapped and scanning moves on to the
// next first edge (first match, not best match). The sweep runs exactly once;
// it is not iterated to a fixed point.
//
// Returns MISSING_PRECONDITION if the designated source/sink have not been
// set by PrepareForSimulation.
func MakeSwitches(net *Network) error {
	source, sink, ok := net.Designated()
	if !ok {
		return apperrors.New(apperrors.ErrCodeMissingPrecondition, "designated source/sink not set; prepare the network first")
	}

	edges := net.Edges()
	oracle := newDistanceOracle(net)

	// Central differences depend only on topology, so compute them once up
	// front instead of per pair.
	cd := make([]int, len(edges))
	for i, e := range edges {
		d, err := centralDifference(oracle, e, source, sink)
		if err != nil {
			return err
		}
		cd[i] = d
	}

	for i, a := range edges {
		for j, b := range edges {
			if i == j || sharesEndpoint(a, b) {
				continue
			}
			if cd[i] < cd[j] && a.Radius > b.Radius {
				a.Radius, b.Radius = b.Radius, a.Radius
				break
			}
		}
	}
	return nil
}

// centralDifference measures how far an edge sits from the network center:
// the absolute difference between the edge's hop distance to the designated
// source and its hop distance to the designated sink.
//
// The source leg is hops(From→source), substituting hops(source→To) when no
// directed path exists; the sink leg is hops(To→sink), substituting
// hops(sink→From). Both legs unreachable on both routes cannot happen on a
// prepared lattice and reports UNREACHABLE.
func centralDifference(oracle *distanceOracle, e *Edge, source, sink int) (int, error) {
	d1, ok := oracle.to(source)[e.From]
	if !ok {
		if d1, ok = oracle.from(source)[e.To]; !ok {
			return 0, apperrors.New(apperrors.ErrCodeUnreachable, "edge %d→%d has no path to or from source %d", e.From, e.To, source)
		}
	}
	d2, ok := oracle.to(sink)[e.To]
	if !ok {
		if d2, ok = oracle.from(sink)[e.From]; !ok {
			return 0, apperrors.New(apperrors.ErrCodeUnreachable, "edge %d→%d has no path to or from sink %d", e.From, e.To, sink)
		}
	}
	return absInt(d1 - d2), nil
}
