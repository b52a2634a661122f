package vascular

import (
	"math"

	apperrors "github.com/AlexRiggs/hemo/pkg/errors"
)

// PrepareForSimulation turns a topology/geometry network into a
// simulation-ready one. It is the hand-off boundary consumed by the metric
// functions and MakeSwitches:
//
//   - adds a consolidated super-source node with an edge to every source-role
//     node, and a super-sink node with an edge from every sink-role node, and
//     records them as the designated aggregate source and sink
//   - assigns every edge its cylindrical volume πr²L
//   - assigns every edge an inverse transit time from Poiseuille flow under a
//     uniform per-hop pressure drop: 1/τ = r²·Δp/((N+1)·8μL²)
//   - assigns every edge a unique contiguous state-vector index in [0, E) in
//     insertion order
//
// Super edges carry the symmetric radius and one grid spacing of length so
// their volume and transit time are well defined. Edge lengths and radii must
// already be assigned (MISSING_ATTRIBUTE otherwise); preparing twice is
// rejected with INVALID_PARAMETER.
func PrepareForSimulation(net *Network, phys Physics) error {
	if net.Prepared() {
		return apperrors.New(apperrors.ErrCodeInvalidParameter, "network is already prepared")
	}
	sources := net.NodesWithRole(RoleSource)
	sinks := net.NodesWithRole(RoleSink)
	if len(sources) == 0 || len(sinks) == 0 {
		return apperrors.New(apperrors.ErrCodeMissingPrecondition, "network has no source or sink nodes")
	}

	superSource := net.NextNodeID()
	if err := net.AddNode(Node{ID: superSource, Pos: [3]float64{0.5, 0.5, 0}}); err != nil {
		return err
	}
	superSink := net.NextNodeID()
	if err := net.AddNode(Node{ID: superSink, Pos: [3]float64{0.5, 0.5, 1}}); err != nil {
		return err
	}

	r := SymmetricRadius(net.Resolution())
	for _, s := range sources {
		e, err := net.AddEdge(superSource, s)
		if err != nil {
			return err
		}
		e.Radius = r
		e.Length = net.Delta()
	}
	for _, t := range sinks {
		e, err := net.AddEdge(t, superSink)
		if err != nil {
			return err
		}
		e.Radius = r
		e.Length = net.Delta()
	}

	hopDrop := phys.PressureDrop / float64(net.Resolution()+1)
	for i, e := range net.Edges() {
		if e.Length <= 0 {
			return apperrors.New(apperrors.ErrCodeMissingAttribute, "edge %d→%d has no length", e.From, e.To)
		}
		if e.Radius <= 0 {
			return apperrors.New(apperrors.ErrCodeMissingAttribute, "edge %d→%d has no radius", e.From, e.To)
		}
		e.Volume = math.Pi * e.Radius * e.Radius * e.Length
		e.InverseTransitTime = e.Radius * e.Radius * hopDrop / (8 * phys.Viscosity * e.Length * e.Length)
		e.Idx = i
	}

	return net.SetDesignated(superSource, superSink)
}
