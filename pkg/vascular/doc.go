// Package vascular synthesizes three-dimensional lattice networks of vessels
// and computes hemodynamic metrics over them.
//
// A network is built and annotated in a fixed pipeline order:
//
//  1. Build: N³ lattice nodes in the unit cube, forward-axis edges,
//     checkerboard source/sink roles on opposite faces, edge directions
//     enforced out of sources and into sinks.
//  2. AssignLengths: Euclidean edge lengths from node positions.
//  3. AssignDistances: per-edge hop distances to the nearest source-role and
//     sink-role nodes, and the derived center distance.
//  4. AssignSymmetricRadii or AssignRandomRadii: uniform or gamma-distributed
//     radii, the latter followed by bounded repair sweeps that bias larger
//     radii toward edges with larger center distance.
//  5. PrepareForSimulation: consolidated super-source/super-sink, per-edge
//     volume, inverse transit time, and state-vector index.
//  6. MakeSwitches: a greedy local-search refinement of the radius ordering
//     using distances to the designated aggregate source and sink.
//
// After preparation the network is read-only for the metric functions
// (TotalFlow, TotalResistance, SurfaceArea, TotalVolume, TracerMass).
//
// Two distinct notions of source/sink coexist and must not be conflated:
// per-node roles (many nodes, set at construction, drive edge direction and
// distance ranking) and the single designated aggregate source/sink node IDs
// (set by PrepareForSimulation, used by flow metrics and MakeSwitches).
package vascular
