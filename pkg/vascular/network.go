package vascular

import (
	"slices"

	apperrors "github.com/AlexRiggs/hemo/pkg/errors"
)

// =============================================================================
// Roles
// =============================================================================

// Role is the per-node designation controlling edge direction and distance
// ranking. Roles are assigned once at construction and never change.
type Role int

const (
	// RoleInternal marks an ordinary lattice node.
	RoleInternal Role = iota
	// RoleSource marks an inlet node on the z=0 face.
	RoleSource
	// RoleSink marks an outlet node on the z=N-1 face.
	RoleSink
)

// String returns the role name used in serialized documents.
func (r Role) String() string {
	switch r {
	case RoleSource:
		return "source"
	case RoleSink:
		return "sink"
	default:
		return "internal"
	}
}

// ParseRole converts a serialized role name back to a Role.
// Unknown names map to RoleInternal.
func ParseRole(s string) Role {
	switch s {
	case "source":
		return RoleSource
	case "sink":
		return RoleSink
	default:
		return RoleInternal
	}
}

// =============================================================================
// Nodes and Edges
// =============================================================================

// NoNode marks an unset node identifier (designated source/sink before
// preparation).
const NoNode = -1

// NoIndex marks an edge state-vector index before preparation.
const NoIndex = -1

// Node is a lattice point in the unit cube.
type Node struct {
	ID   int        // Unique identifier
	Pos  [3]float64 // Position in the unit cube
	Role Role       // internal, source, or sink
}

// Edge is a directed vessel segment. All scalar attributes start at their
// zero values and are populated by the pipeline stages; Idx starts at NoIndex
// and becomes a unique contiguous index in [0, E) after preparation.
type Edge struct {
	From int // Source endpoint node ID
	To   int // Sink endpoint node ID

	Length float64 // Euclidean endpoint distance (AssignLengths)
	Radius float64 // Vessel radius (radius assignment, switch passes)

	Volume             float64 // Cylindrical volume πr²L (preparation)
	InverseTransitTime float64 // 1/τ for plug flow through the vessel (preparation)
	Idx                int     // State-vector index (preparation)

	SrcDist    int // Hops from the nearest reachable source-role node (ranking)
	SinkDist   int // Hops to the nearest reachable sink-role node (ranking)
	CenterDist int // |SrcDist - SinkDist| (ranking)
}

// =============================================================================
// Network
// =============================================================================

// Network is the directed vascular graph: the single mutable aggregate the
// whole pipeline operates on. The zero value is not usable - use NewNetwork.
// Network is not safe for concurrent mutation without external
// synchronization; the pipeline mutates it from a single goroutine.
type Network struct {
	resolution int
	delta      float64

	source int // designated aggregate source, NoNode until prepared
	sink   int // designated aggregate sink, NoNode until prepared

	nodes    map[int]*Node
	edges    []*Edge
	outgoing map[int][]int
	incoming map[int][]int
	byPair   map[[2]int]*Edge
}

// NewNetwork creates an empty network with lattice resolution n and grid
// spacing 1/(n+1). Hand-built networks (tests, fixtures) may pass any n ≥ 0;
// Build enforces n ≥ 1 for lattice synthesis.
func NewNetwork(n int) *Network {
	return &Network{
		resolution: n,
		delta:      1.0 / float64(n+1),
		source:     NoNode,
		sink:       NoNode,
		nodes:      make(map[int]*Node),
		outgoing:   make(map[int][]int),
		incoming:   make(map[int][]int),
		byPair:     make(map[[2]int]*Edge),
	}
}

// Resolution returns the lattice resolution N.
func (n *Network) Resolution() int { return n.resolution }

// Delta returns the grid spacing 1/(N+1).
func (n *Network) Delta() float64 { return n.delta }

// AddNode adds a node to the network.
// Returns INVALID_PARAMETER for a negative ID or a duplicate.
func (n *Network) AddNode(node Node) error {
	if node.ID < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidParameter, "node ID must be non-negative, got %d", node.ID)
	}
	if _, exists := n.nodes[node.ID]; exists {
		return apperrors.New(apperrors.ErrCodeInvalidParameter, "duplicate node ID %d", node.ID)
	}
	cp := node
	n.nodes[node.ID] = &cp
	return nil
}

// AddEdge adds a directed edge between two existing nodes and returns it.
// The returned pointer refers to the stored edge; pipeline stages mutate its
// attributes in place. Parallel edges between the same endpoints are rejected.
func (n *Network) AddEdge(from, to int) (*Edge, error) {
	if _, ok := n.nodes[from]; !ok {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParameter, "unknown source node %d", from)
	}
	if _, ok := n.nodes[to]; !ok {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParameter, "unknown target node %d", to)
	}
	if _, dup := n.byPair[[2]int{from, to}]; dup {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParameter, "duplicate edge %d→%d", from, to)
	}
	e := &Edge{From: from, To: to, Idx: NoIndex}
	n.edges = append(n.edges, e)
	n.outgoing[from] = append(n.outgoing[from], to)
	n.incoming[to] = append(n.incoming[to], from)
	n.byPair[[2]int{from, to}] = e
	return e, nil
}

// ReverseEdge flips the direction of an edge in place, updating the
// adjacency indices. Used by the builder to enforce the direction invariant
// around source- and sink-role nodes.
func (n *Network) ReverseEdge(e *Edge) {
	delete(n.byPair, [2]int{e.From, e.To})
	n.outgoing[e.From] = deleteOne(n.outgoing[e.From], e.To)
	n.incoming[e.To] = deleteOne(n.incoming[e.To], e.From)

	e.From, e.To = e.To, e.From

	n.outgoing[e.From] = append(n.outgoing[e.From], e.To)
	n.incoming[e.To] = append(n.incoming[e.To], e.From)
	n.byPair[[2]int{e.From, e.To}] = e
}

// deleteOne removes the first occurrence of v from s.
func deleteOne(s []int, v int) []int {
	for i, x := range s {
		if x == v {
			return slices.Delete(s, i, i+1)
		}
	}
	return s
}

// Node returns the node with the given ID and true, or nil and false.
func (n *Network) Node(id int) (*Node, bool) {
	nd, ok := n.nodes[id]
	return nd, ok
}

// EdgeBetween returns the directed edge from→to and true, or nil and false.
func (n *Network) EdgeBetween(from, to int) (*Edge, bool) {
	e, ok := n.byPair[[2]int{from, to}]
	return e, ok
}

// Nodes returns all nodes sorted by ID for deterministic iteration.
// The returned slice contains pointers to the stored nodes.
func (n *Network) Nodes() []*Node {
	nodes := make([]*Node, 0, len(n.nodes))
	for _, nd := range n.nodes {
		nodes = append(nodes, nd)
	}
	slices.SortFunc(nodes, func(a, b *Node) int { return a.ID - b.ID })
	return nodes
}

// Edges returns all edges in insertion order.
// The returned slice is shared with the network; do not append to it.
func (n *Network) Edges() []*Edge { return n.edges }

// NodeCount returns the number of nodes.
func (n *Network) NodeCount() int { return len(n.nodes) }

// EdgeCount returns the number of edges.
func (n *Network) EdgeCount() int { return len(n.edges) }

// Out returns the IDs of nodes this node has edges to.
// The returned slice is a read-only view.
func (n *Network) Out(id int) []int { return n.outgoing[id] }

// In returns the IDs of nodes with edges to this node.
// The returned slice is a read-only view.
func (n *Network) In(id int) []int { return n.incoming[id] }

// NodesWithRole returns the IDs of all nodes carrying the given role,
// sorted ascending.
func (n *Network) NodesWithRole(role Role) []int {
	var ids []int
	for id, nd := range n.nodes {
		if nd.Role == role {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// =============================================================================
// Designated aggregate source and sink
// =============================================================================

// SetDesignated records the single aggregate source and sink node IDs used by
// flow metrics and MakeSwitches. Both nodes must exist.
func (n *Network) SetDesignated(source, sink int) error {
	if _, ok := n.nodes[source]; !ok {
		return apperrors.New(apperrors.ErrCodeInvalidParameter, "designated source %d does not exist", source)
	}
	if _, ok := n.nodes[sink]; !ok {
		return apperrors.New(apperrors.ErrCodeInvalidParameter, "designated sink %d does not exist", sink)
	}
	n.source = source
	n.sink = sink
	return nil
}

// Designated returns the aggregate source and sink IDs and whether they have
// been set.
func (n *Network) Designated() (source, sink int, ok bool) {
	return n.source, n.sink, n.source != NoNode && n.sink != NoNode
}

// Prepared reports whether the network has been through simulation prep.
func (n *Network) Prepared() bool {
	_, _, ok := n.Designated()
	return ok
}

// NextNodeID returns the smallest non-negative ID not currently in use.
// Lattice nodes are numbered contiguously from zero, so this is effectively
// len(nodes) for pipeline-built networks.
func (n *Network) NextNodeID() int {
	id := len(n.nodes)
	for {
		if _, ok := n.nodes[id]; !ok {
			return id
		}
		id++
	}
}
