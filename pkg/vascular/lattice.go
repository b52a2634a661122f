package vascular

import (
	apperrors "github.com/AlexRiggs/hemo/pkg/errors"
)

// Build synthesizes an N×N×N lattice network in the unit cube.
//
// Nodes sit at positions (δ(i+1), δ(j+1), δ(k+1)) with δ = 1/(N+1), numbered
// contiguously from zero with the z grid index varying fastest. Each node
// connects to its positive-direction neighbor along each axis, giving a
// 6-connected grid restricted to forward edges.
//
// On the z=0 face, nodes whose (x, y) grid indices share parity become
// sources; the matching (x, y) nodes on the z=N-1 face become sinks (for N=1
// the two faces coincide and the sink role wins). Every edge incident to a
// source or sink is then re-oriented so that no edge terminates at a source
// or originates at a sink.
//
// Returns INVALID_PARAMETER for n < 1.
func Build(n int) (*Network, error) {
	if n < 1 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidParameter, "lattice resolution must be positive, got %d", n)
	}

	net := NewNetwork(n)
	delta := net.Delta()
	id := func(x, y, z int) int { return (x*n+y)*n + z }

	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				role := RoleInternal
				if x%2 == y%2 {
					if z == 0 {
						role = RoleSource
					}
					if z == n-1 {
						role = RoleSink
					}
				}
				node := Node{
					ID: id(x, y, z),
					Pos: [3]float64{
						delta * float64(x+1),
						delta * float64(y+1),
						delta * float64(z+1),
					},
					Role: role,
				}
				if err := net.AddNode(node); err != nil {
					return nil, err
				}
			}
		}
	}

	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			for z := 0; z < n; z++ {
				if x < n-1 {
					if _, err := net.AddEdge(id(x, y, z), id(x+1, y, z)); err != nil {
						return nil, err
					}
				}
				if y < n-1 {
					if _, err := net.AddEdge(id(x, y, z), id(x, y+1, z)); err != nil {
						return nil, err
					}
				}
				if z < n-1 {
					if _, err := net.AddEdge(id(x, y, z), id(x, y, z+1)); err != nil {
						return nil, err
					}
				}
			}
		}
	}

	enforceDirections(net)
	return net, nil
}

// enforceDirections reverses every edge that points into a source-role node
// or out of a sink-role node, so flow can only leave sources and enter sinks.
func enforceDirections(net *Network) {
	for _, e := range net.Edges() {
		from, _ := net.Node(e.From)
		to, _ := net.Node(e.To)
		if to.Role == RoleSource || from.Role == RoleSink {
			net.ReverseEdge(e)
		}
	}
}
