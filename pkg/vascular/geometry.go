package vascular

import "math"

// AssignLengths sets every edge length to the Euclidean distance between its
// endpoint positions. Pure function of node positions; runs immediately after
// Build and before any radius or preparation stage.
func AssignLengths(net *Network) {
	for _, e := range net.Edges() {
		from, _ := net.Node(e.From)
		to, _ := net.Node(e.To)
		e.Length = distance(from.Pos, to.Pos)
	}
}

func distance(a, b [3]float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
