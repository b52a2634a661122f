package vascular

// distanceOracle memoizes unweighted shortest-path distance maps per anchor
// node, one BFS per (anchor, direction). The reference behavior recomputes a
// shortest-path query per edge; sharing the maps across edges changes only
// the running time.
type distanceOracle struct {
	net *Network
	fwd map[int]map[int]int // anchor → {node: hops(anchor→node)}
	rev map[int]map[int]int // anchor → {node: hops(node→anchor)}
}

func newDistanceOracle(net *Network) *distanceOracle {
	return &distanceOracle{
		net: net,
		fwd: make(map[int]map[int]int),
		rev: make(map[int]map[int]int),
	}
}

// from returns hop distances from anchor to every reachable node.
func (o *distanceOracle) from(anchor int) map[int]int {
	if d, ok := o.fwd[anchor]; ok {
		return d
	}
	d := bfs(anchor, o.net.Out)
	o.fwd[anchor] = d
	return d
}

// to returns hop distances from every node that can reach anchor, by running
// the search over reversed edges.
func (o *distanceOracle) to(anchor int) map[int]int {
	if d, ok := o.rev[anchor]; ok {
		return d
	}
	d := bfs(anchor, o.net.In)
	o.rev[anchor] = d
	return d
}

// bfs returns hop distances from start over the given neighbor function.
// Nodes absent from the result are unreachable; callers branch on the lookup
// instead of catching anything.
func bfs(start int, neighbors func(int) []int) map[int]int {
	dist := map[int]int{start: 0}
	queue := []int{start}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range neighbors(u) {
			if _, seen := dist[v]; seen {
				continue
			}
			dist[v] = dist[u] + 1
			queue = append(queue, v)
		}
	}
	return dist
}

// AssignDistances annotates every edge (u, v) with:
//
//   - SrcDist: minimum hops from any source-role node to u, over the source
//     nodes that can reach u; 0 if none can (explicit fallback, not a failure)
//   - SinkDist: minimum hops from v to any sink-role node it can reach;
//     same zero fallback
//   - CenterDist: |SrcDist - SinkDist|
//
// Distances use the directed topology, so sink-to-source queries are
// routinely unreachable; that is expected and absorbed by the fallback.
func AssignDistances(net *Network) {
	sources := net.NodesWithRole(RoleSource)
	sinks := net.NodesWithRole(RoleSink)
	oracle := newDistanceOracle(net)

	for _, e := range net.Edges() {
		srcDist, srcFound := 0, false
		for _, s := range sources {
			if d, ok := oracle.from(s)[e.From]; ok && (!srcFound || d < srcDist) {
				srcDist, srcFound = d, true
			}
		}
		sinkDist, sinkFound := 0, false
		for _, t := range sinks {
			if d, ok := oracle.to(t)[e.To]; ok && (!sinkFound || d < sinkDist) {
				sinkDist, sinkFound = d, true
			}
		}
		e.SrcDist = srcDist
		e.SinkDist = sinkDist
		e.CenterDist = absInt(srcDist - sinkDist)
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
