package vascular

import (
	"testing"
)

// chainNetwork builds source → 1 → 2 → sink with an isolated 4 → 5 edge.
func chainNetwork(t *testing.T) *Network {
	t.Helper()
	net := NewNetwork(2)
	for _, nd := range []Node{
		{ID: 0, Role: RoleSource},
		{ID: 1},
		{ID: 2},
		{ID: 3, Role: RoleSink},
		{ID: 4},
		{ID: 5},
	} {
		if err := net.AddNode(nd); err != nil {
			t.Fatalf("AddNode(%d): %v", nd.ID, err)
		}
	}
	for _, pair := range [][2]int{{0, 1}, {1, 2}, {2, 3}, {4, 5}} {
		if _, err := net.AddEdge(pair[0], pair[1]); err != nil {
			t.Fatalf("AddEdge(%d,%d): %v", pair[0], pair[1], err)
		}
	}
	return net
}

func TestAssignDistances_Chain(t *testing.T) {
	net := chainNetwork(t)
	AssignDistances(net)

	tests := []struct {
		from, to                     int
		srcDist, sinkDist, centerDist int
	}{
		{0, 1, 0, 2, 2},
		{1, 2, 1, 1, 0},
		{2, 3, 2, 0, 2},
	}
	for _, tt := range tests {
		e, ok := net.EdgeBetween(tt.from, tt.to)
		if !ok {
			t.Fatalf("edge %d→%d missing", tt.from, tt.to)
		}
		if e.SrcDist != tt.srcDist {
			t.Errorf("edge %d→%d SrcDist = %d, want %d", tt.from, tt.to, e.SrcDist, tt.srcDist)
		}
		if e.SinkDist != tt.sinkDist {
			t.Errorf("edge %d→%d SinkDist = %d, want %d", tt.from, tt.to, e.SinkDist, tt.sinkDist)
		}
		if e.CenterDist != tt.centerDist {
			t.Errorf("edge %d→%d CenterDist = %d, want %d", tt.from, tt.to, e.CenterDist, tt.centerDist)
		}
	}
}

func TestAssignDistances_UnreachableFallsBackToZero(t *testing.T) {
	net := chainNetwork(t)
	AssignDistances(net)

	// 4→5 has no path to or from any role node.
	e, _ := net.EdgeBetween(4, 5)
	if e.SrcDist != 0 || e.SinkDist != 0 || e.CenterDist != 0 {
		t.Errorf("isolated edge distances = (%d,%d,%d), want (0,0,0)", e.SrcDist, e.SinkDist, e.CenterDist)
	}
}

func TestAssignDistances_CenterDistIdentity(t *testing.T) {
	net, err := Build(4)
	if err != nil {
		t.Fatalf("Build(4) error: %v", err)
	}
	AssignDistances(net)
	for _, e := range net.Edges() {
		if want := absInt(e.SrcDist - e.SinkDist); e.CenterDist != want {
			t.Errorf("edge %d→%d CenterDist = %d, want |%d-%d| = %d",
				e.From, e.To, e.CenterDist, e.SrcDist, e.SinkDist, want)
		}
	}
}

func TestAssignDistances_LatticeSourceEdges(t *testing.T) {
	net, err := Build(3)
	if err != nil {
		t.Fatalf("Build(3) error: %v", err)
	}
	AssignDistances(net)

	// Every edge leaving a source-role node is zero hops from that source.
	for _, e := range net.Edges() {
		from, _ := net.Node(e.From)
		if from.Role == RoleSource && e.SrcDist != 0 {
			t.Errorf("edge %d→%d leaves a source but SrcDist = %d", e.From, e.To, e.SrcDist)
		}
		to, _ := net.Node(e.To)
		if to.Role == RoleSink && e.SinkDist != 0 {
			t.Errorf("edge %d→%d enters a sink but SinkDist = %d", e.From, e.To, e.SinkDist)
		}
	}
}
