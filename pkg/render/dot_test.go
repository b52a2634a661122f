package render

import (
	"strings"
	"testing"

	"github.com/AlexRiggs/hemo/pkg/vascular"
)

func testNetwork(t *testing.T) *vascular.Network {
	t.Helper()
	net, err := vascular.Build(2)
	if err != nil {
		t.Fatalf("Build(2) error: %v", err)
	}
	vascular.AssignLengths(net)
	vascular.AssignSymmetricRadii(net)
	return net
}

func TestToDOT_Structure(t *testing.T) {
	net := testNetwork(t)
	dot := ToDOT(net, Options{})

	if !strings.HasPrefix(dot, "digraph vascular {") {
		t.Error("output does not open a digraph")
	}
	if !strings.HasSuffix(strings.TrimSpace(dot), "}") {
		t.Error("output does not close the digraph")
	}
	if !strings.Contains(dot, "rankdir=LR;") {
		t.Error("output missing rankdir attribute")
	}
	if got := strings.Count(dot, "->"); got != net.EdgeCount() {
		t.Errorf("edge statements = %d, want %d", got, net.EdgeCount())
	}
}

func TestToDOT_RoleColors(t *testing.T) {
	net := testNetwork(t)
	dot := ToDOT(net, Options{})

	if !strings.Contains(dot, `fillcolor="#e06c75"`) {
		t.Error("output missing source color")
	}
	if !strings.Contains(dot, `fillcolor="#61afef"`) {
		t.Error("output missing sink color")
	}
}

func TestToDOT_DesignatedDoubleCircle(t *testing.T) {
	net := testNetwork(t)
	if err := vascular.PrepareForSimulation(net, vascular.DefaultPhysics()); err != nil {
		t.Fatalf("PrepareForSimulation: %v", err)
	}
	dot := ToDOT(net, Options{})

	if got := strings.Count(dot, "shape=doublecircle"); got != 2 {
		t.Errorf("doublecircle nodes = %d, want 2", got)
	}
}

func TestToDOT_DetailedLabels(t *testing.T) {
	net := testNetwork(t)

	plain := ToDOT(net, Options{})
	if strings.Contains(plain, "label=") {
		t.Error("plain output carries edge labels")
	}
	detailed := ToDOT(net, Options{Detailed: true})
	if !strings.Contains(detailed, "label=") {
		t.Error("detailed output missing edge labels")
	}
	if !strings.Contains(detailed, "r=") {
		t.Error("detailed labels missing radius")
	}
}

func TestToDOT_PenwidthScalesWithRadius(t *testing.T) {
	net := testNetwork(t)
	dot := ToDOT(net, Options{})

	// All radii equal after symmetric assignment, so every edge is drawn at
	// the maximum width.
	if got := strings.Count(dot, "penwidth=4.00"); got != net.EdgeCount() {
		t.Errorf("edges at max penwidth = %d, want %d", got, net.EdgeCount())
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="8pt" height="6pt" viewBox="0.00 0.00 8.00 6.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 8.00 6.00"`) {
		t.Errorf("viewBox not anchored at origin: %s", out)
	}
	if !strings.Contains(out, `width="8" height="6"`) {
		t.Errorf("pixel dimensions not rewritten: %s", out)
	}
	if !strings.Contains(out, "<g/></svg>") {
		t.Error("svg body was altered")
	}
}

func TestNormalizeViewBox_PassthroughWithoutViewBox(t *testing.T) {
	in := []byte(`<svg><g/></svg>`)
	if got := string(normalizeViewBox(in)); got != string(in) {
		t.Errorf("svg without viewBox changed: %s", got)
	}
}
