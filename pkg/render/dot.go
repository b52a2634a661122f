// Package render converts vascular networks to Graphviz DOT and renders
// them to SVG for quick inspection. Node color encodes role; edge width
// scales with vessel radius.
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/AlexRiggs/hemo/pkg/vascular"
)

// Options configures DOT rendering.
type Options struct {
	// Detailed includes per-edge radius and distance attributes as labels.
	// When false, edges are unlabeled.
	Detailed bool
}

// ToDOT converts a network to Graphviz DOT format.
//
// Sources are red, sinks blue, internal nodes white. Designated aggregate
// source/sink nodes (added during preparation) are drawn as doublecircles.
// Edge penwidth is proportional to radius, normalized so the thickest edge
// is drawn at width 4.
func ToDOT(net *vascular.Network, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph vascular {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10];\n")
	buf.WriteString("\n")

	source, sink, designated := net.Designated()

	for _, n := range net.Nodes() {
		attrs := nodeAttrs(n)
		if designated && (n.ID == source || n.ID == sink) {
			attrs = append(attrs, "shape=doublecircle")
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	maxRadius := 0.0
	for _, e := range net.Edges() {
		if e.Radius > maxRadius {
			maxRadius = e.Radius
		}
	}

	buf.WriteString("\n")
	for _, e := range net.Edges() {
		attrs := edgeAttrs(e, maxRadius, opts.Detailed)
		fmt.Fprintf(&buf, "  %d -> %d [%s];\n", e.From, e.To, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n *vascular.Node) []string {
	switch n.Role {
	case vascular.RoleSource:
		return []string{"fillcolor=\"#e06c75\""}
	case vascular.RoleSink:
		return []string{"fillcolor=\"#61afef\""}
	default:
		return nil
	}
}

func edgeAttrs(e *vascular.Edge, maxRadius float64, detailed bool) []string {
	var attrs []string
	if maxRadius > 0 {
		attrs = append(attrs, fmt.Sprintf("penwidth=%.2f", 0.5+3.5*e.Radius/maxRadius))
	}
	if detailed {
		attrs = append(attrs, fmt.Sprintf("label=%q",
			fmt.Sprintf("r=%.4g\nsrc=%d sink=%d", e.Radius, e.SrcDist, e.SinkDist)))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the opening svg tag so the viewBox is anchored at
// the origin with explicit pixel dimensions. Graphviz emits point units that
// some viewers scale inconsistently.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
