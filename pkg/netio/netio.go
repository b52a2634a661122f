// Package netio provides the canonical serialization format for vascular
// networks. Used for files, caching, storage, and API responses.
//
// The format is attribute-complete: every node attribute, every edge
// attribute, and every graph-level attribute survives a round trip, so
// import → export → re-import reproduces an identical structure (floats
// bit-for-bit; encoding/json emits the shortest representation that parses
// back to the same float64).
package netio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/AlexRiggs/hemo/pkg/vascular"
)

// =============================================================================
// Wire types
// =============================================================================

// Document is the serialized form of a network with its graph-level
// attributes. Source/Sink are pointers so an unprepared network (no
// designated aggregate nodes) is distinguishable from node 0.
type Document struct {
	Resolution int     `json:"n" bson:"n"`
	Delta      float64 `json:"delta" bson:"delta"`
	Source     *int    `json:"source,omitempty" bson:"source,omitempty"`
	Sink       *int    `json:"sink,omitempty" bson:"sink,omitempty"`
	Nodes      []Node  `json:"nodes" bson:"nodes"`
	Edges      []Edge  `json:"edges" bson:"edges"`
}

// Node is the serialized node with position and role.
type Node struct {
	ID   int        `json:"id" bson:"id"`
	Pos  [3]float64 `json:"pos" bson:"pos"`
	Role string     `json:"role" bson:"role"`
}

// Edge is the serialized directed edge with all scalar attributes.
type Edge struct {
	From               int     `json:"from" bson:"from"`
	To                 int     `json:"to" bson:"to"`
	Length             float64 `json:"length" bson:"length"`
	Radius             float64 `json:"radius" bson:"radius"`
	Volume             float64 `json:"volume" bson:"volume"`
	InverseTransitTime float64 `json:"inverse_transit_time" bson:"inverse_transit_time"`
	Idx                int     `json:"idx" bson:"idx"`
	SrcDist            int     `json:"src_dist" bson:"src_dist"`
	SinkDist           int     `json:"sink_dist" bson:"sink_dist"`
	CenterDist         int     `json:"center_dist" bson:"center_dist"`
}

// =============================================================================
// Network ↔ Document conversion
// =============================================================================

// FromNetwork converts a network to its serialization format.
// Nodes are sorted by ID and edges keep insertion order, so output is
// deterministic for a given network.
func FromNetwork(net *vascular.Network) Document {
	doc := Document{
		Resolution: net.Resolution(),
		Delta:      net.Delta(),
		Nodes:      make([]Node, 0, net.NodeCount()),
		Edges:      make([]Edge, 0, net.EdgeCount()),
	}
	if source, sink, ok := net.Designated(); ok {
		doc.Source = &source
		doc.Sink = &sink
	}
	for _, nd := range net.Nodes() {
		doc.Nodes = append(doc.Nodes, Node{ID: nd.ID, Pos: nd.Pos, Role: nd.Role.String()})
	}
	for _, e := range net.Edges() {
		doc.Edges = append(doc.Edges, Edge{
			From:               e.From,
			To:                 e.To,
			Length:             e.Length,
			Radius:             e.Radius,
			Volume:             e.Volume,
			InverseTransitTime: e.InverseTransitTime,
			Idx:                e.Idx,
			SrcDist:            e.SrcDist,
			SinkDist:           e.SinkDist,
			CenterDist:         e.CenterDist,
		})
	}
	return doc
}

// ToNetwork rebuilds a network from its serialized form.
// Returns an error if the document violates graph constraints (duplicate
// nodes, edges referencing missing nodes).
func ToNetwork(doc Document) (*vascular.Network, error) {
	net := vascular.NewNetwork(doc.Resolution)
	for _, nd := range doc.Nodes {
		node := vascular.Node{ID: nd.ID, Pos: nd.Pos, Role: vascular.ParseRole(nd.Role)}
		if err := net.AddNode(node); err != nil {
			return nil, fmt.Errorf("add node %d: %w", nd.ID, err)
		}
	}
	for _, ed := range doc.Edges {
		e, err := net.AddEdge(ed.From, ed.To)
		if err != nil {
			return nil, fmt.Errorf("add edge %d→%d: %w", ed.From, ed.To, err)
		}
		e.Length = ed.Length
		e.Radius = ed.Radius
		e.Volume = ed.Volume
		e.InverseTransitTime = ed.InverseTransitTime
		e.Idx = ed.Idx
		e.SrcDist = ed.SrcDist
		e.SinkDist = ed.SinkDist
		e.CenterDist = ed.CenterDist
	}
	if doc.Source != nil && doc.Sink != nil {
		if err := net.SetDesignated(*doc.Source, *doc.Sink); err != nil {
			return nil, err
		}
	}
	return net, nil
}

// =============================================================================
// File and stream helpers
// =============================================================================

// Marshal converts a network to indented JSON bytes.
func Marshal(net *vascular.Network) ([]byte, error) {
	return json.MarshalIndent(FromNetwork(net), "", "  ")
}

// Unmarshal decodes JSON bytes into a network.
func Unmarshal(data []byte) (*vascular.Network, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToNetwork(doc)
}

// Write writes a network as JSON to an io.Writer.
func Write(net *vascular.Network, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(FromNetwork(net)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes a network to a JSON file with 0644 permissions.
func WriteFile(net *vascular.Network, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(net, f)
}

// Read decodes a JSON network from an io.Reader.
func Read(r io.Reader) (*vascular.Network, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToNetwork(doc)
}

// ReadFile reads a JSON file and returns the decoded network.
func ReadFile(path string) (*vascular.Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
