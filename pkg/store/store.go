// Package store persists generated networks with their generation
// parameters. Backends: file (JSON records in a directory, CLI default) and
// MongoDB (shared deployments).
package store

import (
	"context"
	"time"

	"github.com/AlexRiggs/hemo/pkg/netio"
)

// Record is a stored network together with the parameters that produced it.
type Record struct {
	ID         string         `json:"id" bson:"_id"`
	CreatedAt  time.Time      `json:"created_at" bson:"created_at"`
	Resolution int            `json:"resolution" bson:"resolution"`
	Seed       uint64         `json:"seed" bson:"seed"`
	Symmetric  bool           `json:"symmetric" bson:"symmetric"`
	Passes     int            `json:"passes" bson:"passes"`
	Network    netio.Document `json:"network" bson:"network"`
}

// Summary is a Record without the network body, for listings.
type Summary struct {
	ID         string    `json:"id" bson:"_id"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	Resolution int       `json:"resolution" bson:"resolution"`
	Seed       uint64    `json:"seed" bson:"seed"`
	Symmetric  bool      `json:"symmetric" bson:"symmetric"`
	Passes     int       `json:"passes" bson:"passes"`
	NodeCount  int       `json:"node_count" bson:"node_count"`
	EdgeCount  int       `json:"edge_count" bson:"edge_count"`
}

// summarize strips the network body from a record.
func summarize(r Record) Summary {
	return Summary{
		ID:         r.ID,
		CreatedAt:  r.CreatedAt,
		Resolution: r.Resolution,
		Seed:       r.Seed,
		Symmetric:  r.Symmetric,
		Passes:     r.Passes,
		NodeCount:  len(r.Network.Nodes),
		EdgeCount:  len(r.Network.Edges),
	}
}

// Store is the interface all persistence backends implement.
type Store interface {
	// Put stores a record. An empty ID is assigned a fresh UUID; the
	// (possibly assigned) ID is returned.
	Put(ctx context.Context, r *Record) (string, error)

	// Get retrieves a record by ID. A missing record reports NOT_FOUND.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns summaries of all records, newest first.
	List(ctx context.Context) ([]Summary, error)

	// Delete removes a record. A missing record reports NOT_FOUND.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
