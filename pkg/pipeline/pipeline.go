// Package pipeline provides the core network generation pipeline for hemo.
//
// This package implements the complete build → rank → radii → prep →
// switches sequence used by the CLI and the HTTP API. Centralizing it keeps
// behavior identical across entry points and gives every caller the same
// caching, hooks, and logging.
//
// # Architecture
//
// The pipeline runs these stages over one mutable network:
//
//  1. Build: lattice synthesis with source/sink roles and edge direction
//  2. Lengths: Euclidean edge lengths
//  3. Rank: per-edge distances to the nearest source/sink roles (random mode)
//  4. Radii: symmetric or gamma-distributed radii with repair sweeps
//  5. Prep: super-source/sink, volume, transit time, state indices
//  6. Switches: optional greedy radius refinement (Refine option)
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{Resolution: 7, Seed: 3})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	net := result.Network
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	apperrors "github.com/AlexRiggs/hemo/pkg/errors"
	"github.com/AlexRiggs/hemo/pkg/vascular"
)

// =============================================================================
// Defaults - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)

	// MaxResolution caps lattice resolution: beyond this the O(E²) radius
	// passes dominate wall-clock time by hours, not minutes.
	MaxResolution = 40
)

// Stage names reported through observability hooks and Stats.
const (
	StageBuild    = "build"
	StageLengths  = "lengths"
	StageRank     = "rank"
	StageRadii    = "radii"
	StagePrep     = "prep"
	StageSwitches = "switches"
)

// =============================================================================
// Options
// =============================================================================

// Options contains all configuration for one network generation.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Resolution is the lattice resolution N (required, ≥ 1).
	Resolution int `json:"resolution"`

	// Seed seeds the radius distribution. Zero selects DefaultSeed.
	Seed uint64 `json:"seed,omitempty"`

	// Symmetric selects the uniform-radius network (no randomness).
	Symmetric bool `json:"symmetric,omitempty"`

	// Passes is the number of radius repair sweeps (random mode).
	// Zero selects the package default; negative is rejected. Use NoRepair
	// to request zero sweeps.
	Passes int `json:"passes,omitempty"`

	// NoRepair skips the repair sweeps entirely, keeping the raw gamma
	// draw. Mutually exclusive with a non-zero Passes.
	NoRepair bool `json:"no_repair,omitempty"`

	// GammaShape overrides the radius distribution shape parameter.
	GammaShape float64 `json:"gamma_shape,omitempty"`

	// Refine runs the switch-optimizer sweep after preparation.
	Refine bool `json:"refine,omitempty"`

	// Refresh bypasses the cache lookup (the result is still stored).
	Refresh bool `json:"refresh,omitempty"`

	// Physics holds the physical constants for preparation. The zero value
	// selects vascular.DefaultPhysics.
	Physics vascular.Physics `json:"-"`

	// Logger receives stage-level progress. Nil discards.
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Resolution < 1 {
		return apperrors.New(apperrors.ErrCodeInvalidParameter, "resolution must be positive, got %d", o.Resolution)
	}
	if o.Resolution > MaxResolution {
		return apperrors.New(apperrors.ErrCodeInvalidParameter, "resolution %d exceeds maximum %d", o.Resolution, MaxResolution)
	}
	if o.Passes < 0 {
		return apperrors.New(apperrors.ErrCodeInvalidParameter, "passes must be non-negative, got %d", o.Passes)
	}
	if o.NoRepair && o.Passes != 0 {
		return apperrors.New(apperrors.ErrCodeInvalidParameter, "no_repair and passes=%d are mutually exclusive", o.Passes)
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	if o.Passes == 0 && !o.NoRepair {
		o.Passes = vascular.DefaultRepairPasses
	}
	if o.GammaShape == 0 {
		o.GammaShape = vascular.DefaultGammaShape
	}
	if (o.Physics == vascular.Physics{}) {
		o.Physics = vascular.DefaultPhysics()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// physicsFingerprint identifies the physical constants inside the cache key,
// since they are baked into prepared edge attributes.
func (o *Options) physicsFingerprint() string {
	return fmt.Sprintf("%g|%g|%g|%g|%v",
		o.Physics.Viscosity, o.Physics.PressureDrop, o.Physics.TracerCoefficient, o.GammaShape, o.Refine)
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Network is the simulation-ready network.
	Network *vascular.Network

	// CacheHit reports whether the network came from cache.
	CacheHit bool

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount int
	EdgeCount int
	Stage     map[string]time.Duration
	Total     time.Duration
}
