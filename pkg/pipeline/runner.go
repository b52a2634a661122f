package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/AlexRiggs/hemo/pkg/cache"
	apperrors "github.com/AlexRiggs/hemo/pkg/errors"
	"github.com/AlexRiggs/hemo/pkg/netio"
	"github.com/AlexRiggs/hemo/pkg/observability"
	"github.com/AlexRiggs/hemo/pkg/vascular"
)

// =============================================================================
// Runner
// =============================================================================

// Runner executes the network generation pipeline with caching.
// A single Runner is safe for concurrent use as long as the underlying
// cache is.
type Runner struct {
	cache  cache.Cache
	logger *log.Logger
}

// NewRunner creates a Runner. A nil cache disables caching; a nil logger
// discards output.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{cache: c, logger: logger}
}

// Close releases the underlying cache.
func (r *Runner) Close() error {
	return r.cache.Close()
}

// Execute runs the full pipeline for the given options.
//
// The prepared network is cached keyed on every input that shapes it
// (resolution, seed, mode, passes, physics). A hit skips generation
// entirely; Options.Refresh forces regeneration but still refreshes the
// cached entry.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	logger := opts.Logger
	hooks := observability.Generator()
	key := cache.NetworkKey(opts.Resolution, opts.Seed, opts.Symmetric, opts.Passes, opts.physicsFingerprint())

	if !opts.Refresh {
		data, ok, cerr := r.cache.Get(ctx, key)
		if cerr != nil {
			logger.Warn("cache read failed", "key", key, "error", cerr)
		}
		if ok {
			net, err := netio.Unmarshal(data)
			if err == nil {
				observability.Cache().OnCacheHit(ctx, cache.KeyTypeNetwork)
				logger.Debug("cache hit", "key", key, "edges", net.EdgeCount())
				return &Result{
					Network:  net,
					CacheHit: true,
					Stats: Stats{
						NodeCount: net.NodeCount(),
						EdgeCount: net.EdgeCount(),
						Stage:     map[string]time.Duration{},
					},
				}, nil
			}
			// A corrupt entry falls through to regeneration.
			logger.Warn("discarding unreadable cache entry", "key", key, "error", err)
			_ = r.cache.Delete(ctx, key)
		}
		observability.Cache().OnCacheMiss(ctx, cache.KeyTypeNetwork)
	}

	hooks.OnGenerateStart(ctx, opts.Resolution, opts.Seed, opts.Symmetric)
	start := time.Now()

	net, stats, err := r.generate(ctx, opts)
	total := time.Since(start)
	if err != nil {
		hooks.OnGenerateComplete(ctx, 0, 0, total, err)
		return nil, err
	}
	stats.Total = total
	hooks.OnGenerateComplete(ctx, stats.NodeCount, stats.EdgeCount, total, nil)

	if data, err := netio.Marshal(net); err == nil {
		if err := r.cache.Set(ctx, key, data, cache.DefaultTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, cache.KeyTypeNetwork, len(data))
		} else {
			logger.Warn("cache write failed", "key", key, "error", err)
		}
	}

	return &Result{Network: net, Stats: stats}, nil
}

// generate runs the pipeline stages in order and times each one.
func (r *Runner) generate(ctx context.Context, opts Options) (*vascular.Network, Stats, error) {
	stats := Stats{Stage: map[string]time.Duration{}}
	var net *vascular.Network

	run := func(stage string, fn func() error) error {
		if err := ctx.Err(); err != nil {
			return apperrors.Wrap(apperrors.ErrCodeInternal, err, "pipeline canceled before %s", stage)
		}
		edges := 0
		if net != nil {
			edges = net.EdgeCount()
		}
		observability.Generator().OnStageStart(ctx, stage, edges)
		begin := time.Now()
		err := fn()
		elapsed := time.Since(begin)
		stats.Stage[stage] = elapsed
		observability.Generator().OnStageComplete(ctx, stage, elapsed, err)
		opts.Logger.Debug("stage complete", "stage", stage, "duration", elapsed, "error", err)
		return err
	}

	if err := run(StageBuild, func() error {
		var err error
		net, err = vascular.Build(opts.Resolution)
		return err
	}); err != nil {
		return nil, stats, err
	}

	if err := run(StageLengths, func() error {
		vascular.AssignLengths(net)
		return nil
	}); err != nil {
		return nil, stats, err
	}

	if opts.Symmetric {
		if err := run(StageRadii, func() error {
			vascular.AssignSymmetricRadii(net)
			return nil
		}); err != nil {
			return nil, stats, err
		}
	} else {
		if err := run(StageRank, func() error {
			vascular.AssignDistances(net)
			return nil
		}); err != nil {
			return nil, stats, err
		}
		if err := run(StageRadii, func() error {
			return vascular.AssignRandomRadii(net, vascular.RadiusOptions{
				Shape:  opts.GammaShape,
				Passes: opts.Passes,
				Seed:   opts.Seed,
			})
		}); err != nil {
			return nil, stats, err
		}
	}

	if err := run(StagePrep, func() error {
		return vascular.PrepareForSimulation(net, opts.Physics)
	}); err != nil {
		return nil, stats, err
	}

	if opts.Refine {
		if err := run(StageSwitches, func() error {
			return vascular.MakeSwitches(net)
		}); err != nil {
			return nil, stats, err
		}
	}

	stats.NodeCount = net.NodeCount()
	stats.EdgeCount = net.EdgeCount()
	return net, stats, nil
}
