package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AlexRiggs/hemo/pkg/netio"
	"github.com/AlexRiggs/hemo/pkg/observability"
	"github.com/AlexRiggs/hemo/pkg/pipeline"
	"github.com/AlexRiggs/hemo/pkg/store"
)

// generateCommand creates the generate command for network synthesis.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		save    bool
		runs    int
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a simulation-ready vascular network",
		Long: `Generate a vascular lattice network.

The generate command builds an N×N×N cubic lattice with checkerboard
source/sink roles on opposite faces, ranks every vessel by hop distance,
assigns radii (uniform or gamma-distributed with repair sweeps), and
prepares the network for perfusion simulation.

Results are cached locally, so repeated runs with identical parameters
return immediately. Use --runs to generate a seed sweep in one invocation.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runs > 1 {
				return c.runGenerateBatch(cmd.Context(), opts, runs, noCache, save)
			}
			return c.runGenerate(cmd.Context(), opts, output, noCache, save)
		},
	}

	cmd.Flags().IntVarP(&opts.Resolution, "resolution", "n", 7, "lattice resolution N (nodes per axis)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed (0 = default)")
	cmd.Flags().BoolVar(&opts.Symmetric, "symmetric", false, "uniform radii instead of gamma-distributed")
	cmd.Flags().IntVar(&opts.Passes, "passes", 0, "radius repair sweeps (0 = default)")
	cmd.Flags().BoolVar(&opts.NoRepair, "no-repair", false, "skip repair sweeps, keeping the raw gamma draw")
	cmd.Flags().Float64Var(&opts.GammaShape, "shape", 0, "gamma shape parameter (0 = default)")
	cmd.Flags().BoolVar(&opts.Refine, "refine", false, "run the switch-optimizer sweep after preparation")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "regenerate even on a cache hit")
	cmd.Flags().IntVar(&runs, "runs", 1, "number of consecutive seeds to generate")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: hemo_n<N>_s<seed>.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&save, "save", false, "persist the network in the local store")

	return cmd
}

// runGenerate executes a single pipeline run and writes the result.
func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, output string, noCache, save bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.Physics = c.physics()
	if opts.GammaShape == 0 {
		opts.GammaShape = c.Config.Generation.GammaShape
	}
	if opts.Passes == 0 && !opts.NoRepair {
		opts.Passes = c.Config.Generation.RepairPasses
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating %d³ network...", opts.Resolution))
	spinner.Start()
	observability.SetGeneratorHooks(stageHooks{spinner: spinner})
	defer observability.Reset()
	prog := newProgress(c.Logger)

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return fmt.Errorf("generate network: %w", err)
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Generated %d edges", result.Stats.EdgeCount))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = fmt.Sprintf("hemo_n%d_s%d.json", opts.Resolution, opts.Seed)
	}
	if err := netio.WriteFile(result.Network, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Network generated")
	printFile(outputPath)
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheHit)

	if save {
		id, err := c.saveNetwork(ctx, result, opts)
		if err != nil {
			return err
		}
		printDetail("Stored as %s", id)
	}

	printNewline()
	printNextStep("Metrics", "hemo metrics "+outputPath)

	return nil
}

// saveNetwork persists a generated network in the configured store.
func (c *CLI) saveNetwork(ctx context.Context, result *pipeline.Result, opts pipeline.Options) (string, error) {
	st, err := c.newStore(ctx)
	if err != nil {
		return "", fmt.Errorf("initialize store: %w", err)
	}
	defer st.Close(ctx)

	record := &store.Record{
		Resolution: opts.Resolution,
		Seed:       opts.Seed,
		Symmetric:  opts.Symmetric,
		Passes:     opts.Passes,
		Network:    netio.FromNetwork(result.Network),
	}
	id, err := st.Put(ctx, record)
	if err != nil {
		return "", fmt.Errorf("store network: %w", err)
	}
	return id, nil
}
