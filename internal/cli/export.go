package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/AlexRiggs/hemo/pkg/errors"
	"github.com/AlexRiggs/hemo/pkg/netio"
	"github.com/AlexRiggs/hemo/pkg/render"
)

// Export formats.
const (
	formatDOT = "dot"
	formatSVG = "svg"
)

// exportCommand creates the export command for visualization output.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "export [network.json]",
		Short: "Export a network as Graphviz DOT or SVG",
		Long: `Export a network for visualization.

Converts a network file (produced by 'generate') to Graphviz DOT or
renders it directly to SVG. Source nodes are red, sinks blue, and edge
width scales with vessel radius.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd, args[0], format, output, detailed)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatSVG, "output format: svg (default), dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include radius and distance labels on edges")

	return cmd
}

// runExport loads the network and writes the requested representation.
func (c *CLI) runExport(cmd *cobra.Command, input, format, output string, detailed bool) error {
	net, err := netio.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load network %s: %w", input, err)
	}

	dot := render.ToDOT(net, render.Options{Detailed: detailed})

	var data []byte
	switch format {
	case formatDOT:
		data = []byte(dot)
	case formatSVG:
		spinner := newSpinnerWithContext(cmd.Context(), "Rendering SVG...")
		spinner.Start()
		data, err = render.RenderSVG(cmd.Context(), dot)
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("render SVG: %w", err)
		}
		spinner.Stop()
	default:
		return apperrors.New(apperrors.ErrCodeInvalidParameter, "unknown format %q (want dot or svg)", format)
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + "." + format
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Export complete")
	printFile(outputPath)
	printStats(net.NodeCount(), net.EdgeCount(), false)

	return nil
}
