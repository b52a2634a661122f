package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/AlexRiggs/hemo/pkg/errors"
	"github.com/AlexRiggs/hemo/pkg/netio"
	"github.com/AlexRiggs/hemo/pkg/vascular"
)

// metricsCommand creates the metrics command for derived network quantities.
func (c *CLI) metricsCommand() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "metrics [network.json]",
		Short: "Compute flow, resistance, surface area, and volume",
		Long: `Compute derived metrics for a generated network.

Reads a network file (produced by 'generate') or a stored network (--id)
and prints total flow, total resistance, luminal surface area, and total
vessel volume. Flow and resistance require a prepared network with a
designated source and sink.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(args) == 0) == (id == "") {
				return apperrors.New(apperrors.ErrCodeInvalidParameter, "provide exactly one of a network file or --id")
			}
			net, err := c.loadNetwork(cmd.Context(), args, id)
			if err != nil {
				return err
			}
			return c.runMetrics(net)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "load the network from the store instead of a file")

	return cmd
}

// loadNetwork reads a network from a file argument or the store.
func (c *CLI) loadNetwork(ctx context.Context, args []string, id string) (*vascular.Network, error) {
	if id != "" {
		st, err := c.newStore(ctx)
		if err != nil {
			return nil, fmt.Errorf("initialize store: %w", err)
		}
		defer st.Close(ctx)

		record, err := st.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		return netio.ToNetwork(record.Network)
	}
	net, err := netio.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("load network %s: %w", args[0], err)
	}
	return net, nil
}

// runMetrics prints the derived quantities for a network.
func (c *CLI) runMetrics(net *vascular.Network) error {
	phys := c.physics()

	fmt.Println(StyleTitle.Render("Network Metrics"))
	printKeyValue("nodes", fmt.Sprintf("%d", net.NodeCount()))
	printKeyValue("edges", fmt.Sprintf("%d", net.EdgeCount()))

	surface, err := vascular.SurfaceArea(net)
	if err != nil {
		return err
	}
	printKeyValue("surface area", fmt.Sprintf("%.6g", surface))

	volume, err := vascular.TotalVolume(net)
	if err != nil {
		return err
	}
	printKeyValue("total volume", fmt.Sprintf("%.6g", volume))

	flow, err := vascular.TotalFlow(net)
	if apperrors.Is(err, apperrors.ErrCodeMissingPrecondition) {
		printDetail("flow and resistance need a prepared network (run 'hemo generate')")
		return nil
	}
	if err != nil {
		return err
	}
	printKeyValue("total flow", fmt.Sprintf("%.6g", flow))

	resistance, err := vascular.TotalResistance(net, phys)
	if apperrors.Is(err, apperrors.ErrCodeUndefinedMetric) {
		printWarning("resistance undefined: total flow is zero")
		return nil
	}
	if err != nil {
		return err
	}
	printKeyValue("total resistance", fmt.Sprintf("%.6g", resistance))

	return nil
}
