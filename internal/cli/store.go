package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/AlexRiggs/hemo/pkg/netio"
)

// storeCommand creates the store management command.
func (c *CLI) storeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage persisted networks",
	}

	cmd.AddCommand(c.storeListCommand())
	cmd.AddCommand(c.storeExportCommand())
	cmd.AddCommand(c.storeDeleteCommand())

	return cmd
}

// storeListCommand creates the "store list" subcommand.
func (c *CLI) storeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List persisted networks, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.newStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("initialize store: %w", err)
			}
			defer st.Close(cmd.Context())

			summaries, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				printInfo("Store is empty")
				return nil
			}

			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			rows := make([][]string, 0, len(summaries))
			for _, s := range summaries {
				mode := "random"
				if s.Symmetric {
					mode = "symmetric"
				}
				rows = append(rows, []string{
					s.ID,
					fmt.Sprintf("%d", s.Resolution),
					fmt.Sprintf("%d", s.Seed),
					mode,
					fmt.Sprintf("%d", s.EdgeCount),
					s.CreatedAt.Format(time.RFC3339),
				})
			}

			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("ID", "N", "Seed", "Mode", "Edges", "Created").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == -1 {
						return headerStyle
					}
					return lipgloss.NewStyle()
				})
			fmt.Println(t.Render())
			return nil
		},
	}
}

// storeExportCommand creates the "store export" subcommand.
func (c *CLI) storeExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Write a persisted network to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.newStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("initialize store: %w", err)
			}
			defer st.Close(cmd.Context())

			record, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			net, err := netio.ToNetwork(record.Network)
			if err != nil {
				return err
			}

			outputPath := output
			if outputPath == "" {
				outputPath = args[0] + ".json"
			}
			if err := netio.WriteFile(net, outputPath); err != nil {
				return fmt.Errorf("write output %s: %w", outputPath, err)
			}

			printSuccess("Network exported")
			printFile(outputPath)
			printStats(net.NodeCount(), net.EdgeCount(), false)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <id>.json)")

	return cmd
}

// storeDeleteCommand creates the "store delete" subcommand.
func (c *CLI) storeDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a persisted network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.newStore(cmd.Context())
			if err != nil {
				return fmt.Errorf("initialize store: %w", err)
			}
			defer st.Close(cmd.Context())

			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printSuccess("Deleted %s", args[0])
			return nil
		},
	}
}
