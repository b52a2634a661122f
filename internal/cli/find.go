package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AlexRiggs/hemo/pkg/search"
)

// findCommand creates the find command for locating output files by name.
func (c *CLI) findCommand() *cobra.Command {
	var root string

	cmd := &cobra.Command{
		Use:   "find <substring>",
		Short: "Locate a network file or directory by name substring",
		Long: `Locate a file or directory whose name contains the given substring.

Searches the given root recursively, deepest directories first, and prints
the first match. Useful for finding a generated network inside a tree of
sweep outputs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := search.FindPath(root, args[0])
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}

	cmd.Flags().StringVar(&root, "root", ".", "directory to search")

	return cmd
}
