// Package list implements the list command and its per-resource subcommands.
package list

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/vinoteca/cmd/application"
)

// NewCommand creates the list command with app dependencies.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list [resource]",
		GroupID: "core",
		Short:   "List resources from the catalog",
		Long: `List displays resources from the wine catalog.

Available subcommands:
  wineries    - Wineries and how many wines each produces
  varietals   - Grape varietals and the wines made from them
  wines       - Wines with their winery, varietals and vintages`,
		Example: `  vinoteca list wines                          # List all wines
  vinoteca list wines --vintage 2020 --sort name  # Wines of the 2020 vintage by name
  vinoteca list wineries --sort wine_count --desc # Most productive wineries first
  vinoteca list varietals <id>                    # Show one varietal`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return fmt.Errorf("unknown resource: %s", args[0])
		},
	}

	cmd.AddCommand(NewWineriesCommand(app))
	cmd.AddCommand(NewVarietalsCommand(app))
	cmd.AddCommand(NewWinesCommand(app))

	return cmd
}
