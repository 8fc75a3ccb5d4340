package list

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/vinoteca/cmd/application"
	"github.com/agentstation/vinoteca/internal/cmd/table"
	"github.com/agentstation/vinoteca/pkg/catalogs"
)

// NewWineriesCommand creates the list wineries subcommand.
func NewWineriesCommand(app application.Application) *cobra.Command {
	flags := &Flags{}
	cmd := &cobra.Command{
		Use:     "wineries [winery-id]",
		Short:   "List wineries from catalog",
		Aliases: []string{"winery", "bodegas"},
		Args:    cobra.MaximumNArgs(1),
		Example: `  vinoteca list wineries                          # List all wineries
  vinoteca list wineries --sort wine_count --desc # Most wines first
  vinoteca list wineries <id> -o yaml             # Show one winery`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Catalog(cmd.Context())
			if err != nil {
				return err
			}

			if len(args) == 1 {
				winery, err := c.FindWinery(args[0])
				if err != nil {
					return err
				}
				return renderDetail(cmd, app, winery.Full(c))
			}

			key, err := catalogs.ParseWinerySortKey(flags.Sort)
			if err != nil {
				return err
			}
			wineries, err := c.ListWineries(catalogs.WineryQuery{Sort: key, Descending: flags.Desc})
			if err != nil {
				return err
			}
			wineries = limit(wineries, flags.Limit)

			app.Logger().Debug().Int("count", len(wineries)).Msg("Listing wineries")
			return render(cmd, app,
				func(wide bool) table.Data { return table.WineriesToTableData(c, wineries, wide) },
				func() any { return catalogs.BasicViews(c, wineries) },
			)
		},
	}

	addFlags(cmd, flags, keyStrings(catalogs.WinerySortKeys()))
	return cmd
}
