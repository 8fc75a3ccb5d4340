package list

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/vinoteca/cmd/application"
	"github.com/agentstation/vinoteca/internal/cmd/table"
	"github.com/agentstation/vinoteca/pkg/catalogs"
)

// NewWinesCommand creates the list wines subcommand.
func NewWinesCommand(app application.Application) *cobra.Command {
	flags := &Flags{}
	var vintage int
	cmd := &cobra.Command{
		Use:     "wines [wine-id]",
		Short:   "List wines from catalog",
		Aliases: []string{"wine", "vinos"},
		Args:    cobra.MaximumNArgs(1),
		Example: `  vinoteca list wines --vintage 2019           # Wines with a 2019 vintage
  vinoteca list wines --sort varietal_count --desc # Blends first
  vinoteca list wines -o wide                    # Include varietals`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Catalog(cmd.Context())
			if err != nil {
				return err
			}

			if len(args) == 1 {
				wine, err := c.FindWine(args[0])
				if err != nil {
					return err
				}
				return renderDetail(cmd, app, wine.Full(c))
			}

			key, err := catalogs.ParseWineSortKey(flags.Sort)
			if err != nil {
				return err
			}
			q := catalogs.WineQuery{Sort: key, Descending: flags.Desc}
			if cmd.Flags().Changed("vintage") {
				q.Vintage = catalogs.Vintage(vintage)
			}
			wines, err := c.ListWines(q)
			if err != nil {
				return err
			}
			wines = limit(wines, flags.Limit)

			return render(cmd, app,
				func(wide bool) table.Data { return table.WinesToTableData(c, wines, wide) },
				func() any { return catalogs.BasicViews(c, wines) },
			)
		},
	}

	addFlags(cmd, flags, keyStrings(catalogs.WineSortKeys()))
	cmd.Flags().IntVar(&vintage, "vintage", 0, "only wines produced in this vintage year")
	return cmd
}
