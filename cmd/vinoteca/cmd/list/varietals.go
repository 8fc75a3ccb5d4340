package list

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/vinoteca/cmd/application"
	"github.com/agentstation/vinoteca/internal/cmd/table"
	"github.com/agentstation/vinoteca/pkg/catalogs"
)

// NewVarietalsCommand creates the list varietals subcommand.
func NewVarietalsCommand(app application.Application) *cobra.Command {
	flags := &Flags{}
	cmd := &cobra.Command{
		Use:     "varietals [varietal-id]",
		Short:   "List grape varietals from catalog",
		Aliases: []string{"varietal", "cepas"},
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Catalog(cmd.Context())
			if err != nil {
				return err
			}

			if len(args) == 1 {
				varietal, err := c.FindVarietal(args[0])
				if err != nil {
					return err
				}
				return renderDetail(cmd, app, varietal.Full(c))
			}

			key, err := catalogs.ParseVarietalSortKey(flags.Sort)
			if err != nil {
				return err
			}
			varietals, err := c.ListVarietals(catalogs.VarietalQuery{Sort: key, Descending: flags.Desc})
			if err != nil {
				return err
			}
			varietals = limit(varietals, flags.Limit)

			return render(cmd, app,
				func(wide bool) table.Data { return table.VarietalsToTableData(c, varietals, wide) },
				func() any { return catalogs.FullViews(c, varietals) },
			)
		},
	}

	addFlags(cmd, flags, keyStrings(catalogs.VarietalSortKeys()))
	return cmd
}
