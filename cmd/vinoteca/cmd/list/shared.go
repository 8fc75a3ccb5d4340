package list

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/vinoteca/cmd/application"
	"github.com/agentstation/vinoteca/internal/cmd/output"
	"github.com/agentstation/vinoteca/internal/cmd/table"
)

// Flags holds the ordering flags shared by the list subcommands.
type Flags struct {
	Sort  string
	Desc  bool
	Limit int
}

// addFlags registers --sort, --desc and --limit. keys documents the sort
// keys the resource accepts.
func addFlags(cmd *cobra.Command, flags *Flags, keys []string) {
	cmd.Flags().StringVarP(&flags.Sort, "sort", "s", "", "sort key: "+strings.Join(keys, ", "))
	cmd.Flags().BoolVar(&flags.Desc, "desc", false, "sort in descending order")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 0, "maximum number of results (0 for all)")
}

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}

func keyStrings[K ~string](keys []K) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, string(k))
	}
	return out
}

// render writes a list either as a table or as structured views.
func render(cmd *cobra.Command, app application.Application, rows func(wide bool) table.Data, views func() any) error {
	format := output.DetectFormat(app.OutputFormat())
	formatter := output.NewFormatter(format)
	if format.IsTable() {
		return formatter.Format(cmd.OutOrStdout(), rows(format == output.FormatWide))
	}
	return formatter.Format(cmd.OutOrStdout(), views())
}

// renderDetail writes a single entity view.
func renderDetail(cmd *cobra.Command, app application.Application, view any) error {
	format := output.DetectFormat(app.OutputFormat())
	return output.NewFormatter(format).Format(cmd.OutOrStdout(), view)
}
