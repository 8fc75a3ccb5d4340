// Package validate implements the validate command, which loads a catalog
// and reports duplicate ids and references that do not resolve.
package validate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/vinoteca/cmd/application"
	"github.com/agentstation/vinoteca/internal/cmd/emoji"
	"github.com/agentstation/vinoteca/internal/cmd/output"
	"github.com/agentstation/vinoteca/internal/cmd/table"
	"github.com/agentstation/vinoteca/pkg/catalogs"
	"github.com/agentstation/vinoteca/pkg/errors"
)

// Result is the structured output of a validation run.
type Result struct {
	Source string           `json:"source" yaml:"source"`
	Stats  catalogs.Stats   `json:"stats" yaml:"stats"`
	Issues []catalogs.Issue `json:"issues" yaml:"issues"`
	Counts map[string]int   `json:"counts" yaml:"counts"`
}

// NewCommand creates the validate command.
func NewCommand(app application.Application) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:     "validate [file]",
		GroupID: "management",
		Short:   "Validate a catalog data file",
		Long: `Validate loads a catalog and reports data problems.

Without a file argument the configured catalog (--data-file or the embedded
sample) is checked. A file that cannot be read or parsed always fails.
Duplicate ids and wines referencing unknown wineries or varietals are
reported as warnings, or as a failure with --strict.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := load(cmd, app, args)
			if err != nil {
				return err
			}
			return run(cmd, app, c, strict)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any issue is found")
	return cmd
}

// load reads the file named in args, or returns the app's catalog.
func load(cmd *cobra.Command, app application.Application, args []string) (*catalogs.Catalog, error) {
	if len(args) == 0 {
		return app.Catalog(cmd.Context())
	}
	store := catalogs.NewStore()
	if err := store.Load(cmd.Context(), catalogs.NewFileSource(args[0])); err != nil {
		return nil, err
	}
	return store.Catalog(), nil
}

func run(cmd *cobra.Command, app application.Application, c *catalogs.Catalog, strict bool) error {
	report := c.Check()
	stats := c.Stats()

	format := output.DetectFormat(app.OutputFormat())
	out := cmd.OutOrStdout()

	if format.IsTable() {
		fmt.Fprintf(out, "Catalog %s: %d wineries, %d varietals, %d wines\n",
			stats.Source, stats.Wineries, stats.Varietals, stats.Wines)
		if report.OK() {
			fmt.Fprintf(out, "%s No issues found\n", emoji.Success)
		} else {
			fmt.Fprintf(out, "%s %d issues found\n", emoji.Warning, len(report.Issues))
			if err := output.NewFormatter(format).Format(out, table.IssuesToTableData(report.Issues)); err != nil {
				return err
			}
		}
	} else {
		result := Result{
			Source: stats.Source,
			Stats:  stats,
			Issues: report.Issues,
			Counts: map[string]int{
				string(catalogs.IssueDuplicateID):      report.Count(catalogs.IssueDuplicateID),
				string(catalogs.IssueDanglingWinery):   report.Count(catalogs.IssueDanglingWinery),
				string(catalogs.IssueDanglingVarietal): report.Count(catalogs.IssueDanglingVarietal),
			},
		}
		if err := output.NewFormatter(format).Format(out, result); err != nil {
			return err
		}
	}

	for _, issue := range report.Issues {
		app.Logger().Debug().
			Str("type", string(issue.Type)).
			Str("id", issue.ID).
			Str("ref", issue.Ref).
			Msg(issue.Message)
	}

	if strict && !report.OK() {
		return &errors.ValidationError{
			Field:   "catalog",
			Value:   stats.Source,
			Message: fmt.Sprintf("%d issues found", len(report.Issues)),
		}
	}
	return nil
}
