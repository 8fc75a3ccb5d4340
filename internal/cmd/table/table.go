// Package table converts catalog entities into rows for CLI table output.
package table

import (
	"strconv"
	"strings"

	"github.com/agentstation/vinoteca/pkg/catalogs"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// WineriesToTableData converts wineries to table format. The wide view adds
// the varietals each winery produces.
func WineriesToTableData(c *catalogs.Catalog, wineries []*catalogs.Winery, wide bool) Data {
	headers := []string{"ID", "Name", "Wines"}
	align := []Align{AlignLeft, AlignLeft, AlignRight}
	if wide {
		headers = append(headers, "Varietals")
		align = append(align, AlignLeft)
	}

	rows := make([][]string, 0, len(wineries))
	for _, w := range wineries {
		row := []string{w.ID(), w.Name(), strconv.Itoa(c.WineCountOfWinery(w.ID()))}
		if wide {
			row = append(row, JoinNames(c.VarietalsOfWinery(w.ID())))
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// VarietalsToTableData converts varietals to table format.
func VarietalsToTableData(c *catalogs.Catalog, varietals []*catalogs.Varietal, wide bool) Data {
	headers := []string{"ID", "Name", "Wines"}
	align := []Align{AlignLeft, AlignLeft, AlignRight}
	if wide {
		headers = append(headers, "Wine Names")
		align = append(align, AlignLeft)
	}

	rows := make([][]string, 0, len(varietals))
	for _, v := range varietals {
		wines := c.WinesOfVarietal(v.ID())
		row := []string{v.ID(), v.Name(), strconv.Itoa(len(wines))}
		if wide {
			row = append(row, JoinNames(wines))
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// WinesToTableData converts wines to table format.
func WinesToTableData(c *catalogs.Catalog, wines []*catalogs.Wine, wide bool) Data {
	headers := []string{"ID", "Name", "Winery", "Vintages"}
	align := []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft}
	if wide {
		headers = append(headers, "Varietals")
		align = append(align, AlignLeft)
	}

	rows := make([][]string, 0, len(wines))
	for _, w := range wines {
		row := []string{w.ID(), w.Name(), c.WineryName(w), FormatVintages(w.Vintages())}
		if wide {
			row = append(row, JoinNames(c.VarietalsOfWine(w)))
		}
		rows = append(rows, row)
	}

	return Data{Headers: headers, Rows: rows, ColumnAlignment: align}
}

// IssuesToTableData converts catalog check issues to table format.
func IssuesToTableData(issues []catalogs.Issue) Data {
	rows := make([][]string, 0, len(issues))
	for _, issue := range issues {
		ref := issue.Ref
		if ref == "" {
			ref = "-"
		}
		rows = append(rows, []string{string(issue.Type), issue.Kind.String(), issue.ID, ref})
	}
	return Data{
		Headers: []string{"Issue", "Kind", "ID", "Reference"},
		Rows:    rows,
	}
}

// JoinNames joins entity names with commas, or returns "-" when empty.
func JoinNames[T catalogs.Entity](items []T) string {
	if len(items) == 0 {
		return "-"
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name())
	}
	return strings.Join(names, ", ")
}

// FormatVintages renders vintage years as "2019, 2020", or "-" when empty.
func FormatVintages(years []int) string {
	if len(years) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(years))
	for _, y := range years {
		parts = append(parts, strconv.Itoa(y))
	}
	return strings.Join(parts, ", ")
}
