// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"strings"

	"github.com/pdiddy/docmark/pkg/types"
)

// MaxTableRows is the number of data rows emitted per sheet or table. Rows
// past the cap are counted in a trailing note but not rendered.
const MaxTableRows = 100

var cellNewlines = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func tableRow(cells []string) string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = cellNewlines.Replace(c)
	}
	return "| " + strings.Join(out, " | ") + " |"
}

func separatorRow(cols int) string {
	seps := make([]string, cols)
	for i := range seps {
		seps[i] = "---"
	}
	return "| " + strings.Join(seps, " | ") + " |"
}

// RenderTable writes t as a Markdown table. The first row is the header and
// at most MaxTableRows data rows follow; ragged rows are written as they are.
// An empty table renders as the empty string.
func RenderTable(t types.Table) string {
	if len(t) == 0 {
		return ""
	}

	header := t[0]
	cols := len(header)
	if cols == 0 {
		cols = 1
	}

	var b strings.Builder
	b.WriteString(tableRow(header) + "\n")
	b.WriteString(separatorRow(cols) + "\n")

	data := t[1:]
	shown := data
	if len(shown) > MaxTableRows {
		shown = shown[:MaxTableRows]
	}
	for _, row := range shown {
		b.WriteString(tableRow(row) + "\n")
	}

	if len(data) > MaxTableRows {
		fmt.Fprintf(&b, "\n*Note: Only first %d rows shown. Total rows: %d*\n", MaxTableRows, len(data))
	}
	return b.String()
}

// RenderWorkbook writes every sheet in file order as a level-2 heading
// followed by its table. The row cap applies to each sheet independently.
func RenderWorkbook(sheets []types.Sheet) string {
	if len(sheets) == 0 {
		return ""
	}
	var b strings.Builder
	for i, s := range sheets {
		fmt.Fprintf(&b, "## Sheet %d: %s\n\n", i+1, s.Name)
		if table := RenderTable(s.Rows); table != "" {
			b.WriteString(table)
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}
