// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/pdiddy/docmark/pkg/types"
)

// ParseDelimited splits delimited text into rows and cells. Quoted fields may
// contain the delimiter or newlines; rows keep whatever cell count they have
// and blank lines are skipped. Input the csv reader rejects outright falls
// back to a plain line/delimiter split.
func ParseDelimited(text string, delim rune) types.Table {
	text = strings.TrimPrefix(text, "\ufeff")

	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var table types.Table
	for {
		rec, err := r.Read()
		if err == io.EOF {
			return table
		}
		if err != nil {
			return splitDelimited(text, delim)
		}
		table = append(table, rec)
	}
}

func splitDelimited(text string, delim rune) types.Table {
	var table types.Table
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if line == "" {
			continue
		}
		table = append(table, strings.Split(line, string(delim)))
	}
	return table
}

// RenderDelimited writes delimited text as a level-1 heading naming the
// source followed by its table. The first row is always the header.
func RenderDelimited(name, text string, delim rune) string {
	var b strings.Builder
	b.WriteString("# " + name + "\n\n")
	b.WriteString(RenderTable(ParseDelimited(text, delim)))
	return strings.TrimRight(b.String(), "\n") + "\n"
}
