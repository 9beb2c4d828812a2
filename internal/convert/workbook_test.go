// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/docmark/pkg/types"
)

// buildWorkbook writes an XLSX file in memory. Each sheet's rows are written
// starting at A1; the default "Sheet1" is renamed to the first sheet's name.
func buildWorkbook(t *testing.T, sheets []types.Sheet) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", s.Name))
		} else {
			_, err := f.NewSheet(s.Name)
			require.NoError(t, err)
		}
		for r, row := range s.Rows {
			cells := make([]interface{}, len(row))
			for c, v := range row {
				cells[c] = v
			}
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(s.Name, cell, &cells))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestExcelizeReader(t *testing.T) {
	data := buildWorkbook(t, []types.Sheet{
		{Name: "Grades", Rows: types.Table{{"name", "score"}, {"Kim", "90"}, {"Lee", "85"}}},
		{Name: "Notes", Rows: types.Table{{"memo"}}},
	})

	sheets, err := ExcelizeReader{}.ReadWorkbook(data)
	require.NoError(t, err)
	require.Len(t, sheets, 2)

	assert.Equal(t, "Grades", sheets[0].Name)
	assert.Equal(t, types.Table{{"name", "score"}, {"Kim", "90"}, {"Lee", "85"}}, sheets[0].Rows)
	assert.Equal(t, "Notes", sheets[1].Name)
}

func TestExcelizeReaderRejectsGarbage(t *testing.T) {
	_, err := ExcelizeReader{}.ReadWorkbook([]byte("not a zip archive"))
	assert.Error(t, err)
}

func TestConvertWorkbookOversizedSheet(t *testing.T) {
	rows := types.Table{{"id"}}
	for i := 1; i <= 150; i++ {
		rows = append(rows, []string{fmt.Sprint(i)})
	}
	data := buildWorkbook(t, []types.Sheet{{Name: "Big", Rows: rows}})

	md, err := New().Convert(t.Context(), types.FileInput("big.xlsx", data), "")
	require.NoError(t, err)

	assert.Contains(t, md, "## Sheet 1: Big\n\n| id |\n| --- |\n| 1 |\n")
	assert.Contains(t, md, "| 100 |\n")
	assert.NotContains(t, md, "| 101 |")
	assert.Contains(t, md, "*Note: Only first 100 rows shown. Total rows: 150*")
}
