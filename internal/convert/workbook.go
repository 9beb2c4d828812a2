// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/docmark/pkg/types"
)

// WorkbookReader parses a spreadsheet workbook into its sheets in file order.
type WorkbookReader interface {
	ReadWorkbook(data []byte) ([]types.Sheet, error)
}

// ExcelizeReader reads XLSX workbooks with excelize.
type ExcelizeReader struct{}

// ReadWorkbook returns every sheet's rows. Trailing empty cells are dropped
// by excelize, so rows may be ragged.
func (ExcelizeReader) ReadWorkbook(data []byte) ([]types.Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	var sheets []types.Sheet
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("reading sheet %q: %w", name, err)
		}
		sheets = append(sheets, types.Sheet{Name: name, Rows: types.Table(rows)})
	}
	return sheets, nil
}
