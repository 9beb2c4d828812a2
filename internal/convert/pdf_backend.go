// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFBackend is the default PageBackend. It reads PDFs in-process with
// ledongthuc/pdf and returns one text run per text row on the page.
type PDFBackend struct{}

// Open parses the PDF cross-reference table and trailer. The returned
// document holds the bytes in memory until Close.
func (PDFBackend) Open(_ context.Context, data []byte) (doc PageDocument, err error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty PDF payload")
	}
	defer func() {
		if r := recover(); r != nil {
			doc, err = nil, fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	return &pdfDocument{reader: r}, nil
}

type pdfDocument struct {
	reader *pdf.Reader
}

func (d *pdfDocument) NumPages() int {
	if d.reader == nil {
		return 0
	}
	return d.reader.NumPage()
}

// Page decodes page n's content stream. Malformed streams make the pdf
// package panic; that is turned into an error here.
func (d *pdfDocument) Page(_ context.Context, n int) (runs []TextRun, err error) {
	if d.reader == nil {
		return nil, fmt.Errorf("document is closed")
	}
	defer func() {
		if r := recover(); r != nil {
			runs, err = nil, fmt.Errorf("decoding page %d: %v", n, r)
		}
	}()

	p := d.reader.Page(n)
	if p.V.IsNull() {
		return nil, nil
	}
	rows, err := p.GetTextByRow()
	if err != nil {
		return nil, fmt.Errorf("decoding page %d: %w", n, err)
	}
	for _, row := range rows {
		var sb strings.Builder
		for _, t := range row.Content {
			sb.WriteString(t.S)
		}
		runs = append(runs, TextRun{Text: sb.String()})
	}
	return runs, nil
}

func (d *pdfDocument) Close() error {
	d.reader = nil
	return nil
}
