// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docmark/pkg/types"
)

// buildPDF assembles a minimal PDF with one page per content stream, all
// pages sharing a Helvetica font, and a byte-exact xref table.
func buildPDF(t *testing.T, contents ...string) []byte {
	t.Helper()

	n := len(contents)
	fontObj := 3 + 2*n
	var objects []string

	kids := make([]string, n)
	for i := range contents {
		kids[i] = fmt.Sprintf("%d 0 R", 3+2*i)
	}
	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), n),
	)
	for i, c := range contents {
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 %d 0 R >> >> /Contents %d 0 R >>", fontObj, 4+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(c), c),
		)
	}
	objects = append(objects, "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func textStream(lines ...string) string {
	var b strings.Builder
	b.WriteString("BT /F1 12 Tf 72 700 Td")
	for i, l := range lines {
		if i > 0 {
			b.WriteString(" 0 -20 Td")
		}
		fmt.Fprintf(&b, " (%s) Tj", l)
	}
	b.WriteString(" ET")
	return b.String()
}

func TestPDFBackendPages(t *testing.T) {
	data := buildPDF(t,
		textStream("Hello world", "Second row"),
		textStream(" "),
		textStream("Third page"),
	)
	ctx := context.Background()

	doc, err := PDFBackend{}.Open(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 3, doc.NumPages())

	runs, err := doc.Page(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 2, "one run per text row")
	assert.ElementsMatch(t, []string{"Hello world", "Second row"}, []string{runs[0].Text, runs[1].Text})

	runs, err = doc.Page(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(joinRuns(runs)))

	runs, err = doc.Page(ctx, 4)
	require.NoError(t, err, "a page past the end has no content")
	assert.Empty(t, runs)

	require.NoError(t, doc.Close())
	assert.Zero(t, doc.NumPages())
	_, err = doc.Page(ctx, 1)
	assert.ErrorContains(t, err, "closed")
}

func TestExtractPDFWithPDFBackend(t *testing.T) {
	data := buildPDF(t,
		textStream("Hello world"),
		textStream(" "),
		textStream("Third page"),
	)

	md, err := ExtractPDF(context.Background(), PDFBackend{}, "sample.pdf", data, zerolog.Nop())
	require.NoError(t, err)

	want := "# sample.pdf\n\n" +
		"**Pages:** 3\n" +
		"**File size:** " + FormatFileSize(int64(len(data))) + "\n\n" +
		"---\n\n" +
		"## Page 1\n\nHello world\n\n" +
		"## Page 3\n\nThird page\n\n"
	assert.Equal(t, want, md)
}

func TestConvertPDFThroughDefaultBackend(t *testing.T) {
	data := buildPDF(t, textStream("Only page"))

	md, err := New().Convert(t.Context(), types.FileInput("memo.pdf", data), "")
	require.NoError(t, err)
	assert.Contains(t, md, "# memo.pdf\n")
	assert.Contains(t, md, "## Page 1\n\nOnly page\n")
}

func TestConvertPDFFromInputLiteral(t *testing.T) {
	data := buildPDF(t, textStream("Literal input"))

	md, err := New().Convert(t.Context(), types.Input{Data: data, Filename: "lit.pdf"}, "")
	require.NoError(t, err)
	assert.Contains(t, md, "## Page 1\n\nLiteral input\n")
}
