// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// MaxPages is the number of pages read from a page document. Pages past the
// cap are reported in a trailing note but not extracted.
const MaxPages = 50

// TextRun is one piece of text extracted from a page, in extraction order.
type TextRun struct {
	Text string
}

// PageDocument is an open page-oriented document. Close releases whatever the
// backend acquired in Open.
type PageDocument interface {
	// NumPages returns the total page count.
	NumPages() int

	// Page returns the text runs of the 1-based page n.
	Page(ctx context.Context, n int) ([]TextRun, error)

	Close() error
}

// PageBackend opens page-oriented documents for text extraction.
type PageBackend interface {
	Open(ctx context.Context, data []byte) (PageDocument, error)
}

// ExtractPDF opens data with backend and writes a Markdown document with one
// "## Page N" section per non-blank page, up to MaxPages. Backend failures are
// reported as ErrExtractionFailed.
func ExtractPDF(ctx context.Context, backend PageBackend, name string, data []byte, log zerolog.Logger) (string, error) {
	if backend == nil {
		return "", fmt.Errorf("%w: no page-document backend configured", ErrExtractionFailed)
	}

	doc, err := backend.Open(ctx, data)
	if err != nil {
		return "", fmt.Errorf("%w: opening %s: %v", ErrExtractionFailed, name, err)
	}
	defer doc.Close()

	total := doc.NumPages()
	log.Debug().Str("file", name).Int("pages", total).Msg("extracting page document")

	var b strings.Builder
	b.WriteString("# " + name + "\n\n")
	fmt.Fprintf(&b, "**Pages:** %d\n", total)
	fmt.Fprintf(&b, "**File size:** %s\n\n", FormatFileSize(int64(len(data))))
	b.WriteString("---\n\n")

	limit := min(total, MaxPages)
	for n := 1; n <= limit; n++ {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("%w: %v", ErrExtractionFailed, err)
		}
		runs, err := doc.Page(ctx, n)
		if err != nil {
			return "", fmt.Errorf("%w: %s page %d: %v", ErrExtractionFailed, name, n, err)
		}
		text := joinRuns(runs)
		if strings.TrimSpace(text) == "" {
			continue
		}
		fmt.Fprintf(&b, "## Page %d\n\n%s\n\n", n, text)
	}

	if total > MaxPages {
		log.Debug().Str("file", name).Int("pages", total).Msg("page cap reached")
		fmt.Fprintf(&b, "\n\n*Note: Only first %d pages shown. Total pages: %d*", MaxPages, total)
	}
	return b.String(), nil
}

func joinRuns(runs []TextRun) string {
	parts := make([]string, len(runs))
	for i, r := range runs {
		parts[i] = r.Text
	}
	return strings.Join(parts, " ")
}

var sizeUnits = []string{"Bytes", "KB", "MB", "GB"}

// FormatFileSize renders a byte count with 1024-based units, rounded to two
// decimals with trailing zeros dropped (e.g. "1.5 KB", "0 Bytes").
func FormatFileSize(n int64) string {
	if n <= 0 {
		return "0 Bytes"
	}
	v := float64(n)
	i := 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}
	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}
