// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert turns web pages, HTML, PDF, XLSX, CSV/TSV, JSON and XML
// into Markdown. A Converter picks one renderer or extractor per source kind;
// every renderer is deterministic and best-effort, and only structured-text
// parsing and page extraction can fail on bad content.
package convert

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/docmark/pkg/types"
)

// untitled is the heading used for literal text that has no file name.
const untitled = "document"

// Converter dispatches conversion inputs to the matching renderer. It holds
// no mutable state and is safe for concurrent use when its collaborators are.
type Converter struct {
	fetcher  Fetcher
	pages    PageBackend
	workbook WorkbookReader
	delegate Delegate
	delim    rune
	log      zerolog.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithFetcher sets the web-page fetcher used for URL inputs.
func WithFetcher(f Fetcher) Option { return func(c *Converter) { c.fetcher = f } }

// WithPageBackend sets the page-document backend used for PDFs.
func WithPageBackend(b PageBackend) Option { return func(c *Converter) { c.pages = b } }

// WithWorkbookReader sets the workbook parser used for XLSX files.
func WithWorkbookReader(r WorkbookReader) Option { return func(c *Converter) { c.workbook = r } }

// WithDelegate routes docx/pptx through d instead of rejecting them.
func WithDelegate(d Delegate) Option { return func(c *Converter) { c.delegate = d } }

// WithDelimiter overrides the CSV field separator.
func WithDelimiter(r rune) Option { return func(c *Converter) { c.delim = r } }

// WithLogger sets the logger for dispatch diagnostics.
func WithLogger(l zerolog.Logger) Option { return func(c *Converter) { c.log = l } }

// New builds a Converter. Without options it fetches pages over HTTP with the
// default fetch settings, reads PDFs with PDFBackend and XLSX with excelize,
// and rejects docx/pptx.
func New(opts ...Option) *Converter {
	c := &Converter{
		pages:    PDFBackend{},
		workbook: ExcelizeReader{},
		delim:    ',',
		log:      zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.fetcher == nil {
		c.fetcher = NewHTTPFetcher(types.DefaultConfig().Fetch, c.log)
	}
	return c
}

// ResolveKind returns kind when set; otherwise it infers one from the input's
// file name, treating unnamed literal text as a URL.
func ResolveKind(in types.Input, kind types.SourceKind) types.SourceKind {
	if kind != "" {
		return kind
	}
	if in.IsBinary() || in.Filename != "" {
		return DetectKind(in.Filename)
	}
	return types.KindURL
}

// Convert converts in as kind (inferred when empty) and returns Markdown.
// Every failure wraps ErrConversionFailed around the underlying error class.
func (c *Converter) Convert(ctx context.Context, in types.Input, kind types.SourceKind) (string, error) {
	kind = ResolveKind(in, kind)
	c.log.Debug().
		Str("kind", string(kind)).
		Str("file", in.Filename).
		Int("bytes", in.Size()).
		Msg("dispatching conversion")

	md, err := c.dispatch(ctx, in, kind)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrConversionFailed, err)
	}
	return md, nil
}

// ConvertResult is Convert plus the result metadata: suggested file name,
// resolved kind, and completion time.
func (c *Converter) ConvertResult(ctx context.Context, in types.Input, kind types.SourceKind) (types.ConversionResult, error) {
	kind = ResolveKind(in, kind)
	md, err := c.Convert(ctx, in, kind)
	if err != nil {
		return types.ConversionResult{}, err
	}
	return types.ConversionResult{
		Markdown:   md,
		Filename:   ResultFilename(in, kind),
		SourceKind: kind,
		Timestamp:  nowFunc(),
	}, nil
}

func (c *Converter) dispatch(ctx context.Context, in types.Input, kind types.SourceKind) (string, error) {
	if in.Size() == 0 {
		return "", fmt.Errorf("%w: empty %s input", ErrInvalidInput, kind)
	}
	name := displayName(in)

	switch kind {
	case types.KindURL:
		if in.IsBinary() {
			return "", fmt.Errorf("%w: a URL must be given as text", ErrInvalidInput)
		}
		u, err := parseURL(in.Text)
		if err != nil {
			return "", err
		}
		if c.fetcher == nil {
			return "", fmt.Errorf("%w: no fetcher configured", ErrInvalidInput)
		}
		page, err := c.fetcher.Fetch(ctx, u.String())
		if err != nil {
			return "", fmt.Errorf("failed to fetch URL: %w", err)
		}
		return RenderHTML(page), nil

	case types.KindHTML:
		text, err := c.text(in)
		if err != nil {
			return "", err
		}
		return RenderHTML(text), nil

	case types.KindPDF:
		if !in.IsBinary() {
			return "", fmt.Errorf("%w: pdf conversion needs file bytes", ErrInvalidInput)
		}
		return ExtractPDF(ctx, c.pages, name, in.Data, c.log)

	case types.KindXLSX:
		if !in.IsBinary() {
			return "", fmt.Errorf("%w: xlsx conversion needs file bytes", ErrInvalidInput)
		}
		sheets, err := c.workbook.ReadWorkbook(in.Data)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrExtractionFailed, name, err)
		}
		c.log.Debug().Str("file", name).Int("sheets", len(sheets)).Msg("read workbook")
		return RenderWorkbook(sheets), nil

	case types.KindCSV, types.KindTSV:
		text, err := c.text(in)
		if err != nil {
			return "", err
		}
		delim := c.delim
		if kind == types.KindTSV {
			delim = '\t'
		}
		return RenderDelimited(name, text, delim), nil

	case types.KindJSON:
		text, err := c.text(in)
		if err != nil {
			return "", err
		}
		return RenderJSON(name, text)

	case types.KindXML:
		text, err := c.text(in)
		if err != nil {
			return "", err
		}
		return RenderXML(name, text), nil

	case types.KindDOCX, types.KindPPTX:
		if c.delegate == nil {
			return "", fmt.Errorf("%w: %s (requires the markitdown backend; enable it or export the file to PDF first)", ErrUnsupportedFormat, kind)
		}
		if !in.IsBinary() {
			return "", fmt.Errorf("%w: %s conversion needs file bytes", ErrInvalidInput, kind)
		}
		return c.delegate.Convert(ctx, kind, name, in.Data)

	case types.KindUnsupported:
		return "", fmt.Errorf("%w: %s (legacy word-processor files are not supported; save the document as PDF or DOCX and convert that instead)", ErrUnsupportedFormat, name)

	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, kind)
	}
}

// text returns the input as UTF-8 text, decoding binary payloads.
func (c *Converter) text(in types.Input) (string, error) {
	if !in.IsBinary() {
		return in.Text, nil
	}
	text, enc, err := DecodeText(in.Data, "")
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidInput, displayName(in), err)
	}
	c.log.Debug().Str("file", in.Filename).Str("encoding", enc).Msg("decoded text payload")
	return text, nil
}

func displayName(in types.Input) string {
	if name := strings.TrimSpace(in.Filename); name != "" {
		return name
	}
	return untitled
}
