// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the docmark pipeline:
// source kinds and conversion inputs/results, organization modes and prompt
// pairs, and the per-stage configuration structs.
package types

import (
	"fmt"
	"strings"
	"time"
)

// SourceKind identifies the input format that drives converter dispatch.
type SourceKind string

const (
	KindURL         SourceKind = "url"
	KindHTML        SourceKind = "html"
	KindPDF         SourceKind = "pdf"
	KindXLSX        SourceKind = "xlsx"
	KindCSV         SourceKind = "csv"
	KindTSV         SourceKind = "tsv"
	KindJSON        SourceKind = "json"
	KindXML         SourceKind = "xml"
	KindDOCX        SourceKind = "docx"
	KindPPTX        SourceKind = "pptx"
	KindUnsupported SourceKind = "unsupported"
)

// sourceKinds lists every kind a caller may pass as an explicit hint.
var sourceKinds = []SourceKind{
	KindURL, KindHTML, KindPDF, KindXLSX, KindCSV, KindTSV,
	KindJSON, KindXML, KindDOCX, KindPPTX, KindUnsupported,
}

// SourceKinds returns all known source kinds in canonical order.
func SourceKinds() []SourceKind {
	out := make([]SourceKind, len(sourceKinds))
	copy(out, sourceKinds)
	return out
}

// ParseSourceKind validates a caller-supplied kind hint. Matching is
// case-insensitive; "htm" is accepted as an alias for html.
func ParseSourceKind(s string) (SourceKind, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "htm" {
		return KindHTML, nil
	}
	for _, k := range sourceKinds {
		if string(k) == v {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown source kind %q", s)
}

// Input is a single conversion input: either a raw string (a URL or literal
// markup/text) or a binary payload with a file name. An Input with Data set
// is binary whether it came from FileInput or a struct literal. Treat it as
// read-only once built.
type Input struct {
	// Text holds a URL or literal document text.
	Text string

	// Data holds the file bytes for binary payloads.
	Data []byte

	// Filename is the original file name; empty for literal text.
	Filename string

	// binary marks FileInput payloads so an empty file stays binary.
	binary bool
}

// TextInput wraps a URL or literal document text.
func TextInput(text string) Input {
	return Input{Text: text}
}

// NamedTextInput wraps literal document text that came from a named source.
func NamedTextInput(name, text string) Input {
	return Input{Text: text, Filename: name}
}

// FileInput wraps a binary payload with its file name.
func FileInput(name string, data []byte) Input {
	return Input{Data: data, Filename: name, binary: true}
}

// IsBinary reports whether the input carries a binary payload.
func (in Input) IsBinary() bool {
	return in.binary || in.Data != nil
}

// Size returns the payload length in bytes.
func (in Input) Size() int {
	if in.IsBinary() {
		return len(in.Data)
	}
	return len(in.Text)
}

// ConversionResult is the outcome of one successful conversion. It is created
// once by the dispatcher and owned by the caller afterwards.
type ConversionResult struct {
	// Markdown is the converted document.
	Markdown string `json:"markdown" yaml:"markdown"`

	// Filename is the suggested output name (e.g. "report.md", "example.com").
	Filename string `json:"filename" yaml:"filename"`

	// SourceKind is the kind the input was converted as.
	SourceKind SourceKind `json:"source_kind" yaml:"source_kind"`

	// Timestamp is when the conversion finished.
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// Table is a 2-D grid of cell strings. The first row is the header. Rows may
// have differing cell counts.
type Table [][]string

// Sheet is one named grid from a workbook.
type Sheet struct {
	Name string
	Rows Table
}
