// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/docmark/pkg/types"
)

func TestDetectKind(t *testing.T) {
	tests := []struct {
		filename string
		want     types.SourceKind
	}{
		{"report.pdf", types.KindPDF},
		{"REPORT.PDF", types.KindPDF},
		{"book.xlsx", types.KindXLSX},
		{"data.csv", types.KindCSV},
		{"data.tsv", types.KindTSV},
		{"config.json", types.KindJSON},
		{"feed.xml", types.KindXML},
		{"index.html", types.KindHTML},
		{"index.htm", types.KindHTML},
		{"slides.pptx", types.KindPPTX},
		{"letter.docx", types.KindDOCX},
		{"old.hwp", types.KindUnsupported},
		{"old.doc", types.KindUnsupported},
		{"archive.tar.csv", types.KindCSV},
		{"notes.txt", types.KindHTML},
		{"README", types.KindHTML},
		{"", types.KindHTML},
		{"trailing.", types.KindHTML},
	}
	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectKind(tt.filename))
		})
	}
}

func TestIsValidURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://example.com/page", true},
		{"http://localhost:8080", true},
		{"ftp://files.example.com/a", true},
		{"  https://example.com  ", true},
		{"example.com", false},
		{"/just/a/path", false},
		{"https://", false},
		{"http://[::1", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidURL(tt.url))
		})
	}
}

func TestResultFilename(t *testing.T) {
	saved := nowFunc
	nowFunc = func() time.Time { return time.UnixMilli(1700000000123) }
	t.Cleanup(func() { nowFunc = saved })

	tests := []struct {
		name string
		in   types.Input
		kind types.SourceKind
		want string
	}{
		{"url host", types.TextInput("https://www.example.com/a/b?q=1"), types.KindURL, "www.example.com"},
		{"file replaces extension", types.FileInput("report.pdf", []byte("x")), types.KindPDF, "report.md"},
		{"only final extension", types.FileInput("a.b.csv", []byte("x")), types.KindCSV, "a.b.md"},
		{"no extension", types.FileInput("README", []byte("x")), types.KindHTML, "README.md"},
		{"directory is dropped", types.NamedTextInput("dir/sub/page.html", "<p>x</p>"), types.KindHTML, "page.md"},
		{"windows path", types.FileInput(`C:\docs\sheet.xlsx`, []byte("x")), types.KindXLSX, "sheet.md"},
		{"unnamed literal text", types.TextInput("<p>x</p>"), types.KindHTML, "document-1700000000123.md"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResultFilename(tt.in, tt.kind))
		})
	}
}
