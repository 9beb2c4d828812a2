// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/pdiddy/docmark/pkg/types"
)

// extensionKinds maps a lowercased file extension to its source kind.
// Extensions not listed here are treated as HTML.
var extensionKinds = map[string]types.SourceKind{
	"pdf":  types.KindPDF,
	"docx": types.KindDOCX,
	"pptx": types.KindPPTX,
	"xlsx": types.KindXLSX,
	"csv":  types.KindCSV,
	"tsv":  types.KindTSV,
	"json": types.KindJSON,
	"xml":  types.KindXML,
	"html": types.KindHTML,
	"htm":  types.KindHTML,
	"hwp":  types.KindUnsupported,
	"doc":  types.KindUnsupported,
}

// DetectKind infers the source kind from a file name's final extension.
// Unknown or missing extensions default to HTML.
func DetectKind(filename string) types.SourceKind {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return types.KindHTML
	}
	ext := strings.ToLower(filename[i+1:])
	if k, ok := extensionKinds[ext]; ok {
		return k
	}
	return types.KindHTML
}

// IsValidURL reports whether s parses as an absolute URL with a scheme and host.
func IsValidURL(s string) bool {
	_, err := parseURL(s)
	return err == nil
}

func parseURL(s string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: malformed URL %q: %v", ErrInvalidInput, s, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: URL %q needs a scheme and host", ErrInvalidInput, s)
	}
	return u, nil
}

// nowFunc is the clock used for timestamps and generated names. Tests replace it.
var nowFunc = time.Now

// ResultFilename returns the suggested output name for a conversion: the host
// name for URLs, the input name with a .md extension for files, and a
// timestamped name for unnamed literal text.
func ResultFilename(in types.Input, kind types.SourceKind) string {
	if kind == types.KindURL && !in.IsBinary() {
		if u, err := parseURL(in.Text); err == nil {
			return u.Hostname()
		}
	}
	if in.Filename == "" {
		return fmt.Sprintf("document-%d.md", nowFunc().UnixMilli())
	}
	base := path.Base(strings.ReplaceAll(in.Filename, "\\", "/"))
	if ext := path.Ext(base); ext != "" && ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	return base + ".md"
}
