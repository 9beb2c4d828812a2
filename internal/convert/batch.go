// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docmark/pkg/types"
)

// Status is the per-source outcome of a batch run.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Recorder stores successful conversions, e.g. in the history database.
type Recorder interface {
	Record(ctx context.Context, source string, result types.ConversionResult) (string, error)
}

// BatchOptions controls where and how batch output is written.
type BatchOptions struct {
	// OutputDir receives one <name>.md per source.
	OutputDir string

	// Kind overrides source-kind detection for every source.
	Kind types.SourceKind

	// Frontmatter prepends a YAML header describing the source.
	Frontmatter bool

	// Force overwrites existing output instead of skipping it.
	Force bool

	// Recorder, when set, receives every successful conversion.
	Recorder Recorder
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of sources processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any source failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// LoadSource turns a command-line source into an Input: http(s) URLs become
// URL text, anything else is read from disk as a named file payload.
func LoadSource(source string) (types.Input, error) {
	if isWebURL(source) {
		return types.TextInput(source), nil
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return types.Input{}, fmt.Errorf("%w: reading %s: %v", ErrInvalidInput, source, err)
	}
	return types.FileInput(filepath.Base(source), data), nil
}

func isWebURL(s string) bool {
	u, err := parseURL(s)
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

// outputName returns the Markdown file name a source will be written to.
// URLs are named after host and path so pages on one site do not collide.
func outputName(source string) string {
	var name string
	if isWebURL(source) {
		name = urlSlug(source)
	} else {
		name = ResultFilename(types.FileInput(filepath.Base(source), nil), "")
	}
	if !strings.HasSuffix(name, ".md") {
		name += ".md"
	}
	return name
}

// urlSlug turns a URL into a file-name-safe "host-path" string.
func urlSlug(source string) string {
	u, err := parseURL(source)
	if err != nil {
		return untitled
	}
	raw := u.Hostname()
	if p := strings.Trim(u.Path, "/"); p != "" {
		raw += "-" + p
	}

	var b strings.Builder
	dash := false
	for _, r := range raw {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '_' {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.Trim(b.String(), "-.")
	if slug == "" {
		return untitled
	}
	return slug
}

// uniqueName returns name, or name with a -2, -3, ... suffix when an earlier
// source in the same run already claimed it.
func uniqueName(name string, used map[string]bool) string {
	base := strings.TrimSuffix(name, ".md")
	candidate := name
	for i := 2; used[strings.ToLower(candidate)]; i++ {
		candidate = fmt.Sprintf("%s-%d.md", base, i)
	}
	used[strings.ToLower(candidate)] = true
	return candidate
}

// ConvertSource converts a single source and writes the result into
// opts.OutputDir. Existing output is skipped unless opts.Force is set.
func ConvertSource(ctx context.Context, c *Converter, source string, opts BatchOptions, w io.Writer) Status {
	return convertSourceTo(ctx, c, source, outputName(source), opts, w)
}

func convertSourceTo(ctx context.Context, c *Converter, source, name string, opts BatchOptions, w io.Writer) Status {
	mdPath := filepath.Join(opts.OutputDir, name)
	label := filepath.Base(mdPath)

	if !opts.Force {
		if _, err := os.Stat(mdPath); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", label)
			return StatusSkipped
		}
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", label, err)
		return StatusFailed
	}

	in, err := LoadSource(source)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", label, err)
		return StatusFailed
	}

	result, err := c.ConvertResult(ctx, in, opts.Kind)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", label, err)
		return StatusFailed
	}

	content := result.Markdown
	if opts.Frontmatter {
		content, err = addFrontmatter(source, result)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", label, err)
			return StatusFailed
		}
	}

	if err := os.WriteFile(mdPath, []byte(content), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", label, err)
		return StatusFailed
	}

	if opts.Recorder != nil {
		if _, err := opts.Recorder.Record(ctx, source, result); err != nil {
			fmt.Fprintf(w, "  warning: history not recorded for %s: %v\n", label, err)
		}
	}

	fmt.Fprintf(w, "converted: %s (%s)\n", label, result.SourceKind)
	return StatusConverted
}

// ConvertBatch processes sources one after another, printing per-source
// status to w and returning a summary. Sources that map to the same output
// name within one run get numbered names instead of skipping each other.
func ConvertBatch(ctx context.Context, c *Converter, sources []string, opts BatchOptions, w io.Writer) BatchResult {
	var result BatchResult
	used := make(map[string]bool)
	for _, s := range sources {
		name := uniqueName(outputName(s), used)
		switch convertSourceTo(ctx, c, s, name, opts, w) {
		case StatusConverted:
			result.Converted++
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// frontmatter is the YAML header written ahead of converted Markdown.
type frontmatter struct {
	Source      string           `yaml:"source"`
	SourceKind  types.SourceKind `yaml:"source_kind"`
	ConvertedAt string           `yaml:"converted_at"`
}

func addFrontmatter(source string, result types.ConversionResult) (string, error) {
	data, err := yaml.Marshal(frontmatter{
		Source:      source,
		SourceKind:  result.SourceKind,
		ConvertedAt: result.Timestamp.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return "", fmt.Errorf("marshaling frontmatter: %w", err)
	}
	var b strings.Builder
	b.WriteString("---\n")
	b.Write(data)
	b.WriteString("---\n\n")
	b.WriteString(result.Markdown)
	return b.String(), nil
}
