// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/docmark/pkg/types"
)

// fakeRecorder captures recorded conversions.
type fakeRecorder struct {
	sources []string
	err     error
}

func (f *fakeRecorder) Record(_ context.Context, source string, _ types.ConversionResult) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sources = append(f.sources, source)
	return "id-" + source, nil
}

// writeSource creates a source file under dir and returns its path.
func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestConvertSource(t *testing.T) {
	tests := []struct {
		name       string
		file       string
		content    string
		preCreate  bool // create output MD before running
		force      bool
		wantStatus Status
		wantLog    string
	}{
		{
			name:       "successful conversion",
			file:       "people.csv",
			content:    "name,age\nKim,30\n",
			wantStatus: StatusConverted,
			wantLog:    "converted: people.md (csv)",
		},
		{
			name:       "skip existing markdown",
			file:       "people.csv",
			content:    "name,age\n",
			preCreate:  true,
			wantStatus: StatusSkipped,
			wantLog:    "skipped: people.md (already exists)",
		},
		{
			name:       "force overwrites existing markdown",
			file:       "people.csv",
			content:    "name,age\n",
			preCreate:  true,
			force:      true,
			wantStatus: StatusConverted,
			wantLog:    "converted:",
		},
		{
			name:       "conversion failure",
			file:       "broken.json",
			content:    "{",
			wantStatus: StatusFailed,
			wantLog:    "failed:  broken.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srcDir, outDir := t.TempDir(), t.TempDir()
			src := writeSource(t, srcDir, tt.file, tt.content)
			if tt.preCreate {
				writeSource(t, outDir, strings.TrimSuffix(tt.file, filepath.Ext(tt.file))+".md", "existing")
			}

			var log bytes.Buffer
			status := ConvertSource(context.Background(), New(), src, BatchOptions{OutputDir: outDir, Force: tt.force}, &log)

			if status != tt.wantStatus {
				t.Errorf("status = %q, want %q", status, tt.wantStatus)
			}
			if !strings.Contains(log.String(), tt.wantLog) {
				t.Errorf("log output %q does not contain %q", log.String(), tt.wantLog)
			}
		})
	}
}

func TestConvertSource_Frontmatter(t *testing.T) {
	srcDir, outDir := t.TempDir(), t.TempDir()
	src := writeSource(t, srcDir, "feed.xml", "<rss><channel/></rss>")

	var log bytes.Buffer
	rec := &fakeRecorder{}
	status := ConvertSource(context.Background(), New(), src, BatchOptions{
		OutputDir:   outDir,
		Frontmatter: true,
		Recorder:    rec,
	}, &log)
	if status != StatusConverted {
		t.Fatalf("expected StatusConverted, got %q (%s)", status, log.String())
	}

	data, err := os.ReadFile(filepath.Join(outDir, "feed.md"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	content := string(data)

	if !strings.HasPrefix(content, "---\n") {
		t.Error("output should start with YAML frontmatter delimiter")
	}
	if !strings.Contains(content, "source_kind: xml") {
		t.Error("frontmatter should contain source_kind")
	}
	if !strings.Contains(content, "converted_at:") {
		t.Error("frontmatter should contain converted_at")
	}
	if !strings.Contains(content, "---\n\n# feed.xml\n") {
		t.Error("output should contain the Markdown body after the frontmatter")
	}
	if len(rec.sources) != 1 || rec.sources[0] != src {
		t.Errorf("recorder got %v, want [%s]", rec.sources, src)
	}
}

func TestConvertSource_RecorderFailureIsWarning(t *testing.T) {
	srcDir, outDir := t.TempDir(), t.TempDir()
	src := writeSource(t, srcDir, "a.csv", "x\n1\n")

	var log bytes.Buffer
	status := ConvertSource(context.Background(), New(), src, BatchOptions{
		OutputDir: outDir,
		Recorder:  &fakeRecorder{err: errors.New("database is locked")},
	}, &log)

	if status != StatusConverted {
		t.Fatalf("status = %q, want converted", status)
	}
	if !strings.Contains(log.String(), "warning: history not recorded for a.md: database is locked") {
		t.Errorf("missing history warning in %q", log.String())
	}
}

func TestConvertSource_MissingFile(t *testing.T) {
	var log bytes.Buffer
	status := ConvertSource(context.Background(), New(), filepath.Join(t.TempDir(), "nope.pdf"), BatchOptions{OutputDir: t.TempDir()}, &log)
	if status != StatusFailed {
		t.Errorf("status = %q, want failed", status)
	}
	if !strings.Contains(log.String(), "invalid input") {
		t.Errorf("log %q should name the invalid input", log.String())
	}
}

func TestConvertBatch(t *testing.T) {
	srcDir, outDir := t.TempDir(), t.TempDir()
	sources := []string{
		writeSource(t, srcDir, "a.csv", "h\n1\n"),
		writeSource(t, srcDir, "b.csv", "h\n2\n"),
		writeSource(t, srcDir, "c.json", "[1,"),
	}
	// Pre-create output for "b" to trigger skip.
	writeSource(t, outDir, "b.md", "existing")

	var log bytes.Buffer
	result := ConvertBatch(context.Background(), New(), sources, BatchOptions{OutputDir: outDir}, &log)

	if result.Converted != 1 {
		t.Errorf("converted = %d, want 1", result.Converted)
	}
	if result.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", result.Skipped)
	}
	if result.Failed != 1 {
		t.Errorf("failed = %d, want 1", result.Failed)
	}
	if !result.HasFailures() {
		t.Error("HasFailures should be true")
	}
	if result.Total() != 3 {
		t.Errorf("total = %d, want 3", result.Total())
	}
	if !strings.Contains(log.String(), "Batch summary: 1 converted, 1 skipped, 1 failed (total: 3)") {
		t.Errorf("batch output should contain summary line, got %q", log.String())
	}
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"https://example.com", "example.com.md"},
		{"https://example.com/", "example.com.md"},
		{"https://example.com/a/b", "example.com-a-b.md"},
		{"http://127.0.0.1:8080/news?id=3", "127.0.0.1-news.md"},
		{"https://example.com/2026/%EB%B4%84%20%EC%86%8C%EC%8B%9D/", "example.com-2026-봄-소식.md"},
		{"docs/report.pdf", "report.md"},
		{"sheet.XLSX", "sheet.md"},
		{"Makefile", "Makefile.md"},
	}
	for _, tt := range tests {
		if got := outputName(tt.source); got != tt.want {
			t.Errorf("outputName(%q) = %q, want %q", tt.source, got, tt.want)
		}
	}
}

func TestConvertBatch_URLsOnOneHost(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<h1>" + strings.TrimPrefix(r.URL.Path, "/") + "</h1>"))
	}))
	t.Cleanup(srv.Close)

	outDir := t.TempDir()
	var log bytes.Buffer
	result := ConvertBatch(context.Background(), New(), []string{srv.URL + "/a", srv.URL + "/b"}, BatchOptions{OutputDir: outDir}, &log)

	if result.Converted != 2 || result.Skipped != 0 {
		t.Fatalf("result = %+v, want 2 converted; log %q", result, log.String())
	}
	for name, want := range map[string]string{"127.0.0.1-a.md": "# a", "127.0.0.1-b.md": "# b"} {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		if string(data) != want {
			t.Errorf("%s = %q, want %q", name, data, want)
		}
	}
}

func TestConvertBatch_SameNameInOneRun(t *testing.T) {
	dirA, dirB, outDir := t.TempDir(), t.TempDir(), t.TempDir()
	sources := []string{
		writeSource(t, dirA, "data.csv", "h\n1\n"),
		writeSource(t, dirB, "data.csv", "h\n2\n"),
	}

	var log bytes.Buffer
	result := ConvertBatch(context.Background(), New(), sources, BatchOptions{OutputDir: outDir}, &log)

	if result.Converted != 2 {
		t.Fatalf("converted = %d, want 2; log %q", result.Converted, log.String())
	}
	second, err := os.ReadFile(filepath.Join(outDir, "data-2.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(second), "| 2 |") {
		t.Errorf("data-2.md = %q, want the second source", second)
	}
}

func TestUniqueName(t *testing.T) {
	used := make(map[string]bool)
	got := []string{
		uniqueName("a.md", used),
		uniqueName("a.md", used),
		uniqueName("A.md", used),
		uniqueName("b.md", used),
	}
	want := []string{"a.md", "a-2.md", "A-3.md", "b.md"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("uniqueName #%d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLoadSource(t *testing.T) {
	in, err := LoadSource("https://example.com")
	if err != nil {
		t.Fatal(err)
	}
	if in.IsBinary() || in.Text != "https://example.com" {
		t.Errorf("URL source should load as text, got %+v", in)
	}

	p := writeSource(t, t.TempDir(), "x.tsv", "a\tb\n")
	in, err = LoadSource(p)
	if err != nil {
		t.Fatal(err)
	}
	if !in.IsBinary() || in.Filename != "x.tsv" || string(in.Data) != "a\tb\n" {
		t.Errorf("file source loaded wrong: %+v", in)
	}
}
