// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mdstat summarizes the structure of converted Markdown: its heading
// outline and counts of tables, lists, code blocks, links, images and words.
// The CLI prints the summary after a conversion with --stats.
package mdstat

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is one entry of the document outline.
type Heading struct {
	Level int    `json:"level" yaml:"level"`
	Text  string `json:"text" yaml:"text"`
}

// Stats describes the block and inline structure of a Markdown document.
type Stats struct {
	Headings   []Heading `json:"headings" yaml:"headings"`
	Paragraphs int       `json:"paragraphs" yaml:"paragraphs"`
	Tables     int       `json:"tables" yaml:"tables"`
	TableRows  int       `json:"table_rows" yaml:"table_rows"`
	Lists      int       `json:"lists" yaml:"lists"`
	ListItems  int       `json:"list_items" yaml:"list_items"`
	CodeBlocks int       `json:"code_blocks" yaml:"code_blocks"`
	Links      int       `json:"links" yaml:"links"`
	Images     int       `json:"images" yaml:"images"`
	Words      int       `json:"words" yaml:"words"`
}

var parser = goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser()

// Analyze parses md as GitHub-flavored Markdown and collects its Stats.
func Analyze(md string) Stats {
	src := []byte(md)
	doc := parser.Parse(text.NewReader(src))

	var s Stats
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			s.Headings = append(s.Headings, Heading{Level: node.Level, Text: inlineText(node, src)})
		case *ast.Paragraph:
			s.Paragraphs++
		case *ast.List:
			s.Lists++
		case *ast.ListItem:
			s.ListItems++
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			s.CodeBlocks++
		case *ast.Link, *ast.AutoLink:
			s.Links++
		case *ast.Image:
			s.Images++
		case *extast.Table:
			s.Tables++
		case *extast.TableRow:
			s.TableRows++
		case *ast.Text:
			s.Words += len(strings.Fields(string(node.Segment.Value(src))))
		}
		return ast.WalkContinue, nil
	})
	return s
}

// inlineText concatenates the text beneath n.
func inlineText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

// Outline renders the headings as an indented list, two spaces per level
// below the shallowest heading in the document.
func (s Stats) Outline() string {
	if len(s.Headings) == 0 {
		return ""
	}
	top := s.Headings[0].Level
	for _, h := range s.Headings {
		top = min(top, h.Level)
	}
	var b strings.Builder
	for _, h := range s.Headings {
		b.WriteString(strings.Repeat("  ", h.Level-top))
		b.WriteString("- " + h.Text + "\n")
	}
	return b.String()
}

// Summary is a one-line count of the document's blocks.
func (s Stats) Summary() string {
	return fmt.Sprintf("%d headings, %d paragraphs, %d tables (%d rows), %d lists (%d items), %d code blocks, %d links, %d images, %d words",
		len(s.Headings), s.Paragraphs, s.Tables, s.TableRows, s.Lists, s.ListItems, s.CodeBlocks, s.Links, s.Images, s.Words)
}
