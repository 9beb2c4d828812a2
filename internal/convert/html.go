// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// nonContentSelector matches subtrees that never contribute text.
const nonContentSelector = "script, style, head, noscript, template, iframe, noembed, noframes"

var (
	excessNewlines = regexp.MustCompile(`\n{3,}`)
	blankLine      = regexp.MustCompile(`(?m)^[ \t]+$`)
	innerSpace     = regexp.MustCompile(`\s+`)
)

// blockContainers are elements with no Markdown construct of their own that
// still start on a new line.
var blockContainers = map[atom.Atom]bool{
	atom.Div: true, atom.Section: true, atom.Article: true, atom.Header: true,
	atom.Footer: true, atom.Main: true, atom.Nav: true, atom.Aside: true,
	atom.Figure: true, atom.Figcaption: true, atom.Form: true, atom.Address: true,
	atom.Dl: true, atom.Dt: true, atom.Dd: true, atom.Details: true, atom.Summary: true,
}

// RenderHTML converts markup into Markdown. It never fails: malformed markup
// degrades to whatever text the parser recovers. Entities are decoded once.
func RenderHTML(markup string) string {
	markup = strings.ReplaceAll(markup, "\r\n", "\n")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return finishMarkdown(stripTags(markup))
	}
	doc.Find(nonContentSelector).Remove()

	r := &htmlRenderer{}
	var b strings.Builder
	for _, n := range doc.Nodes {
		r.children(&b, n)
	}
	return finishMarkdown(b.String())
}

// finishMarkdown blanks whitespace-only lines, collapses runs of blank lines
// to one, and trims the result.
func finishMarkdown(md string) string {
	md = blankLine.ReplaceAllString(md, "")
	md = excessNewlines.ReplaceAllString(md, "\n\n")
	return strings.TrimSpace(md)
}

var anyTag = regexp.MustCompile(`<[^>]*>`)

func stripTags(s string) string {
	return anyTag.ReplaceAllString(s, "")
}

// htmlRenderer walks a parsed document and writes Markdown.
type htmlRenderer struct {
	listDepth int
}

func (r *htmlRenderer) children(b *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.node(b, c)
	}
}

func (r *htmlRenderer) inner(n *html.Node) string {
	var b strings.Builder
	r.children(&b, n)
	return b.String()
}

func (r *htmlRenderer) node(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(strings.ReplaceAll(n.Data, "\u00a0", " "))
		return
	case html.ElementNode:
	case html.DocumentNode:
		r.children(b, n)
		return
	default:
		return
	}

	switch n.DataAtom {
	case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		level := int(n.Data[1] - '0')
		text := collapseSpace(r.inner(n))
		b.WriteString("\n\n" + strings.Repeat("#", level) + " " + text + "\n\n")
	case atom.P:
		b.WriteString("\n\n" + strings.TrimSpace(r.inner(n)) + "\n\n")
	case atom.Br:
		b.WriteString("\n")
	case atom.Hr:
		b.WriteString("\n\n---\n\n")
	case atom.Ul, atom.Ol:
		r.list(b, n)
	case atom.Strong, atom.B:
		b.WriteString(wrapInline(r.inner(n), "**"))
	case atom.Em, atom.I:
		b.WriteString(wrapInline(r.inner(n), "*"))
	case atom.Code:
		b.WriteString(wrapInline(textContent(n), "`"))
	case atom.Pre:
		code := strings.TrimRight(textContent(n), "\n")
		b.WriteString("\n\n```\n" + code + "\n```\n\n")
	case atom.Blockquote:
		r.blockquote(b, n)
	case atom.A:
		text := r.inner(n)
		if href, ok := attr(n, "href"); ok {
			b.WriteString("[" + strings.TrimSpace(text) + "](" + href + ")")
		} else {
			b.WriteString(text)
		}
	case atom.Img:
		if src, ok := attr(n, "src"); ok {
			alt, _ := attr(n, "alt")
			b.WriteString("![" + alt + "](" + src + ")")
		}
	case atom.Table:
		r.table(b, n)
	case atom.Textarea, atom.Xmp, atom.Plaintext:
		// The parser keeps their contents as one unparsed text node.
		b.WriteString(stripTags(textContent(n)))
	default:
		if blockContainers[n.DataAtom] {
			b.WriteString("\n" + r.inner(n) + "\n")
			return
		}
		r.children(b, n)
	}
}

// list writes one ul/ol. Items are indented two spaces per nesting level.
func (r *htmlRenderer) list(b *strings.Builder, n *html.Node) {
	ordered := n.DataAtom == atom.Ol
	index := 1
	if ordered {
		if s, ok := attr(n, "start"); ok {
			if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
				index = v
			}
		}
	}

	indent := strings.Repeat("  ", r.listDepth)
	var lines []string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.DataAtom != atom.Li {
			continue
		}
		marker := "-"
		if ordered {
			marker = strconv.Itoa(index) + "."
			index++
		}
		text, nested := r.listItem(c)
		lines = append(lines, indent+marker+" "+text)
		lines = append(lines, nested...)
	}

	if r.listDepth > 0 {
		b.WriteString(strings.Join(lines, "\n"))
		return
	}
	b.WriteString("\n\n" + strings.Join(lines, "\n") + "\n\n")
}

// listItem renders an li's own text and, separately, the lines of any lists
// nested inside it.
func (r *htmlRenderer) listItem(li *html.Node) (string, []string) {
	var text strings.Builder
	var nested []string
	for c := li.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Ul || c.DataAtom == atom.Ol) {
			r.listDepth++
			var sub strings.Builder
			r.list(&sub, c)
			r.listDepth--
			if s := sub.String(); s != "" {
				nested = append(nested, strings.Split(s, "\n")...)
			}
			continue
		}
		r.node(&text, c)
	}
	return collapseSpace(text.String()), nested
}

func (r *htmlRenderer) blockquote(b *strings.Builder, n *html.Node) {
	body := finishMarkdown(r.inner(n))
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			lines[i] = ">"
			continue
		}
		lines[i] = "> " + line
	}
	b.WriteString("\n\n" + strings.Join(lines, "\n") + "\n\n")
}

// table writes the rows of one table element. The separator is sized from the
// first row; later rows are written as-is even when their width differs.
func (r *htmlRenderer) table(b *strings.Builder, n *html.Node) {
	var rows [][]string
	for _, tr := range tableRows(n) {
		var cells []string
		for c := tr.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
				cells = append(cells, collapseSpace(r.inner(c)))
			}
		}
		rows = append(rows, cells)
	}
	if len(rows) == 0 {
		return
	}

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, tableRow(rows[0]))
	cols := len(rows[0])
	if cols == 0 {
		cols = 1
	}
	lines = append(lines, separatorRow(cols))
	for _, row := range rows[1:] {
		lines = append(lines, tableRow(row))
	}
	b.WriteString("\n\n" + strings.Join(lines, "\n") + "\n\n")
}

// tableRows returns the tr elements that belong to table t, in document order,
// looking through thead/tbody/tfoot but not into nested tables.
func tableRows(t *html.Node) []*html.Node {
	var rows []*html.Node
	for c := t.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Tr:
			rows = append(rows, c)
		case atom.Thead, atom.Tbody, atom.Tfoot:
			for tr := c.FirstChild; tr != nil; tr = tr.NextSibling {
				if tr.Type == html.ElementNode && tr.DataAtom == atom.Tr {
					rows = append(rows, tr)
				}
			}
		}
	}
	return rows
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// textContent concatenates the raw text of every descendant of n.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func collapseSpace(s string) string {
	return strings.TrimSpace(innerSpace.ReplaceAllString(s, " "))
}

// wrapInline surrounds s with marker, keeping surrounding spaces outside the
// markers. Whitespace-only content is returned unchanged.
func wrapInline(s, marker string) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return s
	}
	lead := s[:strings.Index(s, trimmed)]
	trail := s[len(lead)+len(trimmed):]
	return lead + marker + trimmed + marker + trail
}
