// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	// maxSummaryKeys is how many object keys the JSON summary lists.
	maxSummaryKeys = 10
	// maxSummaryElements is how many tag names the XML summary lists.
	maxSummaryElements = 20
)

// RenderJSON pretty-prints a JSON document with two-space indentation and
// appends a short structural summary. Key order is preserved. Invalid JSON
// fails with ErrParse carrying the parser's message.
func RenderJSON(name, text string) (string, error) {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, []byte(strings.TrimSpace(text)), "", "  "); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrParse, name, err)
	}

	var b strings.Builder
	b.WriteString("# " + name + "\n\n")
	b.WriteString("```json\n")
	b.Write(pretty.Bytes())
	b.WriteString("\n```\n\n")
	b.WriteString("## Structure\n\n")

	root := gjson.Parse(text)
	switch {
	case root.IsArray():
		items := root.Array()
		b.WriteString("- Type: array\n")
		fmt.Fprintf(&b, "- Items: %d\n", len(items))
		if len(items) > 0 && items[0].IsObject() {
			fields := objectKeys(items[0])
			if len(fields) > 0 {
				b.WriteString("- Fields: " + strings.Join(fields, ", ") + "\n")
			}
		}
	case root.IsObject():
		keys := objectKeys(root)
		b.WriteString("- Type: object\n")
		fmt.Fprintf(&b, "- Keys: %d\n", len(keys))
		if len(keys) > 0 {
			shown := keys
			if len(shown) > maxSummaryKeys {
				shown = shown[:maxSummaryKeys]
			}
			line := "- Key names: " + strings.Join(shown, ", ")
			if len(keys) > maxSummaryKeys {
				line += ", ..."
			}
			b.WriteString(line + "\n")
		}
	default:
		b.WriteString("- Type: " + jsonTypeName(root) + "\n")
	}
	return b.String(), nil
}

// objectKeys returns the keys of a JSON object in document order.
func objectKeys(obj gjson.Result) []string {
	var keys []string
	obj.ForEach(func(key, _ gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})
	return keys
}

func jsonTypeName(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return "string"
	case gjson.Number:
		return "number"
	case gjson.True, gjson.False:
		return "boolean"
	case gjson.Null:
		return "null"
	default:
		return "unknown"
	}
}

// openingTag matches the name of an opening or self-closing tag. Closing tags,
// declarations, processing instructions, and comments start with '/', '!' or
// '?' and do not match.
var openingTag = regexp.MustCompile(`<([A-Za-z_][\w.:-]*)`)

// RenderXML wraps the literal XML source in a fenced block and appends a
// summary built from a tag-name scan. The scan does not parse: tags inside
// comments or CDATA are counted like any other.
func RenderXML(name, text string) string {
	var b strings.Builder
	b.WriteString("# " + name + "\n\n")
	b.WriteString("```xml\n")
	b.WriteString(strings.TrimRight(text, "\n"))
	b.WriteString("\n```\n\n")
	b.WriteString("## Structure\n\n")

	var names []string
	seen := make(map[string]bool)
	for _, m := range openingTag.FindAllStringSubmatch(text, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}

	if len(names) == 0 {
		b.WriteString("- Unique elements: 0\n")
		return b.String()
	}

	b.WriteString("- Root element: " + names[0] + "\n")
	fmt.Fprintf(&b, "- Unique elements: %d\n", len(names))
	shown := names
	if len(shown) > maxSummaryElements {
		shown = shown[:maxSummaryElements]
	}
	line := "- Elements: " + strings.Join(shown, ", ")
	if len(names) > maxSummaryElements {
		line += ", ..."
	}
	b.WriteString(line + "\n")
	return b.String()
}
