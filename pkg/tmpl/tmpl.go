// Package tmpl renders text templates that produce markdown.
package tmpl

import (
	"bytes"
	"fmt"
	"maps"
	"strings"
	"text/template"
)

// code wraps s in an inline code span, using a longer backtick fence when s
// itself contains backticks.
func code(s string) string {
	if s == "" {
		return "` `"
	}
	fence := "`"
	for strings.Contains(s, fence) {
		fence += "`"
	}
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		return fence + " " + s + " " + fence
	}
	return fence + s + fence
}

// quote prefixes every line of s with "> ".
func quote(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight("> "+l, " ")
	}
	return strings.Join(lines, "\n")
}

// cell makes s safe inside a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, "\r\n", "<br>")
	return strings.ReplaceAll(s, "\n", "<br>")
}

var funcs = template.FuncMap{
	"join":  strings.Join,
	"code":  code,
	"quote": quote,
	"cell":  cell,
}

// Render executes a Go template string with the given data. Extra function
// maps are merged over the built-ins. Missing map keys are errors.
//
// Built-in functions:
//   - join: Join string slice with separator (e.g., join .Langs ", ")
//   - code: Inline code span
//   - quote: Markdown block quote
//   - cell: Escape pipes and newlines for table cells
func Render(tmpl string, data any, extra ...template.FuncMap) (string, error) {
	fm := maps.Clone(funcs)
	for _, e := range extra {
		maps.Copy(fm, e)
	}

	t, err := template.New("").Funcs(fm).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}
