package markdown

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/kazuhideoki/yaml-note-mvp/tree"
	"github.com/kazuhideoki/yaml-note-mvp/yamlcodec"
)

// DefaultTitle is used when a note has no level-1 heading.
const DefaultTitle = "Untitled Document"

var parser = goldmark.New()

// MDToYAML converts a markdown note into the title/content YAML shape: the
// first level-1 heading becomes "title" and everything after it becomes a
// literal-block "content". A note without an H1 keeps its whole text as
// content under DefaultTitle.
func MDToYAML(md string) string {
	title, found := firstH1(md)

	var content string
	if !found {
		title = DefaultTitle
		content = md
	} else {
		// Drop the title line itself; the rest is the content body.
		var kept []string
		seen := false
		for _, line := range strings.Split(md, "\n") {
			if !seen && strings.HasPrefix(strings.TrimLeft(line, " "), "# ") {
				seen = true
				continue
			}
			if seen {
				kept = append(kept, line)
			}
		}
		content = strings.TrimLeft(strings.Join(kept, "\n"), "\n")
	}

	return fmt.Sprintf("title: %s\ncontent: |\n%s", title, indentContent(content))
}

// YAMLToMD is the inverse transform: "# title", a blank line, then the
// content body.
func YAMLToMD(yamlText string) (string, error) {
	doc, err := yamlcodec.Decode([]byte(yamlText))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if t, ok := doc.Get("title"); ok && t.Kind == tree.StringNode {
		sb.WriteString("# " + t.Str + "\n\n")
	}
	if c, ok := doc.Get("content"); ok && c.Kind == tree.StringNode {
		sb.WriteString(c.Str)
		if !strings.HasSuffix(c.Str, "\n") {
			sb.WriteByte('\n')
		}
	}
	return sb.String(), nil
}

// firstH1 walks the markdown AST and returns the text of the first level-1
// heading.
func firstH1(md string) (string, bool) {
	src := []byte(md)
	doc := parser.Parser().Parse(text.NewReader(src))

	var title string
	found := false
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := n.(*ast.Heading)
		if !ok || !entering || h.Level != 1 || found {
			return ast.WalkContinue, nil
		}
		var sb strings.Builder
		for c := h.FirstChild(); c != nil; c = c.NextSibling() {
			if t, ok := c.(*ast.Text); ok {
				sb.Write(t.Segment.Value(src))
			}
		}
		title = sb.String()
		found = true
		return ast.WalkStop, nil
	})
	return title, found
}

// indentContent shifts every line two spaces for use in a YAML literal block.
func indentContent(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
