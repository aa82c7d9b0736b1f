// Package markdown converts Markdown documents to HTML.
//
// The conversion is a pure function from the editor core's perspective: the
// core only retriggers it on buffer change and never inspects the output.
package markdown

import (
	"bufio"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// ToHTML renders a Markdown document to HTML with the common extensions
// (tables, fenced code blocks, autolinks, strikethrough).
func ToHTML(md string) string {
	// Parsers are stateful and cannot be reused across documents.
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags,
	})
	out := markdown.ToHTML([]byte(md), p, renderer)
	return strings.TrimSpace(string(out))
}

// Title returns the text of the first ATX heading, or "" when the document
// has none.
func Title(md string) string {
	scanner := bufio.NewScanner(strings.NewReader(md))
	inFence := false
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			return strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		}
	}
	return ""
}
