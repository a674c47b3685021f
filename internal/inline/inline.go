// Package inline turns template text with Markdown emphasis into styled spans.
//
// Only strong emphasis (**bold**) carries meaning; everything else is kept as
// literal text. Block-level Markdown is not expected in template strings and
// is flattened if present.
package inline

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Span is a run of text with uniform weight.
type Span struct {
	Text string
	Bold bool
}

var mdParser parser.Parser = goldmark.New().Parser()

// Parse splits s into spans. Adjacent spans with the same weight are merged,
// and paragraphs are joined with a single space.
func Parse(s string) []Span {
	if s == "" {
		return nil
	}

	src := []byte(s)
	root := mdParser.Parse(text.NewReader(src))

	var spans []Span
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Kind() == ast.KindParagraph && n.NextSibling() != nil {
				spans = appendSpan(spans, " ", false)
			}
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Text:
			spans = appendSpan(spans, string(node.Segment.Value(src)), isStrong(node))
			if node.SoftLineBreak() || node.HardLineBreak() {
				spans = appendSpan(spans, " ", isStrong(node))
			}
		case *ast.String:
			spans = appendSpan(spans, string(node.Value), isStrong(node))
		}
		return ast.WalkContinue, nil
	})
	return spans
}

// Plain returns s with emphasis markers removed.
func Plain(s string) string {
	var out []byte
	for _, sp := range Parse(s) {
		out = append(out, sp.Text...)
	}
	return string(out)
}

func isStrong(n ast.Node) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if e, ok := p.(*ast.Emphasis); ok && e.Level == 2 {
			return true
		}
	}
	return false
}

func appendSpan(spans []Span, s string, bold bool) []Span {
	if s == "" {
		return spans
	}
	if n := len(spans); n > 0 && spans[n-1].Bold == bold {
		spans[n-1].Text += s
		return spans
	}
	return append(spans, Span{Text: s, Bold: bold})
}
