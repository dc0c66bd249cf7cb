package editors

import (
	"bytes"
	"strings"

	"github.com/dgallion1/gridgest/internal/layout"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Markdown is a control whose value is markdown source. Searchable text is
// extracted from the goldmark AST at build time.
type Markdown struct {
	layout.ControlBase
	Source string
	text   string
}

func NewMarkdown(base layout.ControlBase, _ map[string]any) (layout.Control, error) {
	c := &Markdown{ControlBase: base}
	c.Source, _ = base.Value().(string)
	c.text = markdownText(c.Source)
	return c, nil
}

func (c *Markdown) IsValid() bool          { return c.text != "" }
func (c *Markdown) SearchableText() string { return c.text }

// markdownText flattens the markdown AST into plain text, block by block.
func markdownText(source string) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}
	src := []byte(source)
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var parts []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if t := nodeText(n, src); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// nodeText gets the text content of a goldmark AST node, recursing through
// nested inlines.
func nodeText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte(' ')
			}
		} else {
			if s := nodeText(c, src); s != "" {
				if buf.Len() > 0 {
					buf.WriteByte(' ')
				}
				buf.WriteString(s)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
