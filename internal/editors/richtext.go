package editors

import (
	"strings"

	"github.com/dgallion1/gridgest/internal/layout"
	"golang.org/x/net/html"
)

// RichText is a control whose value is an HTML fragment. The plain text is
// extracted once at build time; the model is immutable afterward.
type RichText struct {
	layout.ControlBase
	HTML string
	text string
}

func NewRichText(base layout.ControlBase, _ map[string]any) (layout.Control, error) {
	c := &RichText{ControlBase: base}
	c.HTML, _ = base.Value().(string)
	c.text = stripTags(c.HTML)
	return c, nil
}

// IsValid reports false for a rich-text control whose markup contains no
// text, e.g. "<p></p>".
func (c *RichText) IsValid() bool { return c.text != "" }

func (c *RichText) SearchableText() string { return c.text }

// stripTags extracts the text content of an HTML fragment. Text from
// adjacent elements is joined with single spaces so words do not run
// together when tags are removed.
func stripTags(fragment string) string {
	if strings.TrimSpace(fragment) == "" {
		return ""
	}
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		// The tokenizer is lenient; a hard failure means the value is
		// not usable as markup. Fall back to the raw string.
		return strings.TrimSpace(fragment)
	}

	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.Join(parts, " ")
}
