package editors

import (
	"strings"

	"github.com/dgallion1/gridgest/internal/layout"
)

// Headline is a single line of display text.
type Headline struct {
	layout.ControlBase
	Text string
}

func NewHeadline(base layout.ControlBase, _ map[string]any) (layout.Control, error) {
	c := &Headline{ControlBase: base}
	c.Text, _ = base.Value().(string)
	return c, nil
}

func (c *Headline) IsValid() bool          { return strings.TrimSpace(c.Text) != "" }
func (c *Headline) SearchableText() string { return c.Text }

// Quote is a pull-quote with an optional attribution carried in the
// control's extra fields.
type Quote struct {
	layout.ControlBase
	Text string
}

func NewQuote(base layout.ControlBase, _ map[string]any) (layout.Control, error) {
	c := &Quote{ControlBase: base}
	c.Text, _ = base.Value().(string)
	return c, nil
}

func (c *Quote) IsValid() bool          { return strings.TrimSpace(c.Text) != "" }
func (c *Quote) SearchableText() string { return c.Text }
