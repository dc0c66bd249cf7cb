package editors

import (
	"strings"

	"github.com/dgallion1/gridgest/internal/layout"
)

// Media is an image (or other asset) reference. Its value is an object:
// {"url": ..., "altText": ..., "caption": ...}; older documents use
// "image" instead of "url".
type Media struct {
	layout.ControlBase
	URL     string
	AltText string
	Caption string
}

func NewMedia(base layout.ControlBase, _ map[string]any) (layout.Control, error) {
	c := &Media{ControlBase: base}
	if v, ok := base.Value().(map[string]any); ok {
		c.URL, _ = v["url"].(string)
		if c.URL == "" {
			c.URL, _ = v["image"].(string)
		}
		c.AltText, _ = v["altText"].(string)
		c.Caption, _ = v["caption"].(string)
	}
	return c, nil
}

// IsValid requires an asset reference; alt text alone is not content.
func (c *Media) IsValid() bool { return c.URL != "" }

// SearchableText exposes the alt text and caption; the asset itself has no
// indexable text.
func (c *Media) SearchableText() string {
	return strings.TrimSpace(strings.TrimSpace(c.AltText) + " " + strings.TrimSpace(c.Caption))
}

// Embed is third-party embed markup or a URL resolved by the renderer.
type Embed struct {
	layout.ControlBase
	Markup string
}

func NewEmbed(base layout.ControlBase, _ map[string]any) (layout.Control, error) {
	c := &Embed{ControlBase: base}
	c.Markup, _ = base.Value().(string)
	return c, nil
}

func (c *Embed) IsValid() bool { return strings.TrimSpace(c.Markup) != "" }

// SearchableText returns "" — embed markup is not authored text.
func (c *Embed) SearchableText() string { return "" }
