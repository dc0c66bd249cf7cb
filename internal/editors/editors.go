// Package editors provides the built-in control variants for the stock
// grid editors and a helper that registers them all on a factory.
package editors

import "github.com/dgallion1/gridgest/internal/layout"

// Stock editor aliases.
const (
	AliasRichText = "rte"
	AliasMarkdown = "markdown"
	AliasHeadline = "headline"
	AliasQuote    = "quote"
	AliasMedia    = "media"
	AliasEmbed    = "embed"
)

// Register adds every built-in variant to f. Callers that need a different
// set register constructors individually instead.
func Register(f *layout.Factory) {
	f.RegisterControl(AliasRichText, NewRichText)
	f.RegisterControl(AliasMarkdown, NewMarkdown)
	f.RegisterControl(AliasHeadline, NewHeadline)
	f.RegisterControl(AliasQuote, NewQuote)
	f.RegisterControl(AliasMedia, NewMedia)
	f.RegisterControl(AliasEmbed, NewEmbed)
}
