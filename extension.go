package mdembed

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-mdembed/internal/embed"
	"github.com/alnah/go-mdembed/internal/oembed"
)

// Fetcher retrieves oEmbed metadata for a fully built oEmbed request URL.
// Implement it to plug a cache or a custom transport into the extension.
type Fetcher = oembed.Fetcher

// OEmbedResponse is the subset of an oEmbed reply used to render an embed.
type OEmbedResponse = oembed.Response

// Diagnostic is an advisory message recorded when an oEmbed resolution fails.
type Diagnostic = embed.Diagnostic

// DefaultOEmbedTimeout bounds each oEmbed request.
const DefaultOEmbedTimeout = oembed.DefaultTimeout

// Extension is a goldmark extension that turns !(url) markers into embeds.
//
// Markers whose host is unknown, disabled, or rejected by the provider's match
// pattern stay literal text. oEmbed providers are resolved concurrently before
// rendering; failures become plain links and are reported as diagnostics
// (see Diagnostics).
type Extension struct {
	providers   *Providers
	fetcher     Fetcher
	htmlOptions []html.Option
}

// NewExtension returns an Extension. A nil fetcher uses an HTTP client with
// DefaultOEmbedTimeout. htmlOptions apply to embed rendering; html.WithUnsafe
// keeps src values that goldmark considers dangerous.
func NewExtension(providers *Providers, fetcher Fetcher, htmlOptions ...html.Option) *Extension {
	if fetcher == nil {
		fetcher = oembed.NewClient()
	}
	return &Extension{providers: providers, fetcher: fetcher, htmlOptions: htmlOptions}
}

// Extend implements goldmark.Extender.
func (e *Extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithInlineParsers(
			util.Prioritized(embed.NewParser(e.providers), embed.ParserPriority),
		),
		parser.WithASTTransformers(
			util.Prioritized(embed.NewTransformer(embed.NewBarrier(e.fetcher)), embed.TransformerPriority),
		),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(embed.NewHTMLRenderer(e.htmlOptions...), embed.RendererPriority),
		),
	)
}

// NewContext returns a parser context whose oEmbed fetches are bound to ctx.
// Pass it with parser.WithContext to read Diagnostics and ParseError afterwards.
var NewContext = embed.NewContext

// Diagnostics returns the diagnostics recorded in pc, sorted by source offset.
func Diagnostics(pc parser.Context) []Diagnostic {
	return embed.Diagnostics(pc)
}

// ParseError returns the ErrParse recorded in pc, if any. goldmark keeps
// rendering after a parse error, so callers of goldmark.Markdown.Convert
// should check it.
func ParseError(pc parser.Context) error {
	return embed.ParseError(pc)
}

// KindEmbed is the goldmark node kind of resolved embeds.
var KindEmbed = embed.KindEmbed

// MarkerOf returns the !(url) marker an embed node was parsed from, with the
// original raw URL. ok is false for any other node.
func MarkerOf(n ast.Node) (marker string, ok bool) {
	e, ok := n.(*embed.Embed)
	if !ok {
		return "", false
	}
	return embed.Markdown(e), true
}

// NewMarkdownRenderer returns a node renderer that writes embeds back as
// !(url) markers and text verbatim, for hosts that emit Markdown.
func NewMarkdownRenderer() renderer.NodeRenderer {
	return embed.NewMarkdownRenderer()
}

// Compile-time interface check.
var _ goldmark.Extender = (*Extension)(nil)
