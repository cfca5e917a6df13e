package embed

import (
	"strconv"

	"github.com/yuin/goldmark/ast"

	"github.com/alnah/go-mdembed/internal/provider"
)

// KindEmbed is the NodeKind of Embed.
var KindEmbed = ast.NewNodeKind("Embed")

// Attribute is one rendered property of an embed element.
type Attribute struct {
	Name  string
	Value string
}

// Embed is an inline node produced from a !(url) marker whose host matched an
// enabled provider. It is either resolved, with Src final, or pending until
// its oEmbed metadata is fetched.
type Embed struct {
	ast.BaseInline

	Tag       string
	Src       string
	Width     int
	Height    int
	Thumbnail string
	RawURL    string
	Offset    int // byte offset of '!' in the source

	pending *pendingState
}

type pendingState struct {
	target   string
	provider *provider.Provider
	fallback ast.Node
}

// NewResolvedEmbed returns an embed whose final URL is already known.
func NewResolvedEmbed(p *provider.Provider, rawURL string, offset int) *Embed {
	src := p.FinalURL(rawURL)
	return &Embed{
		Tag:       p.Tag,
		Src:       src,
		Width:     p.Width,
		Height:    p.Height,
		Thumbnail: p.ThumbnailURL(src),
		RawURL:    rawURL,
		Offset:    offset,
	}
}

// NewPendingEmbed returns an embed awaiting oEmbed resolution against target.
// On failure it is replaced by a link whose destination and text are rawURL.
func NewPendingEmbed(p *provider.Provider, rawURL, target string, offset int) *Embed {
	return &Embed{
		Tag:    p.Tag,
		Width:  p.Width,
		Height: p.Height,
		RawURL: rawURL,
		Offset: offset,
		pending: &pendingState{
			target:   target,
			provider: p,
			fallback: NewFallbackLink(rawURL),
		},
	}
}

// NewFallbackLink returns a link node whose destination and text are rawURL.
func NewFallbackLink(rawURL string) *ast.Link {
	link := ast.NewLink()
	link.Destination = []byte(rawURL)
	link.AppendChild(link, ast.NewString([]byte(rawURL)))
	return link
}

// Pending reports whether the node still awaits oEmbed resolution.
func (n *Embed) Pending() bool {
	return n.pending != nil
}

// OEmbedTarget returns the oEmbed request URL, or "" once settled.
func (n *Embed) OEmbedTarget() string {
	if n.pending == nil {
		return ""
	}
	return n.pending.target
}

// Fallback returns the node substituted when resolution fails, or nil once settled.
func (n *Embed) Fallback() ast.Node {
	if n.pending == nil {
		return nil
	}
	return n.pending.fallback
}

// Props returns the render properties in output order.
func (n *Embed) Props() []Attribute {
	props := []Attribute{
		{Name: "src", Value: n.Src},
		{Name: "width", Value: strconv.Itoa(n.Width)},
		{Name: "height", Value: strconv.Itoa(n.Height)},
		{Name: "allowfullscreen", Value: "true"},
		{Name: "frameborder", Value: "0"},
	}
	if n.Thumbnail != "" {
		props = append(props, Attribute{Name: "data-thumbnail", Value: n.Thumbnail})
	}
	return props
}

// Kind implements ast.Node.Kind.
func (n *Embed) Kind() ast.NodeKind {
	return KindEmbed
}

// Dump implements ast.Node.Dump.
func (n *Embed) Dump(source []byte, level int) {
	kv := map[string]string{
		"Tag":    n.Tag,
		"Src":    n.Src,
		"RawURL": n.RawURL,
		"Width":  strconv.Itoa(n.Width),
		"Height": strconv.Itoa(n.Height),
	}
	if n.Thumbnail != "" {
		kv["Thumbnail"] = n.Thumbnail
	}
	if n.pending != nil {
		kv["Pending"] = n.pending.target
	}
	ast.DumpHelper(n, source, level, kv, nil)
}
