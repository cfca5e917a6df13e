package embed

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// RendererPriority is the priority used to register HTMLRenderer.
const RendererPriority = 500

// HTMLRenderer renders Embed nodes as HTML elements.
type HTMLRenderer struct {
	html.Config
}

// NewHTMLRenderer returns an HTMLRenderer. It honors html.WithUnsafe for
// dangerous src URLs.
func NewHTMLRenderer(opts ...html.Option) renderer.NodeRenderer {
	r := &HTMLRenderer{Config: html.NewConfig()}
	for _, opt := range opts {
		opt.SetHTMLOption(&r.Config)
	}
	return r
}

// RegisterFuncs implements renderer.NodeRenderer.RegisterFuncs.
func (r *HTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindEmbed, r.renderEmbed)
}

func (r *HTMLRenderer) renderEmbed(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*Embed)

	// An unsettled node only survives when resolution was skipped.
	if n.Pending() {
		raw := []byte(n.RawURL)
		_, _ = w.WriteString(`<a href="`)
		_, _ = w.Write(util.EscapeHTML(util.URLEscape(raw, true)))
		_, _ = w.WriteString(`">`)
		_, _ = w.Write(util.EscapeHTML(raw))
		_, _ = w.WriteString("</a>")
		return ast.WalkSkipChildren, nil
	}

	_ = w.WriteByte('<')
	_, _ = w.WriteString(n.Tag)
	for _, a := range n.Props() {
		value := []byte(a.Value)
		if a.Name == "src" && !r.Unsafe && html.IsDangerousURL(value) {
			continue
		}
		_ = w.WriteByte(' ')
		_, _ = w.WriteString(a.Name)
		_, _ = w.WriteString(`="`)
		_, _ = w.Write(util.EscapeHTML(value))
		_ = w.WriteByte('"')
	}
	_, _ = w.WriteString("></")
	_, _ = w.WriteString(n.Tag)
	_ = w.WriteByte('>')
	return ast.WalkSkipChildren, nil
}
