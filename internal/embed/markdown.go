package embed

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// Markdown serializes an embed back to its marker form. The original raw URL
// is used, never the transformed one.
func Markdown(n *Embed) string {
	return "!(" + n.RawURL + ")"
}

// MarkdownRenderer writes inline content back as Markdown source: embeds as
// markers, text verbatim. Block structure is left to the host renderer.
type MarkdownRenderer struct{}

// NewMarkdownRenderer returns a MarkdownRenderer.
func NewMarkdownRenderer() renderer.NodeRenderer {
	return &MarkdownRenderer{}
}

// RegisterFuncs implements renderer.NodeRenderer.RegisterFuncs.
func (r *MarkdownRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindEmbed, r.renderEmbed)
	reg.Register(ast.KindText, r.renderText)
	reg.Register(ast.KindString, r.renderString)
}

func (r *MarkdownRenderer) renderEmbed(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(Markdown(node.(*Embed)))
	}
	return ast.WalkSkipChildren, nil
}

func (r *MarkdownRenderer) renderText(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Text)
	_, _ = w.Write(n.Segment.Value(source))
	if n.HardLineBreak() {
		_, _ = w.WriteString("\\\n")
	} else if n.SoftLineBreak() {
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *MarkdownRenderer) renderString(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.Write(node.(*ast.String).Value)
	}
	return ast.WalkContinue, nil
}
