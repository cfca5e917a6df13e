package embed

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// TransformerPriority runs the barrier after goldmark's built-in transformers.
const TransformerPriority = 1000

type transformer struct {
	barrier *Barrier
}

// NewTransformer returns an AST transformer that blocks until every pending
// embed has settled. It skips resolution when the pass recorded ErrParse.
func NewTransformer(barrier *Barrier) parser.ASTTransformer {
	return &transformer{barrier: barrier}
}

func (t *transformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	if ParseError(pc) != nil {
		return
	}

	diags := t.barrier.Wait(passContext(pc), doc, reader.Source())
	if len(diags) == 0 {
		return
	}
	pc.Set(diagnosticsKey, append(Diagnostics(pc), diags...))
	doc.AddMeta(DiagnosticsMetaKey, diags)
}
