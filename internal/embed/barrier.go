package embed

import (
	"context"
	"sort"
	"sync"

	"github.com/yuin/goldmark/ast"

	"github.com/alnah/go-mdembed/internal/oembed"
)

// Barrier resolves every pending embed of a document concurrently and fires a
// single continuation once all of them have settled.
type Barrier struct {
	resolver *Resolver
}

// NewBarrier creates a Barrier that fetches oEmbed metadata through fetcher.
func NewBarrier(fetcher oembed.Fetcher) *Barrier {
	return &Barrier{resolver: NewResolver(fetcher)}
}

// Run counts the embeds under doc and launches one goroutine per pending node.
// done is called exactly once with the diagnostics sorted by offset: inline
// when doc holds no pending embed, otherwise from the goroutine that settles
// the last one. Tree mutations are serialized.
func (b *Barrier) Run(ctx context.Context, doc ast.Node, source []byte, done func([]Diagnostic)) {
	nodes := Collect(doc)
	if len(nodes) == 0 {
		done(nil)
		return
	}

	l := newLatch(len(nodes), done)
	for _, n := range nodes {
		if !n.Pending() {
			l.settle(nil)
			continue
		}
		go func(n *Embed) {
			s := b.resolver.Resolve(ctx, n, source)
			l.settle(&s)
		}(n)
	}
}

// Wait is Run for synchronous callers.
func (b *Barrier) Wait(ctx context.Context, doc ast.Node, source []byte) []Diagnostic {
	ch := make(chan []Diagnostic, 1)
	b.Run(ctx, doc, source, func(diags []Diagnostic) {
		ch <- diags
	})
	return <-ch
}

// Collect returns the embed nodes under doc in document order.
func Collect(doc ast.Node) []*Embed {
	var nodes []*Embed
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if e, ok := n.(*Embed); ok {
			nodes = append(nodes, e)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return nodes
}

// latch counts down once per embed and releases done when it reaches zero.
type latch struct {
	mu        sync.Mutex
	remaining int
	diags     []Diagnostic
	done      func([]Diagnostic)
	once      sync.Once
}

func newLatch(n int, done func([]Diagnostic)) *latch {
	return &latch{remaining: n, done: done}
}

// settle applies s (nil for nodes that need no fetch) and decrements the counter.
func (l *latch) settle(s *Settlement) {
	l.mu.Lock()
	if s != nil {
		s.Apply()
		if s.Diagnostic != nil {
			l.diags = append(l.diags, *s.Diagnostic)
		}
	}
	l.remaining--
	last := l.remaining == 0
	diags := l.diags
	l.mu.Unlock()

	if last {
		l.once.Do(func() {
			sort.SliceStable(diags, func(i, j int) bool {
				return diags[i].Offset < diags[j].Offset
			})
			l.done(diags)
		})
	}
}
