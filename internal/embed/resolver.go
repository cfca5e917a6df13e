package embed

import (
	"context"

	"github.com/alnah/go-mdembed/internal/oembed"
)

// timeoutMessage prefixes the diagnostic recorded when an oEmbed fetch times out.
const timeoutMessage = "oEmbed URL timeout: "

// Resolver performs the oEmbed fetch for one pending embed.
type Resolver struct {
	fetcher oembed.Fetcher
}

// NewResolver creates a Resolver backed by fetcher.
func NewResolver(fetcher oembed.Fetcher) *Resolver {
	return &Resolver{fetcher: fetcher}
}

// Settlement is the outcome of resolving one pending embed. Either Response
// or Diagnostic is set. It does not touch the tree until Apply is called.
type Settlement struct {
	Node       *Embed
	Response   *oembed.Response
	Diagnostic *Diagnostic
}

// Resolve fetches metadata for n. It never mutates n.
func (r *Resolver) Resolve(ctx context.Context, n *Embed, source []byte) Settlement {
	target := n.OEmbedTarget()
	resp, err := r.fetcher.Fetch(ctx, target)
	if err != nil {
		msg := err.Error()
		if oembed.IsTimeout(err) {
			msg = timeoutMessage + target
		}
		d := NewDiagnostic(source, n.Offset, target, msg)
		return Settlement{Node: n, Diagnostic: &d}
	}
	return Settlement{Node: n, Response: resp}
}

// Apply commits the settlement to the tree. On success the fetched metadata is
// copied onto the node; configured dimensions win over fetched ones. On failure
// the node is replaced in its parent by its fallback link. Applying a
// settlement for an already settled node is a no-op.
func (s Settlement) Apply() {
	n := s.Node
	if n == nil || !n.Pending() {
		return
	}
	state := n.pending
	n.pending = nil

	if s.Response == nil {
		if parent := n.Parent(); parent != nil {
			parent.ReplaceChild(parent, n, state.fallback)
		}
		return
	}

	n.Src = s.Response.Src
	n.Thumbnail = s.Response.ThumbnailURL
	n.Width = pick(state.provider.Width, s.Response.Width)
	n.Height = pick(state.provider.Height, s.Response.Height)
}

func pick(configured, fetched int) int {
	if configured != 0 {
		return configured
	}
	return fetched
}
