// Package embed turns !(url) markers into embed nodes inside a goldmark tree
// and resolves pending oEmbed nodes before rendering.
package embed

import (
	"bytes"
	"fmt"
	"net/url"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-mdembed/internal/oembed"
	"github.com/alnah/go-mdembed/internal/provider"
)

// ParserPriority places the marker parser ahead of goldmark's LinkParser (200),
// which also triggers on '!'.
const ParserPriority = 199

var markerPrefix = []byte("!(http")

type markerParser struct {
	registry *provider.Registry
}

// NewParser returns an inline parser that recognizes !(url) markers and
// classifies them against registry.
func NewParser(registry *provider.Registry) parser.InlineParser {
	return &markerParser{registry: registry}
}

func (p *markerParser) Trigger() []byte {
	return []byte{'!'}
}

func (p *markerParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, seg := block.PeekLine()
	if !bytes.HasPrefix(line, markerPrefix) {
		return nil
	}

	n := scanMarker(line)
	span := text.NewSegment(seg.Start, seg.Start+n)
	raw := rawURL(line[:n])
	block.Advance(n)

	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		l, col := position(block.Source(), seg.Start)
		setParseError(pc, fmt.Errorf("%w: %d:%d: %q", ErrParse, l, col, raw))
		return ast.NewTextSegment(span)
	}

	prov, ok := p.registry.Lookup(u.Hostname())
	if !ok || !prov.Accepts(raw) {
		return ast.NewTextSegment(span)
	}

	if prov.OEmbed != "" {
		return NewPendingEmbed(prov, raw, oembed.BuildTarget(prov.OEmbed, raw), seg.Start)
	}
	return NewResolvedEmbed(prov, raw, seg.Start)
}

// scanMarker returns the length of the marker at the start of line. It stops
// right after the first ')' or at the end of the line. An unterminated marker
// consumes the rest of the current line only.
func scanMarker(line []byte) int {
	end := len(bytes.TrimRight(line, "\r\n"))
	i := 0
	for i < end {
		c := line[i]
		i++
		if c == ')' {
			break
		}
	}
	return i
}

// rawURL strips the structural characters '!', '(' and ')' from a marker span.
func rawURL(span []byte) string {
	var b bytes.Buffer
	b.Grow(len(span))
	for _, c := range span {
		switch c {
		case '!', '(', ')':
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
