package embed_test

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-mdembed/internal/embed"
	"github.com/alnah/go-mdembed/internal/oembed"
	"github.com/alnah/go-mdembed/internal/provider"
)

const testProviders = `
www.youtube.com:
  width: 560
  height: 315
  replace:
    - ["watch?v=", "embed/"]
  thumbnail:
    format: "https://img/{id}.jpg"
    id: ".+/(.+)$"
off.test:
  width: 100
  height: 100
  disabled: true
jsfiddle.net:
  width: 300
  height: 200
  match: '^https://jsfiddle\.net/\w+/$'
  append: "embedded/"
soundcloud.com:
  width: 500
  height: 166
  oembed: "https://soundcloud.com/oembed"
video.test:
  tag: video
  width: 640
  height: 360
`

func testRegistry(t *testing.T) *provider.Registry {
	t.Helper()

	reg, err := provider.Parse([]byte(testProviders), provider.FormatYAML)
	if err != nil {
		t.Fatalf("provider.Parse() unexpected error: %v", err)
	}
	return reg
}

// fakeFetcher answers oEmbed requests without touching the network.
type fakeFetcher struct {
	mu    sync.Mutex
	calls []string
	fn    func(ctx context.Context, target string) (*oembed.Response, error)
}

func (f *fakeFetcher) Fetch(ctx context.Context, target string) (*oembed.Response, error) {
	f.mu.Lock()
	f.calls = append(f.calls, target)
	f.mu.Unlock()
	return f.fn(ctx, target)
}

func (f *fakeFetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func okFetcher(src string) *fakeFetcher {
	return &fakeFetcher{fn: func(context.Context, string) (*oembed.Response, error) {
		return &oembed.Response{Src: src, ThumbnailURL: "https://thumb.test/t.jpg", Width: 1, Height: 2}, nil
	}}
}

// parseOnly runs the tokenizer without resolving pending embeds.
func parseOnly(t *testing.T, src string) (ast.Node, parser.Context) {
	t.Helper()

	md := goldmark.New(goldmark.WithParserOptions(
		parser.WithInlineParsers(util.Prioritized(embed.NewParser(testRegistry(t)), embed.ParserPriority)),
	))
	pc := parser.NewContext()
	doc := md.Parser().Parse(text.NewReader([]byte(src)), parser.WithContext(pc))
	return doc, pc
}

func newMarkdown(t *testing.T, fetcher oembed.Fetcher) goldmark.Markdown {
	t.Helper()

	return goldmark.New(
		goldmark.WithParserOptions(
			parser.WithInlineParsers(util.Prioritized(embed.NewParser(testRegistry(t)), embed.ParserPriority)),
			parser.WithASTTransformers(util.Prioritized(embed.NewTransformer(embed.NewBarrier(fetcher)), embed.TransformerPriority)),
		),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(util.Prioritized(embed.NewHTMLRenderer(), embed.RendererPriority)),
		),
	)
}

// convert parses and renders src, returning the HTML and the parser context.
func convert(t *testing.T, fetcher oembed.Fetcher, src string) (string, parser.Context) {
	t.Helper()

	md := newMarkdown(t, fetcher)
	pc := embed.NewContext(context.Background())
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf, parser.WithContext(pc)); err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	return buf.String(), pc
}

// plainText concatenates the literal text nodes of doc.
func plainText(doc ast.Node, source []byte) string {
	var b bytes.Buffer
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(source))
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
