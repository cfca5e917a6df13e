package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-mdembed/internal/embed"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// DefaultTitle is the document title used when none is given.
const DefaultTitle = "Document"

// htmlTemplate wraps Goldmark's fragment output in a complete HTML5 document.
const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s
</body>
</html>`

// Output is the result of one conversion.
type Output struct {
	Body        string // HTML fragment
	Diagnostics []embed.Diagnostic
}

// Document wraps the body in a standalone HTML5 document.
func (o *Output) Document(title string) string {
	if title == "" {
		title = DefaultTitle
	}
	return fmt.Sprintf(htmlTemplate, html.EscapeString(title), o.Body)
}

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (*Output, error)
}

// GoldmarkOptions configures a GoldmarkConverter.
type GoldmarkOptions struct {
	Extensions []goldmark.Extender // e.g. the embed extension
	HardWraps  bool                // treat newlines as <br>
	Unsafe     bool                // render raw HTML and dangerous URLs
}

// GoldmarkConverter converts Markdown to HTML using goldmark (pure Go).
type GoldmarkConverter struct {
	md goldmark.Markdown
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions, syntax
// highlighting, and the given extensions.
func NewGoldmarkConverter(opts GoldmarkOptions) *GoldmarkConverter {
	exts := []goldmark.Extender{
		extension.GFM,      // Tables, strikethrough, autolinks, task lists
		extension.Footnote, // [^1] footnotes
		highlighting.NewHighlighting(
			highlighting.WithFormatOptions(
				chromahtml.WithClasses(true), // CSS classes for smaller HTML and external stylesheet control
			),
		),
	}
	exts = append(exts, opts.Extensions...)

	var rendererOpts []renderer.Option
	if opts.HardWraps {
		rendererOpts = append(rendererOpts, gmhtml.WithHardWraps()) // Treat newlines as <br>
	}
	if opts.Unsafe {
		rendererOpts = append(rendererOpts, gmhtml.WithUnsafe())
	}

	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(), // Generate IDs for headings
		),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	return &GoldmarkConverter{md: md}
}

// ToHTML converts Markdown content to an HTML fragment and collects embed
// diagnostics. A marker URL without a hostname fails the whole conversion
// with embed.ErrParse.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context. The context also bounds the
// oEmbed fetches started during the pass.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (*Output, error) {
	// Fast path: check context before starting
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		out *Output
		err error
	}

	done := make(chan result, 1)

	go func() {
		source := []byte(content)
		pc := embed.NewContext(ctx)
		doc := c.md.Parser().Parse(text.NewReader(source), parser.WithContext(pc))
		if err := embed.ParseError(pc); err != nil {
			done <- result{err: err}
			return
		}

		var buf bytes.Buffer
		if err := c.md.Renderer().Render(&buf, source, doc); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{out: &Output{Body: buf.String(), Diagnostics: embed.Diagnostics(pc)}}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.out, r.err
	}
}
