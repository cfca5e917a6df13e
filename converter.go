package mdembed

import (
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/alnah/go-mdembed/internal/oembed"
	"github.com/alnah/go-mdembed/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.CommonMarkPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
)

// Converter orchestrates the Markdown-to-HTML conversion with embeds.
// Create with NewConverter and use Convert. A Converter is safe for
// concurrent use.
type Converter struct {
	cfg           converterConfig
	providers     *Providers
	fetcher       Fetcher
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
}

// NewConverter creates a Converter with the built-in provider set.
// Use options to customize behavior (e.g., WithProviderFile, WithTimeout).
// Returns error if provider loading fails.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout:       defaultTimeout,
			oembedTimeout: DefaultOEmbedTimeout,
			providerSet:   DefaultProviderSet,
		},
		preprocessor: &pipeline.CommonMarkPreprocessor{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.resolveProviders(); err != nil {
		return nil, err
	}

	if c.fetcher == nil {
		clientOpts := []oembed.Option{
			oembed.WithTimeout(c.cfg.oembedTimeout),
			oembed.WithHTTPClient(c.cfg.httpClient),
		}
		if c.cfg.userAgent != "" {
			clientOpts = append(clientOpts, oembed.WithUserAgent(c.cfg.userAgent))
		}
		c.fetcher = oembed.NewClient(clientOpts...)
	}

	var htmlOpts []html.Option
	if c.cfg.unsafe {
		htmlOpts = append(htmlOpts, html.WithUnsafe())
	}

	// Create HTML converter if not injected (e.g., by tests)
	if c.htmlConverter == nil {
		c.htmlConverter = pipeline.NewGoldmarkConverter(pipeline.GoldmarkOptions{
			Extensions: []goldmark.Extender{NewExtension(c.providers, c.fetcher, htmlOpts...)},
			HardWraps:  c.cfg.hardWraps,
			Unsafe:     c.cfg.unsafe,
		})
	}

	return c, nil
}

// Providers returns the provider table in use.
func (c *Converter) Providers() *Providers {
	return c.providers
}

// Convert turns input.Markdown into HTML. The context bounds the whole
// conversion, oEmbed requests included.
// Returns ErrParse if a marker URL has no hostname. oEmbed failures do not
// fail the conversion; they are reported in ConvertResult.Diagnostics.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if strings.TrimSpace(input.Markdown) == "" {
		return nil, ErrEmptyMarkdown
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	// Preprocess markdown
	mdContent := c.preprocessor.PreprocessMarkdown(ctx, input.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// Convert to HTML, resolving embeds
	out, err := c.htmlConverter.ToHTML(ctx, mdContent)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	htmlContent := out.Body
	if !input.Fragment {
		htmlContent = out.Document(input.Title)
	}

	return &ConvertResult{
		HTML:        []byte(htmlContent),
		Diagnostics: out.Diagnostics,
	}, nil
}

// resolveProviders picks the provider table: explicit table, then file, then
// named set.
func (c *Converter) resolveProviders() error {
	if c.providers != nil {
		return nil
	}

	var err error
	switch {
	case c.cfg.providerFile != "":
		c.providers, err = LoadProviders(c.cfg.providerFile)
	default:
		name := c.cfg.providerSet
		if name == "" {
			name = DefaultProviderSet
		}
		c.providers, err = LoadProviderSet(c.cfg.assetPath, name)
	}
	if err != nil {
		return fmt.Errorf("loading providers: %w", err)
	}
	return nil
}
