package mdembed

import (
	"net/http"
	"time"
)

// Input contains conversion parameters.
type Input struct {
	Markdown string // Markdown content (required)
	Title    string // Document title (optional, default "Document")
	Fragment bool   // Return the HTML body only, without the document wrapper
}

// ConvertResult holds the output of a conversion.
type ConvertResult struct {
	HTML        []byte
	Diagnostics []Diagnostic // oEmbed failures, sorted by source offset
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout       time.Duration
	oembedTimeout time.Duration
	providerSet   string
	providerFile  string
	assetPath     string
	hardWraps     bool
	unsafe        bool
	httpClient    *http.Client
	userAgent     string
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the conversion timeout. oEmbed requests still in flight
// when it expires fall back to links.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdembed: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithOEmbedTimeout overrides DefaultOEmbedTimeout for the built-in fetcher.
// Panics if d <= 0.
func WithOEmbedTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("mdembed: WithOEmbedTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.oembedTimeout = d
	}
}

// WithProviders uses an already built provider table.
// Takes precedence over WithProviderFile and WithProviderSet.
func WithProviders(p *Providers) Option {
	return func(c *Converter) {
		c.providers = p
	}
}

// WithProviderFile loads providers from a YAML or TOML file.
// Takes precedence over WithProviderSet.
func WithProviderFile(path string) Option {
	return func(c *Converter) {
		c.cfg.providerFile = path
	}
}

// WithProviderSet selects a named provider set (default "default").
func WithProviderSet(name string) Option {
	return func(c *Converter) {
		c.cfg.providerSet = name
	}
}

// WithAssetPath sets a directory whose providers/ subdirectory overrides the
// built-in provider sets.
func WithAssetPath(path string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = path
	}
}

// WithFetcher replaces the built-in oEmbed HTTP fetcher.
func WithFetcher(f Fetcher) Option {
	return func(c *Converter) {
		c.fetcher = f
	}
}

// WithHTTPClient sets the HTTP client used by the built-in oEmbed fetcher.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Converter) {
		c.cfg.httpClient = hc
	}
}

// WithUserAgent sets the User-Agent header of the built-in oEmbed fetcher.
func WithUserAgent(ua string) Option {
	return func(c *Converter) {
		c.cfg.userAgent = ua
	}
}

// WithHardWraps renders newlines inside paragraphs as <br>.
func WithHardWraps(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.hardWraps = enabled
	}
}

// WithUnsafe renders raw HTML and keeps dangerous URLs.
func WithUnsafe(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.unsafe = enabled
	}
}
