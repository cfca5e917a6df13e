// Package provider holds the hostname-keyed embed rules and the pure URL
// rewriting that turns a marker URL into an embeddable resource URL.
package provider

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// DefaultTag is the render tag used when a provider does not declare one.
const DefaultTag = "iframe"

// ErrConfiguration indicates the provider configuration is missing, empty, or invalid.
var ErrConfiguration = errors.New("invalid provider configuration")

// tagPattern restricts render tags to plain element names.
var tagPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*$`)

// Config is the declarative form of one provider, as found in provider files.
type Config struct {
	Tag                    string            `yaml:"tag" toml:"tag"`
	Width                  int               `yaml:"width" toml:"width"`
	Height                 int               `yaml:"height" toml:"height"`
	Disabled               bool              `yaml:"disabled" toml:"disabled"`
	Replace                [][]string        `yaml:"replace" toml:"replace"`
	Thumbnail              map[string]string `yaml:"thumbnail" toml:"thumbnail"`
	RemoveAfter            string            `yaml:"removeAfter" toml:"removeAfter"`
	Match                  string            `yaml:"match" toml:"match"`
	OEmbed                 string            `yaml:"oembed" toml:"oembed"`
	Append                 string            `yaml:"append" toml:"append"`
	DroppedQueryParameters []string          `yaml:"droppedQueryParameters" toml:"droppedQueryParameters"`
	RemoveFileName         bool              `yaml:"removeFileName" toml:"removeFileName"`
}

// Replacement is a literal substring rewrite applied to the URL.
type Replacement struct {
	From string
	To   string
}

// Capture fills the {Key} placeholder of a thumbnail template with the first
// capture group of Pattern.
type Capture struct {
	Key     string
	Pattern *regexp.Regexp
}

// ThumbnailTemplate is a format string with {key} placeholders.
type ThumbnailTemplate struct {
	Format   string
	Captures []Capture // sorted by Key
}

// Provider is the compiled, immutable rule set for one hostname.
type Provider struct {
	Host                   string
	Tag                    string
	Width                  int
	Height                 int
	Disabled               bool
	Replace                []Replacement
	Thumbnail              *ThumbnailTemplate
	RemoveAfter            string
	Match                  *regexp.Regexp
	OEmbed                 string
	Append                 string
	DroppedQueryParameters []string
	RemoveFileName         bool
}

// Accepts reports whether rawURL may become an embed under this provider.
func (p *Provider) Accepts(rawURL string) bool {
	if p.Disabled {
		return false
	}
	return p.Match == nil || p.Match.MatchString(rawURL)
}

// compile validates a Config and builds the Provider for host.
func compile(host string, c Config) (*Provider, error) {
	if strings.TrimSpace(host) == "" {
		return nil, fmt.Errorf("%w: empty hostname", ErrConfiguration)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return nil, fmt.Errorf("%w: %s: width and height are required (got %dx%d)", ErrConfiguration, host, c.Width, c.Height)
	}

	p := &Provider{
		Host:                   host,
		Tag:                    c.Tag,
		Width:                  c.Width,
		Height:                 c.Height,
		Disabled:               c.Disabled,
		RemoveAfter:            c.RemoveAfter,
		OEmbed:                 c.OEmbed,
		Append:                 c.Append,
		DroppedQueryParameters: append([]string(nil), c.DroppedQueryParameters...),
		RemoveFileName:         c.RemoveFileName,
	}
	if p.Tag == "" {
		p.Tag = DefaultTag
	}
	if !tagPattern.MatchString(p.Tag) {
		return nil, fmt.Errorf("%w: %s: invalid tag %q", ErrConfiguration, host, p.Tag)
	}

	for i, pair := range c.Replace {
		if len(pair) != 2 {
			return nil, fmt.Errorf("%w: %s: replace[%d] must be a [from, to] pair", ErrConfiguration, host, i)
		}
		p.Replace = append(p.Replace, Replacement{From: pair[0], To: pair[1]})
	}

	if c.Match != "" {
		re, err := regexp.Compile(c.Match)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: match: %v", ErrConfiguration, host, err)
		}
		p.Match = re
	}

	if len(c.Thumbnail) > 0 {
		tmpl, err := compileThumbnail(host, c.Thumbnail)
		if err != nil {
			return nil, err
		}
		p.Thumbnail = tmpl
	}

	return p, nil
}

func compileThumbnail(host string, m map[string]string) (*ThumbnailTemplate, error) {
	tmpl := &ThumbnailTemplate{Format: m["format"]}
	keys := make([]string, 0, len(m))
	for k := range m {
		if k != "format" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, k := range keys {
		re, err := regexp.Compile(m[k])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: thumbnail.%s: %v", ErrConfiguration, host, k, err)
		}
		tmpl.Captures = append(tmpl.Captures, Capture{Key: k, Pattern: re})
	}
	return tmpl, nil
}
