// Package oembed fetches oEmbed metadata and extracts the embeddable resource
// URL from the returned HTML fragment.
package oembed

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"
)

// DefaultTimeout bounds a single oEmbed request.
const DefaultTimeout = 1500 * time.Millisecond

// maxBodySize caps the response body read from an oEmbed endpoint.
const maxBodySize = 1 << 20

// Sentinel errors for oEmbed fetches.
var (
	ErrInvalidTarget = errors.New("invalid oEmbed URL")
	ErrTimeout       = errors.New("oEmbed request timed out")
	ErrStatus        = errors.New("unexpected oEmbed status")
	ErrMalformedJSON = errors.New("malformed oEmbed JSON")
	ErrNoSource      = errors.New("oEmbed html has no src attribute")
)

// Response is the subset of an oEmbed reply needed to render an embed.
type Response struct {
	Src          string
	HTML         string
	ThumbnailURL string
	Width        int
	Height       int
}

// Fetcher retrieves oEmbed metadata for a fully built oEmbed request URL.
type Fetcher interface {
	Fetch(ctx context.Context, target string) (*Response, error)
}

// Client fetches oEmbed metadata over HTTP.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a Client with a hardened transport.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: newHTTPClient(),
		timeout:    DefaultTimeout,
		userAgent:  "go-mdembed",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newHTTPClient() *http.Client {
	return &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
			ForceAttemptHTTP2:   true,
			MaxIdleConns:        10,
			MaxIdleConnsPerHost: 5,
			IdleConnTimeout:     30 * time.Second,
		},
	}
}

// Timeout returns the per-request timeout.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Fetch performs one GET against target and decodes the oEmbed reply.
// Timeouts are reported as ErrTimeout; there are no retries.
func (c *Client) Fetch(ctx context.Context, target string) (*Response, error) {
	if err := validateTarget(target); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if IsTimeout(err) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, fmt.Errorf("oEmbed request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if IsTimeout(err) {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, fmt.Errorf("reading oEmbed response: %w", err)
	}

	return Decode(body)
}

// Decode parses an oEmbed JSON document and extracts the embed source.
func Decode(body []byte) (*Response, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrMalformedJSON
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return nil, fmt.Errorf("%w: root is not an object", ErrMalformedJSON)
	}

	r := &Response{
		HTML:         doc.Get("html").String(),
		ThumbnailURL: doc.Get("thumbnail_url").String(),
		Width:        int(doc.Get("width").Int()),
		Height:       int(doc.Get("height").Int()),
	}

	src, err := ExtractSource(r.HTML)
	if err != nil {
		return nil, err
	}
	r.Src = src
	return r, nil
}

// ExtractSource returns the first src attribute found in an HTML fragment.
func ExtractSource(fragment string) (string, error) {
	if strings.TrimSpace(fragment) == "" {
		return "", ErrNoSource
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoSource, err)
	}
	src, ok := doc.Find("[src]").First().Attr("src")
	if !ok || src == "" {
		return "", ErrNoSource
	}
	return src, nil
}

// IsTimeout reports whether err stems from a deadline or network timeout.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// BuildTarget builds the oEmbed request URL for rawURL against endpoint.
func BuildTarget(endpoint, rawURL string) string {
	return endpoint + "?format=json&url=" + url.QueryEscape(rawURL)
}

func validateTarget(target string) error {
	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q", ErrInvalidTarget, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: no host", ErrInvalidTarget)
	}
	return nil
}

// Compile-time interface check.
var _ Fetcher = (*Client)(nil)
