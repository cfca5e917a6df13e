package provider

import (
	"net/url"
	"strings"
)

// FinalURL rewrites rawURL into the embeddable resource URL.
// Stages run in a fixed order and each one is skipped when its rule is unset:
//  1. drop query parameters
//  2. literal replacements, in list order
//  3. drop the file name segment of the path
//  4. truncate at RemoveAfter
//  5. append the suffix
func (p *Provider) FinalURL(rawURL string) string {
	u := rawURL

	if len(p.DroppedQueryParameters) > 0 {
		u = dropQueryParameters(u, p.DroppedQueryParameters)
	}

	// Each rule sees the output of the previous one. Only the first
	// occurrence of From is replaced.
	for _, r := range p.Replace {
		u = strings.Replace(u, r.From, r.To, 1)
	}

	if p.RemoveFileName {
		u = removeFileName(u)
	}

	if p.RemoveAfter != "" {
		if i := strings.Index(u, p.RemoveAfter); i >= 0 {
			u = u[:i]
		}
	}

	return u + p.Append
}

// dropQueryParameters removes every parameter named in names and keeps the
// remaining parameters in their original order and encoding.
func dropQueryParameters(rawURL string, names []string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.RawQuery == "" {
		return rawURL
	}

	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}

	pairs := strings.Split(parsed.RawQuery, "&")
	kept := pairs[:0]
	for _, pair := range pairs {
		name, _, _ := strings.Cut(pair, "=")
		if unescaped, err := url.QueryUnescape(name); err == nil {
			name = unescaped
		}
		if _, ok := drop[name]; ok {
			continue
		}
		kept = append(kept, pair)
	}

	parsed.RawQuery = strings.Join(kept, "&")
	return parsed.String()
}

// removeFileName truncates the path to everything before its last slash.
func removeFileName(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	i := strings.LastIndex(parsed.Path, "/")
	if i < 0 {
		return rawURL
	}
	parsed.Path = parsed.Path[:i]
	parsed.RawPath = ""
	return parsed.String()
}
