package provider

import "strings"

// ThumbnailURL derives the thumbnail URL for finalURL from the provider's template.
// A capture pattern that does not match leaves its {key} placeholder in place.
func (p *Provider) ThumbnailURL(finalURL string) string {
	if p.Thumbnail == nil || p.Thumbnail.Format == "" {
		return ""
	}

	out := p.Thumbnail.Format
	for _, c := range p.Thumbnail.Captures {
		m := c.Pattern.FindStringSubmatch(finalURL)
		if len(m) < 2 {
			continue
		}
		out = strings.ReplaceAll(out, "{"+c.Key+"}", m[1])
	}
	return out
}
