package provider

import "testing"

// ---------------------------------------------------------------------------
// TestFinalURL - Rewrite pipeline stages and ordering
// ---------------------------------------------------------------------------

func TestFinalURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		config Config
		input  string
		want   string
	}{
		{
			name:   "no rules returns input",
			config: Config{Width: 1, Height: 1},
			input:  "https://x.test/v?id=1",
			want:   "https://x.test/v?id=1",
		},
		{
			name:   "dropped query parameter",
			config: Config{Width: 1, Height: 1, DroppedQueryParameters: []string{"utm_source"}},
			input:  "https://x.test/v?id=1&utm_source=a",
			want:   "https://x.test/v?id=1",
		},
		{
			name:   "dropped parameters keep remaining order",
			config: Config{Width: 1, Height: 1, DroppedQueryParameters: []string{"t", "utm_source"}},
			input:  "https://x.test/v?z=9&utm_source=a&b=2&t=10&a=1",
			want:   "https://x.test/v?z=9&b=2&a=1",
		},
		{
			name:   "dropping every parameter removes query",
			config: Config{Width: 1, Height: 1, DroppedQueryParameters: []string{"t"}},
			input:  "https://x.test/v?t=10",
			want:   "https://x.test/v",
		},
		{
			name:   "dropped parameters without query",
			config: Config{Width: 1, Height: 1, DroppedQueryParameters: []string{"t"}},
			input:  "https://x.test/v",
			want:   "https://x.test/v",
		},
		{
			name:   "remove after",
			config: Config{Width: 1, Height: 1, RemoveAfter: "&list="},
			input:  "https://x.test/v?id=1&list=xyz",
			want:   "https://x.test/v?id=1",
		},
		{
			name:   "remove after absent marker",
			config: Config{Width: 1, Height: 1, RemoveAfter: "&list="},
			input:  "https://x.test/v?id=1",
			want:   "https://x.test/v?id=1",
		},
		{
			name: "replacements chain in order",
			config: Config{Width: 1, Height: 1, Replace: [][]string{
				{"watch?v=", "embed/"},
				{"http://", "https://"},
			}},
			input: "http://www.youtube.com/watch?v=abc",
			want:  "https://www.youtube.com/embed/abc",
		},
		{
			name: "later rule sees earlier result",
			config: Config{Width: 1, Height: 1, Replace: [][]string{
				{"a.test", "b.test"},
				{"b.test/", "c.test/embed/"},
			}},
			input: "https://a.test/x",
			want:  "https://c.test/embed/x",
		},
		{
			name:   "replace first occurrence only",
			config: Config{Width: 1, Height: 1, Replace: [][]string{{"/a", "/b"}}},
			input:  "https://x.test/a/a",
			want:   "https://x.test/b/a",
		},
		{
			name:   "remove file name",
			config: Config{Width: 1, Height: 1, RemoveFileName: true},
			input:  "https://www.ina.fr/video/I0001/clip.html",
			want:   "https://www.ina.fr/video/I0001",
		},
		{
			name:   "append",
			config: Config{Width: 1, Height: 1, Append: "?format=embed"},
			input:  "https://screen.yahoo.com/clip",
			want:   "https://screen.yahoo.com/clip?format=embed",
		},
		{
			name: "all stages",
			config: Config{
				Width: 1, Height: 1,
				DroppedQueryParameters: []string{"utm_source"},
				Replace:                [][]string{{"www.ina.fr", "player.ina.fr"}, {"/video/", "/player/embed/"}},
				RemoveFileName:         true,
				RemoveAfter:            "?",
				Append:                 "/1/560/315",
			},
			input: "https://www.ina.fr/video/I0001/clip.html?utm_source=x&k=1",
			want:  "https://player.ina.fr/player/embed/I0001/1/560/315",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := compile("x.test", tt.config)
			if err != nil {
				t.Fatalf("compile() unexpected error: %v", err)
			}
			if got := p.FinalURL(tt.input); got != tt.want {
				t.Errorf("FinalURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFinalURL_Deterministic(t *testing.T) {
	t.Parallel()

	p, err := compile("x.test", Config{
		Width: 1, Height: 1,
		DroppedQueryParameters: []string{"a", "b"},
		Replace:                [][]string{{"x.test", "y.test"}},
		Append:                 "#end",
	})
	if err != nil {
		t.Fatalf("compile() unexpected error: %v", err)
	}

	const input = "https://x.test/p?c=3&a=1&b=2&d=4"
	first := p.FinalURL(input)
	for i := 0; i < 50; i++ {
		if got := p.FinalURL(input); got != first {
			t.Fatalf("FinalURL() run %d = %q, want %q", i, got, first)
		}
	}
}

// ---------------------------------------------------------------------------
// TestThumbnailURL - Template substitution
// ---------------------------------------------------------------------------

func TestThumbnailURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		thumbnail map[string]string
		final     string
		want      string
	}{
		{
			name:      "no template",
			thumbnail: nil,
			final:     "https://x.test/watch/abc123",
			want:      "",
		},
		{
			name:      "no format",
			thumbnail: map[string]string{"id": ".+/(.+)$"},
			final:     "https://x.test/watch/abc123",
			want:      "",
		},
		{
			name:      "capture substituted",
			thumbnail: map[string]string{"format": "https://img/{id}.jpg", "id": ".+/(.+)$"},
			final:     "https://x.test/watch/abc123",
			want:      "https://img/abc123.jpg",
		},
		{
			name:      "every placeholder occurrence replaced",
			thumbnail: map[string]string{"format": "https://img/{id}/{id}.jpg", "id": ".+/(.+)$"},
			final:     "https://x.test/watch/abc",
			want:      "https://img/abc/abc.jpg",
		},
		{
			name:      "unmatched pattern leaves placeholder",
			thumbnail: map[string]string{"format": "https://img/{id}.jpg", "id": `^ftp://(.+)$`},
			final:     "https://x.test/watch/abc123",
			want:      "https://img/{id}.jpg",
		},
		{
			name: "several keys",
			thumbnail: map[string]string{
				"format": "https://img/{user}/{id}.png",
				"user":   `x\.test/([^/]+)/`,
				"id":     `/(\d+)$`,
			},
			final: "https://x.test/alice/42",
			want:  "https://img/alice/42.png",
		},
		{
			name:      "static format",
			thumbnail: map[string]string{"format": "https://img/logo.png"},
			final:     "https://x.test/anything",
			want:      "https://img/logo.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := compile("x.test", Config{Width: 1, Height: 1, Thumbnail: tt.thumbnail})
			if err != nil {
				t.Fatalf("compile() unexpected error: %v", err)
			}
			if got := p.ThumbnailURL(tt.final); got != tt.want {
				t.Errorf("ThumbnailURL(%q) = %q, want %q", tt.final, got, tt.want)
			}
		})
	}
}
