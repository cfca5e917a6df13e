package oembed_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alnah/go-mdembed/internal/oembed"
)

// ---------------------------------------------------------------------------
// TestClientFetch - HTTP round trips
// ---------------------------------------------------------------------------

func TestNewClient_Timeout(t *testing.T) {
	t.Parallel()

	if got := oembed.NewClient().Timeout(); got != 1500*time.Millisecond {
		t.Errorf("NewClient().Timeout() = %v, want 1.5s", got)
	}
	if oembed.DefaultTimeout != 1500*time.Millisecond {
		t.Errorf("DefaultTimeout = %v, want 1.5s", oembed.DefaultTimeout)
	}
	if got := oembed.NewClient(oembed.WithTimeout(0)).Timeout(); got != oembed.DefaultTimeout {
		t.Errorf("WithTimeout(0) Timeout() = %v, want default", got)
	}
}

func TestClientFetch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		delay   time.Duration
		want    *oembed.Response
		wantErr error
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body:   `{"html":"<iframe width=\"100%\" src=\"https://w.soundcloud.com/player/?url=x\"></iframe>","thumbnail_url":"https://i1.sndcdn.com/a.jpg","width":400,"height":81}`,
			want: &oembed.Response{
				Src:          "https://w.soundcloud.com/player/?url=x",
				ThumbnailURL: "https://i1.sndcdn.com/a.jpg",
				Width:        400,
				Height:       81,
			},
		},
		{name: "non-2xx status", status: http.StatusNotFound, body: `{}`, wantErr: oembed.ErrStatus},
		{name: "malformed JSON", status: http.StatusOK, body: `{"html":`, wantErr: oembed.ErrMalformedJSON},
		{name: "JSON array root", status: http.StatusOK, body: `[1,2]`, wantErr: oembed.ErrMalformedJSON},
		{name: "missing src", status: http.StatusOK, body: `{"html":"<div>nothing</div>"}`, wantErr: oembed.ErrNoSource},
		{name: "missing html", status: http.StatusOK, body: `{"width":1}`, wantErr: oembed.ErrNoSource},
		{name: "timeout", status: http.StatusOK, body: `{}`, delay: 300 * time.Millisecond, wantErr: oembed.ErrTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.delay > 0 {
					select {
					case <-time.After(tt.delay):
					case <-r.Context().Done():
						return
					}
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := oembed.NewClient(oembed.WithTimeout(50 * time.Millisecond))
			if tt.delay == 0 {
				client = oembed.NewClient()
			}

			got, err := client.Fetch(context.Background(), oembed.BuildTarget(srv.URL, "https://soundcloud.com/a/b"))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Fetch() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Fetch() unexpected error: %v", err)
			}
			if got.Src != tt.want.Src {
				t.Errorf("Src = %q, want %q", got.Src, tt.want.Src)
			}
			if got.ThumbnailURL != tt.want.ThumbnailURL {
				t.Errorf("ThumbnailURL = %q, want %q", got.ThumbnailURL, tt.want.ThumbnailURL)
			}
			if got.Width != tt.want.Width || got.Height != tt.want.Height {
				t.Errorf("size = %dx%d, want %dx%d", got.Width, got.Height, tt.want.Width, tt.want.Height)
			}
		})
	}
}

func TestClientFetch_QueryString(t *testing.T) {
	t.Parallel()

	var gotFormat, gotURL, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFormat = r.URL.Query().Get("format")
		gotURL = r.URL.Query().Get("url")
		gotAccept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`{"html":"<iframe src=\"https://x.test/e\"></iframe>"}`))
	}))
	defer srv.Close()

	raw := "https://soundcloud.com/artist/track?in=set&x=1"
	if _, err := oembed.NewClient().Fetch(context.Background(), oembed.BuildTarget(srv.URL, raw)); err != nil {
		t.Fatalf("Fetch() unexpected error: %v", err)
	}
	if gotFormat != "json" {
		t.Errorf("format = %q, want json", gotFormat)
	}
	if gotURL != raw {
		t.Errorf("url = %q, want %q", gotURL, raw)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q, want application/json", gotAccept)
	}
}

func TestClientFetch_InvalidTarget(t *testing.T) {
	t.Parallel()

	for _, target := range []string{"ftp://x.test/oembed", "/relative", "http://"} {
		if _, err := oembed.NewClient().Fetch(context.Background(), target); !errors.Is(err, oembed.ErrInvalidTarget) {
			t.Errorf("Fetch(%q) error = %v, want ErrInvalidTarget", target, err)
		}
	}
}

func TestClientFetch_CanceledContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"html":"<iframe src=\"https://x.test/e\"></iframe>"}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := oembed.NewClient().Fetch(ctx, srv.URL)
	if err == nil {
		t.Fatal("Fetch() expected error for canceled context")
	}
	if oembed.IsTimeout(err) {
		t.Errorf("canceled context reported as timeout: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestExtractSource - First src attribute of an HTML fragment
// ---------------------------------------------------------------------------

func TestExtractSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fragment string
		want     string
		wantErr  bool
	}{
		{name: "iframe", fragment: `<iframe src="https://a.test/1"></iframe>`, want: "https://a.test/1"},
		{name: "first of many", fragment: `<div><img src="https://a.test/img"><iframe src="https://a.test/2"></iframe></div>`, want: "https://a.test/img"},
		{name: "single quotes", fragment: `<iframe src='https://a.test/3'></iframe>`, want: "https://a.test/3"},
		{name: "no src", fragment: `<blockquote>hi</blockquote>`, wantErr: true},
		{name: "empty src", fragment: `<iframe src=""></iframe>`, wantErr: true},
		{name: "empty fragment", fragment: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := oembed.ExtractSource(tt.fragment)
			if tt.wantErr {
				if !errors.Is(err, oembed.ErrNoSource) {
					t.Errorf("ExtractSource() error = %v, want ErrNoSource", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractSource() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractSource() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestIsTimeout - Timeout classification
// ---------------------------------------------------------------------------

func TestIsTimeout(t *testing.T) {
	t.Parallel()

	if oembed.IsTimeout(nil) {
		t.Error("IsTimeout(nil) = true")
	}
	if !oembed.IsTimeout(context.DeadlineExceeded) {
		t.Error("IsTimeout(DeadlineExceeded) = false")
	}
	if !oembed.IsTimeout(oembed.ErrTimeout) {
		t.Error("IsTimeout(ErrTimeout) = false")
	}
	if oembed.IsTimeout(errors.New("boom")) {
		t.Error("IsTimeout(boom) = true")
	}
}

func TestBuildTarget(t *testing.T) {
	t.Parallel()

	got := oembed.BuildTarget("https://soundcloud.com/oembed", "https://soundcloud.com/a b?x=1&y=2")
	want := "https://soundcloud.com/oembed?format=json&url=https%3A%2F%2Fsoundcloud.com%2Fa+b%3Fx%3D1%26y%3D2"
	if got != want {
		t.Errorf("BuildTarget() = %q, want %q", got, want)
	}
}
