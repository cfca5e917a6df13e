// Package mdembed converts Markdown to HTML and turns !(url) markers into
// embedded players.
//
// # Quick Start
//
// Create a converter and convert markdown:
//
//	conv, err := mdembed.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, mdembed.Input{
//	    Markdown: "# Talk\n\n!(https://www.youtube.com/watch?v=abc123)",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("talk.html", result.HTML, 0644)
//
// # Markers
//
// A marker is the literal text !( followed by an http or https URL and a
// closing parenthesis. The URL host selects a provider. A provider rewrites the
// URL into an embeddable one (query parameters dropped, literal replacements,
// file name removal, truncation, suffix) and may derive a thumbnail URL:
//
//	!(https://www.youtube.com/watch?v=abc123)
//	<iframe src="https://www.youtube.com/embed/abc123" width="560" height="315"
//	        allowfullscreen="true" frameborder="0"
//	        data-thumbnail="https://img.youtube.com/vi/abc123/0.jpg"></iframe>
//
// Markers for unknown or disabled hosts are left as plain text. A marker URL
// without a hostname fails the conversion with ErrParse.
//
// # oEmbed
//
// Providers with an oembed endpoint are resolved over the network before the
// document is rendered. All requests of a document run concurrently, each
// bounded by DefaultOEmbedTimeout. A failed request turns the marker into a
// plain link and adds a Diagnostic to the result; the conversion still succeeds.
//
// # Providers
//
// Providers are declared per hostname in YAML or TOML:
//
//	www.youtube.com:
//	  width: 560
//	  height: 315
//	  replace: [["watch?v=", "embed/"]]
//	  droppedQueryParameters: [feature, si]
//	  thumbnail:
//	    format: "https://img.youtube.com/vi/{id}/0.jpg"
//	    id: ".+/(.+)$"
//	soundcloud.com:
//	  width: 500
//	  height: 166
//	  oembed: "https://soundcloud.com/oembed"
//
// Use WithProviderFile, WithProviderSet and WithAssetPath to choose them.
//
// # goldmark
//
// The embed support is a regular goldmark extension and can be used with any
// goldmark.Markdown:
//
//	providers, _ := mdembed.DefaultProviders()
//	md := goldmark.New(goldmark.WithExtensions(mdembed.NewExtension(providers, nil)))
//	pc := mdembed.NewContext(ctx)
//	err := md.Convert(src, &buf, parser.WithContext(pc))
//	if err == nil {
//	    err = mdembed.ParseError(pc)
//	}
//	diags := mdembed.Diagnostics(pc)
package mdembed
