package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// providerFlags selects the provider table.
type providerFlags struct {
	set       string
	file      string
	assetPath string
}

// htmlFlags holds rendering flags.
type htmlFlags struct {
	title     string
	fragment  bool
	hardWraps bool
	unsafe    bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common        commonFlags
	providers     providerFlags
	html          htmlFlags
	output        string
	inputDir      string
	workers       int
	timeout       string
	oembedTimeout string
}

// providersCmdFlags holds flags for the providers command.
type providersCmdFlags struct {
	common    commonFlags
	providers providerFlags
	sets      bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addProviderFlags adds provider selection flags to a FlagSet.
func addProviderFlags(fs *flag.FlagSet, f *providerFlags) {
	fs.StringVarP(&f.set, "provider-set", "p", "", "named provider set (default \"default\")")
	fs.StringVar(&f.file, "provider-file", "", "YAML or TOML provider file")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory whose providers/ overrides built-in sets")
}

// addHTMLFlags adds rendering flags to a FlagSet.
func addHTMLFlags(fs *flag.FlagSet, f *htmlFlags) {
	fs.StringVar(&f.title, "title", "", "document title (\"\" = auto from H1)")
	fs.BoolVar(&f.fragment, "fragment", false, "write the HTML body only")
	fs.BoolVar(&f.hardWraps, "hard-wraps", false, "render newlines in paragraphs as <br>")
	fs.BoolVar(&f.unsafe, "unsafe", false, "keep raw HTML and dangerous URLs")
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &convertFlags{}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-document timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.oembedTimeout, "oembed-timeout", "", "per-request oEmbed timeout (default 1.5s)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addProviderFlags(fs, &f.providers)
	addHTMLFlags(fs, &f.html)

	fs.Usage = func() { printConvertUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}

// parseProvidersFlags parses providers command flags.
func parseProvidersFlags(args []string, usage io.Writer) (*providersCmdFlags, error) {
	fs := flag.NewFlagSet("providers", flag.ContinueOnError)
	fs.SetOutput(usage)
	f := &providersCmdFlags{}

	addCommonFlags(fs, &f.common)
	addProviderFlags(fs, &f.providers)
	fs.BoolVar(&f.sets, "sets", false, "list built-in provider sets")

	fs.Usage = func() { printProvidersUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}
