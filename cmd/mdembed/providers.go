package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	flag "github.com/spf13/pflag"

	mdembed "github.com/alnah/go-mdembed"
)

// runProviders prints the provider table selected by flags, or the built-in
// set names with --sets.
func runProviders(args []string, env *Environment) error {
	f, err := parseProvidersFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	setVerbosity(env.Logger, f.common)

	if f.sets {
		for _, name := range mdembed.ProviderSets() {
			fmt.Fprintln(env.Stdout, name)
		}
		return nil
	}

	providers, err := loadProviders(f.providers)
	if err != nil {
		return err
	}

	fmt.Fprintln(env.Stdout, renderProviders(providers))
	return nil
}

// loadProviders resolves the provider table the same way the converter does:
// file, then named set.
func loadProviders(f providerFlags) (*mdembed.Providers, error) {
	if f.file != "" {
		return mdembed.LoadProviders(f.file)
	}
	name := f.set
	if name == "" {
		name = mdembed.DefaultProviderSet
	}
	return mdembed.LoadProviderSet(f.assetPath, name)
}

// renderProviders formats providers as a table sorted by host.
func renderProviders(providers *mdembed.Providers) string {
	rows := make([][]string, 0, providers.Len())
	for _, host := range providers.Hosts() {
		p, _ := providers.Lookup(host)
		rows = append(rows, []string{host, p.Tag, fmt.Sprintf("%dx%d", p.Width, p.Height), providerKind(p)})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("HOST", "TAG", "SIZE", "KIND").
		Rows(rows...).
		String()
}

// providerKind summarizes how a provider resolves embeds.
func providerKind(p *mdembed.Provider) string {
	switch {
	case p.Disabled:
		return "disabled"
	case p.OEmbed != "":
		return "oembed"
	default:
		return "static"
	}
}
