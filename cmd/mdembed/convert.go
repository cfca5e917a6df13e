package main

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"runtime"
	"strings"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/automaxprocs/maxprocs"

	mdembed "github.com/alnah/go-mdembed"
	"github.com/alnah/go-mdembed/internal/config"
	"github.com/alnah/go-mdembed/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrNoInput            = errors.New("no input specified")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
)

// MaxWorkers bounds --workers.
const MaxWorkers = 64

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	flags, positionalArgs, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	setVerbosity(env.Logger, flags.common)
	warnUnknownEnvVars(env)
	applyEnvConfig(flags, loadEnvConfig(env))

	// Configure GOMAXPROCS from the container CPU quota before sizing workers.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply.
	undo, _ := maxprocs.Set(maxprocs.Logger(env.Logger.Debugf))
	defer undo()

	// Validate worker count early
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	// Load configuration
	cfg := config.DefaultConfig()
	if flags.common.config != "" {
		cfg, err = config.LoadConfig(flags.common.config)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(flags.common.config)))
			}
			return fmt.Errorf("loading config: %w", err)
		}
	}

	// Merge CLI flags into config (CLI wins)
	mergeFlags(flags, cfg)

	timeout, err := parseTimeout("--timeout", flags.timeout)
	if err != nil {
		return err
	}
	oembedTimeout, err := parseTimeout("--oembed-timeout", flags.oembedTimeout)
	if err != nil {
		return err
	}

	conv, err := mdembed.NewConverter(buildConverterOptions(cfg, timeout, oembedTimeout)...)
	if err != nil {
		return err
	}
	env.Logger.Debug("providers loaded", "hosts", conv.Providers().Len())

	// Resolve input path
	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}

	// Discover files to convert
	files, err := discoverFiles(inputPath, resolveOutputDir(flags.output, cfg))
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no markdown files found in %s", ErrNoInput, inputPath)
	}

	workers := resolveWorkers(flags.workers)
	env.Logger.Debug("starting conversion", "files", len(files), "workers", workers)

	params := &conversionParams{
		title:    flags.html.title,
		fragment: flags.html.fragment,
	}
	results := convertBatch(ctx, conv, files, workers, params)

	return reportResults(results, flags.common, env)
}

// mergeFlags overlays command-line values on cfg.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	if flags.providers.file != "" {
		cfg.Providers.File = flags.providers.file
		cfg.Providers.Set = ""
	}
	if flags.providers.set != "" {
		cfg.Providers.Set = flags.providers.set
		cfg.Providers.File = ""
	}
	if flags.providers.assetPath != "" {
		cfg.Providers.AssetPath = flags.providers.assetPath
	}
	if flags.inputDir != "" {
		cfg.Input.DefaultDir = flags.inputDir
	}
	if flags.html.hardWraps {
		cfg.HTML.HardWraps = true
	}
	if flags.html.unsafe {
		cfg.HTML.Unsafe = true
	}
}

// buildConverterOptions translates the merged config into converter options.
// Zero durations keep the library defaults.
func buildConverterOptions(cfg *config.Config, timeout, oembedTimeout time.Duration) []mdembed.Option {
	opts := []mdembed.Option{
		mdembed.WithHardWraps(cfg.HTML.HardWraps),
		mdembed.WithUnsafe(cfg.HTML.Unsafe),
		mdembed.WithUserAgent("mdembed/" + Version),
	}

	switch {
	case cfg.Providers.File != "":
		opts = append(opts, mdembed.WithProviderFile(cfg.Providers.File))
	case cfg.Providers.Set != "":
		opts = append(opts, mdembed.WithProviderSet(cfg.Providers.Set))
	}
	if cfg.Providers.AssetPath != "" {
		opts = append(opts, mdembed.WithAssetPath(cfg.Providers.AssetPath))
	}

	if timeout > 0 {
		opts = append(opts, mdembed.WithTimeout(timeout))
	}
	if oembedTimeout > 0 {
		opts = append(opts, mdembed.WithOEmbedTimeout(oembedTimeout))
	}
	return opts
}

// parseTimeout parses a positive duration; "" yields 0.
func parseTimeout(name, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q: %v", ErrInvalidTimeout, name, value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidTimeout, name, d)
	}
	return d, nil
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, MaxWorkers)
	}
	return nil
}

// resolveWorkers determines the worker count.
// Priority: explicit flag > GOMAXPROCS (adjusted by automaxprocs for containers).
// Conversion mostly waits on oEmbed requests, so auto sizing allows two
// workers per CPU.
func resolveWorkers(flagWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}

	n := runtime.GOMAXPROCS(0) * 2
	if n > 16 {
		return 16
	}
	return n
}

// firstHeadingPattern matches the first # heading in markdown content.
var firstHeadingPattern = regexp.MustCompile(`(?m)^#\s+(.+)$`)

// extractFirstHeading extracts the first # heading from markdown content.
func extractFirstHeading(markdown string) string {
	matches := firstHeadingPattern.FindStringSubmatch(markdown)
	if len(matches) >= 2 {
		return strings.TrimSpace(matches[1])
	}
	return ""
}
