package main

import (
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// envPrefix prefixes every environment variable read by the CLI.
const envPrefix = "MDEMBED_"

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *log.Logger
	Getenv  func(string) string
	Environ func() []string
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Logger:  newLogger(os.Stderr),
		Getenv:  os.Getenv,
		Environ: os.Environ,
	}
}

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath    string        // MDEMBED_CONFIG: config file name or path
	ProviderSet   string        // MDEMBED_PROVIDER_SET: named provider set
	ProviderFile  string        // MDEMBED_PROVIDER_FILE: YAML or TOML provider file
	AssetPath     string        // MDEMBED_ASSET_PATH: provider set override directory
	InputDir      string        // MDEMBED_INPUT_DIR: default input directory
	OutputDir     string        // MDEMBED_OUTPUT_DIR: default output directory
	Timeout       time.Duration // MDEMBED_TIMEOUT: per-document timeout
	OEmbedTimeout time.Duration // MDEMBED_OEMBED_TIMEOUT: per-request timeout
	Workers       int           // MDEMBED_WORKERS: parallel workers
}

// knownEnvVars lists valid MDEMBED_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDEMBED_CONFIG":         true,
	"MDEMBED_PROVIDER_SET":   true,
	"MDEMBED_PROVIDER_FILE":  true,
	"MDEMBED_ASSET_PATH":     true,
	"MDEMBED_INPUT_DIR":      true,
	"MDEMBED_OUTPUT_DIR":     true,
	"MDEMBED_TIMEOUT":        true,
	"MDEMBED_OEMBED_TIMEOUT": true,
	"MDEMBED_WORKERS":        true,
}

// loadEnvConfig reads the MDEMBED_* variables. Unparseable durations and
// counts are reported through logger and ignored.
func loadEnvConfig(env *Environment) *envConfig {
	get := env.Getenv
	cfg := &envConfig{
		ConfigPath:   get("MDEMBED_CONFIG"),
		ProviderSet:  get("MDEMBED_PROVIDER_SET"),
		ProviderFile: get("MDEMBED_PROVIDER_FILE"),
		AssetPath:    get("MDEMBED_ASSET_PATH"),
		InputDir:     get("MDEMBED_INPUT_DIR"),
		OutputDir:    get("MDEMBED_OUTPUT_DIR"),
	}

	cfg.Timeout = envDuration(env, "MDEMBED_TIMEOUT")
	cfg.OEmbedTimeout = envDuration(env, "MDEMBED_OEMBED_TIMEOUT")

	if v := get("MDEMBED_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			env.Logger.Warn("ignoring invalid environment variable", "name", "MDEMBED_WORKERS", "value", v)
		} else {
			cfg.Workers = n
		}
	}

	return cfg
}

func envDuration(env *Environment, name string) time.Duration {
	v := env.Getenv(name)
	if v == "" {
		return 0
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		env.Logger.Warn("ignoring invalid environment variable", "name", name, "value", v)
		return 0
	}
	return d
}

// unknownEnvVars returns MDEMBED_* variables that are not recognized, sorted.
func unknownEnvVars(environ []string) []string {
	var unknown []string
	for _, kv := range environ {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// warnUnknownEnvVars logs one warning per unrecognized MDEMBED_* variable.
func warnUnknownEnvVars(env *Environment) {
	if env.Environ == nil {
		return
	}
	for _, name := range unknownEnvVars(env.Environ()) {
		env.Logger.Warn("unknown environment variable", "name", name)
	}
}

// applyEnvConfig fills flags the user did not set from the environment.
// Precedence: flags > environment > config file > defaults.
func applyEnvConfig(flags *convertFlags, ec *envConfig) {
	if flags.common.config == "" {
		flags.common.config = ec.ConfigPath
	}
	if flags.providers.set == "" && flags.providers.file == "" {
		flags.providers.set = ec.ProviderSet
		flags.providers.file = ec.ProviderFile
	}
	if flags.providers.assetPath == "" {
		flags.providers.assetPath = ec.AssetPath
	}
	if flags.output == "" {
		flags.output = ec.OutputDir
	}
	if flags.inputDir == "" {
		flags.inputDir = ec.InputDir
	}
	if flags.timeout == "" && ec.Timeout > 0 {
		flags.timeout = ec.Timeout.String()
	}
	if flags.oembedTimeout == "" && ec.OEmbedTimeout > 0 {
		flags.oembedTimeout = ec.OEmbedTimeout.String()
	}
	if flags.workers == 0 {
		flags.workers = ec.Workers
	}
}
