package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdembed <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert markdown files to HTML with embedded media")
	fmt.Fprintln(w, "  providers  List embed providers")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdembed help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdembed convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert markdown files to HTML. !(url) markers become embedded players.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>         Output file or directory")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>           Per-document timeout (e.g., 30s)")
	fmt.Fprintln(w, "      --oembed-timeout <d>    Per-request oEmbed timeout (default 1.5s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Providers:")
	fmt.Fprintln(w, "  -p, --provider-set <name>   Named provider set (default \"default\")")
	fmt.Fprintln(w, "      --provider-file <path>  YAML or TOML provider file")
	fmt.Fprintln(w, "      --asset-path <dir>      Directory whose providers/ overrides built-in sets")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "HTML:")
	fmt.Fprintln(w, "      --title <s>             Document title (\"\" = auto from H1)")
	fmt.Fprintln(w, "      --fragment              Write the HTML body only")
	fmt.Fprintln(w, "      --hard-wraps            Render newlines in paragraphs as <br>")
	fmt.Fprintln(w, "      --unsafe                Keep raw HTML and dangerous URLs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDEMBED_CONFIG, MDEMBED_PROVIDER_SET, MDEMBED_PROVIDER_FILE, MDEMBED_ASSET_PATH,")
	fmt.Fprintln(w, "  MDEMBED_INPUT_DIR, MDEMBED_OUTPUT_DIR, MDEMBED_TIMEOUT, MDEMBED_OEMBED_TIMEOUT,")
	fmt.Fprintln(w, "  MDEMBED_WORKERS (flags take precedence)")
}

// printProvidersUsage prints usage for the providers command.
func printProvidersUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdembed providers [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List the hosts of a provider table.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -p, --provider-set <name>   Named provider set (default \"default\")")
	fmt.Fprintln(w, "      --provider-file <path>  YAML or TOML provider file")
	fmt.Fprintln(w, "      --asset-path <dir>      Directory whose providers/ overrides built-in sets")
	fmt.Fprintln(w, "      --sets                  List built-in provider sets")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "providers":
		printProvidersUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdembed version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdembed help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
