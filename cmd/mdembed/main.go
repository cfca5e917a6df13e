package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	mdembed "github.com/alnah/go-mdembed"
	"github.com/alnah/go-mdembed/internal/fileutil"
	"github.com/alnah/go-mdembed/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

// commands lists the subcommands understood by runMain.
var commands = []string{"convert", "providers", "version", "help"}

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a subcommand and returns the process exit code.
// A first argument that looks like a Markdown file or a directory is treated
// as an implicit convert.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := args[1], args[2:]
	if !isCommand(cmd) {
		if !looksLikeInput(cmd) {
			fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
			printUsage(env.Stderr)
			return ExitUsage
		}
		cmd, rest = "convert", args[1:]
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	var err error
	switch cmd {
	case "convert":
		err = runConvert(ctx, rest, env)
	case "providers":
		err = runProviders(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "mdembed %s\n", Version)
	case "help":
		runHelp(rest, env)
	}

	if err != nil {
		env.Logger.Error(err.Error() + hintFor(err))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// isCommand reports whether s names a subcommand.
func isCommand(s string) bool {
	for _, c := range commands {
		if s == c {
			return true
		}
	}
	return false
}

// looksLikeInput reports whether s is a Markdown file name or an existing directory.
func looksLikeInput(s string) bool {
	if strings.HasPrefix(s, "-") {
		return false
	}
	if fileutil.IsMarkdown(s) {
		return true
	}
	info, err := os.Stat(filepath.Clean(s))
	return err == nil && info.IsDir()
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, mdembed.ErrProviderSetNotFound):
		return hints.ForProviderSetNotFound(mdembed.ProviderSets())
	case errors.Is(err, mdembed.ErrConfiguration), errors.Is(err, mdembed.ErrUnsupportedFormat):
		return hints.ForProviderFile()
	case errors.Is(err, mdembed.ErrParse):
		return hints.ForParse()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	default:
		return ""
	}
}
