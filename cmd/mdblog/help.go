package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdblog <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build       Build the site from a directory of posts")
	fmt.Fprintln(w, "  list        List posts, newest first")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'mdblog help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdblog build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render every post, the index, tag pages, rss.xml and stylesheets.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (default: mdblog.yaml if present)")
	fmt.Fprintln(w, "      --content <dir>       Directory of .md/.mdx posts (default: content)")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: public)")
	fmt.Fprintln(w, "      --clean               Remove the output directory first")
	fmt.Fprintln(w, "  -w, --watch               Rebuild when posts or theme files change, until Ctrl+C")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "      --base-url <url>      Absolute site URL, e.g. https://example.com/blog/")
	fmt.Fprintln(w, "      --no-feed             Skip rss.xml")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show every written file and debug logs")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MDBLOG_CONFIG, MDBLOG_CONTENT_DIR, MDBLOG_OUTPUT_DIR, MDBLOG_BASE_URL,")
	fmt.Fprintln(w, "  MDBLOG_STYLE, MDBLOG_FEED_LIMIT")
	fmt.Fprintln(w, "      --env-file <path>     Read these from a dotenv file (default: .env if present)")
	fmt.Fprintln(w, "  Flags override environment variables, which override the config file.")
	fmt.Fprintln(w, "  Variables already set in the environment win over the env file.")
}

// printListUsage prints usage for the list command.
func printListUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdblog list [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print date, id and title of every post, newest first.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --content <dir>       Directory of .md/.mdx posts")
	fmt.Fprintln(w, "      --env-file <path>     Dotenv file with MDBLOG_* variables")
	fmt.Fprintln(w, "      --tag <tag>           Only posts with this tag")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "list":
		printListUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: mdblog version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: mdblog help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
