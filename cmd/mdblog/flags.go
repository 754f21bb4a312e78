package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage wraps flag parsing failures and unexpected arguments.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// siteFlags holds flags that locate the content and the output tree.
type siteFlags struct {
	content string
	output  string
	baseURL string
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common  commonFlags
	site    siteFlags
	envFile string
	clean   bool
	noFeed  bool
	watch   bool
}

// listFlags holds all flags for the list command.
type listFlags struct {
	config  string
	content string
	envFile string
	tag     string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show every written file and debug logs")
}

// addSiteFlags adds content and output flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVar(&f.content, "content", "", "directory of .md/.mdx posts")
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.StringVar(&f.baseURL, "base-url", "", "absolute site URL, e.g. https://example.com/blog/")
}

// newBuildFlagSet registers the build flags into f.
// Shared by parsing and shell completion.
func newBuildFlagSet(f *buildFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)

	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)
	fs.BoolVar(&f.clean, "clean", false, "remove the output directory first")
	fs.BoolVar(&f.noFeed, "no-feed", false, "skip rss.xml")
	fs.BoolVarP(&f.watch, "watch", "w", false, "rebuild when posts or theme files change")
	fs.StringVar(&f.envFile, "env-file", "", "dotenv file with MDBLOG_* variables (default: .env if present)")

	return fs
}

// newListFlagSet registers the list flags into f.
func newListFlagSet(f *listFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.content, "content", "", "directory of .md/.mdx posts")
	fs.StringVar(&f.envFile, "env-file", "", "dotenv file with MDBLOG_* variables")
	fs.StringVar(&f.tag, "tag", "", "only posts with this tag")

	return fs
}

// parseBuildFlags parses build command flags.
// Parse errors and usage go to w.
func parseBuildFlags(args []string, w io.Writer) (*buildFlags, error) {
	f := &buildFlags{}
	fs := newBuildFlagSet(f)
	fs.SetOutput(w)
	fs.Usage = func() { printBuildUsage(w) }

	if err := parseArgs(fs, args); err != nil {
		return nil, err
	}
	return f, nil
}

// parseListFlags parses list command flags.
func parseListFlags(args []string, w io.Writer) (*listFlags, error) {
	f := &listFlags{}
	fs := newListFlagSet(f)
	fs.SetOutput(w)
	fs.Usage = func() { printListUsage(w) }

	if err := parseArgs(fs, args); err != nil {
		return nil, err
	}
	return f, nil
}

// parseArgs parses args and rejects positional arguments.
// flag.ErrHelp is returned unwrapped.
func parseArgs(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		fs.Usage()
		return fmt.Errorf("%w: %s takes no arguments, got %q", ErrUsage, fs.Name(), fs.Args())
	}
	return nil
}
