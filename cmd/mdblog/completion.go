package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = fmt.Errorf("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []flagDef
	Args  []string // fixed positional values, e.g. shell names
}

// completionMeta holds completion-specific metadata for flags.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	FileGlob string // file glob pattern
	IsDir    bool   // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	"config":   {FileGlob: "*.yaml,*.yml"},
	"content":  {IsDir: true},
	"output":   {IsDir: true},
	"env-file": {FileGlob: "*.env,.env*"},
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		if meta, ok := flagCompletionMeta[f.Name]; ok {
			if meta.FileGlob != "" {
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			} else if meta.IsDir {
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSets.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:  "build",
			Desc:  "Build the site from a directory of posts",
			Flags: extractFlagsFromFlagSet(newBuildFlagSet(&buildFlags{})),
		},
		{
			Name:  "list",
			Desc:  "List posts, newest first",
			Flags: extractFlagsFromFlagSet(newListFlagSet(&listFlags{})),
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish)},
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name: "help",
			Desc: "Show help for a command",
			Args: []string{"build", "list", "completion", "version", "help"},
		},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	bw := bufio.NewWriter(w)
	switch shell {
	case ShellBash:
		writeBash(bw, getCommands())
	case ShellZsh:
		writeZsh(bw, getCommands())
	case ShellFish:
		writeFish(bw, getCommands())
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
	return bw.Flush()
}

// commandNames returns the command names in registry order.
func commandNames(cmds []commandDef) []string {
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// flagWords returns every spelling of the command flags, e.g. "-o --output".
func flagWords(flags []flagDef) []string {
	var words []string
	for _, f := range flags {
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
		words = append(words, "--"+f.Long)
	}
	return words
}

func writeBash(w io.Writer, cmds []commandDef) {
	fmt.Fprintln(w, "# bash completion for mdblog")
	fmt.Fprintln(w, "_mdblog_completions() {")
	fmt.Fprintln(w, "    local cur prev cmd")
	fmt.Fprintln(w, `    cur="${COMP_WORDS[COMP_CWORD]}"`)
	fmt.Fprintln(w, `    prev="${COMP_WORDS[COMP_CWORD-1]}"`)
	fmt.Fprintln(w, `    cmd="${COMP_WORDS[1]}"`)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    if [[ ${COMP_CWORD} -eq 1 ]]; then")
	fmt.Fprintf(w, "        COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", strings.Join(commandNames(cmds), " "))
	fmt.Fprintln(w, "        return")
	fmt.Fprintln(w, "    fi")
	fmt.Fprintln(w)
	fmt.Fprintln(w, `    case "${cmd}" in`)
	for _, c := range cmds {
		fmt.Fprintf(w, "    %s)\n", c.Name)
		fmt.Fprintln(w, `        case "${prev}" in`)
		for _, f := range c.Flags {
			pattern := "--" + f.Long
			if f.Short != "" {
				pattern = "-" + f.Short + "|" + pattern
			}
			switch f.Type {
			case flagDir:
				fmt.Fprintf(w, "        %s)\n            COMPREPLY=($(compgen -d -- \"${cur}\"))\n            return\n            ;;\n", pattern)
			case flagFile:
				fmt.Fprintf(w, "        %s)\n            COMPREPLY=($(compgen -f -- \"${cur}\"))\n            return\n            ;;\n", pattern)
			}
		}
		fmt.Fprintln(w, "        esac")
		words := append(flagWords(c.Flags), c.Args...)
		if len(words) > 0 {
			fmt.Fprintf(w, "        COMPREPLY=($(compgen -W %q -- \"${cur}\"))\n", strings.Join(words, " "))
		}
		fmt.Fprintln(w, "        ;;")
	}
	fmt.Fprintln(w, "    esac")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w, "complete -F _mdblog_completions mdblog")
}

func writeZsh(w io.Writer, cmds []commandDef) {
	fmt.Fprintln(w, "#compdef mdblog")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "_mdblog() {")
	fmt.Fprintln(w, "    local -a commands")
	fmt.Fprintln(w, "    commands=(")
	for _, c := range cmds {
		fmt.Fprintf(w, "        '%s:%s'\n", c.Name, zshEscape(c.Desc))
	}
	fmt.Fprintln(w, "    )")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    if (( CURRENT == 2 )); then")
	fmt.Fprintln(w, "        _describe 'command' commands")
	fmt.Fprintln(w, "        return")
	fmt.Fprintln(w, "    fi")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "    case ${words[2]} in")
	for _, c := range cmds {
		fmt.Fprintf(w, "    %s)\n", c.Name)
		fmt.Fprintln(w, "        _arguments \\")
		for _, f := range c.Flags {
			action := ""
			switch f.Type {
			case flagDir:
				action = ":dir:_files -/"
			case flagFile:
				globs := strings.ReplaceAll(f.FileGlob, ",", "|")
				action = `:file:_files -g "(` + globs + `)"`
			case flagString, flagInt:
				action = ":value:"
			}
			spec := fmt.Sprintf("--%s[%s]%s", f.Long, zshEscape(f.Desc), action)
			if f.Short != "" {
				spec = fmt.Sprintf("{-%s,--%s}'[%s]%s'", f.Short, f.Long, zshEscape(f.Desc), action)
				fmt.Fprintf(w, "            %s \\\n", spec)
				continue
			}
			fmt.Fprintf(w, "            '%s' \\\n", spec)
		}
		if len(c.Args) > 0 {
			fmt.Fprintf(w, "            '1:argument:(%s)' \\\n", strings.Join(c.Args, " "))
		}
		fmt.Fprintln(w, "            && return")
		fmt.Fprintln(w, "        ;;")
	}
	fmt.Fprintln(w, "    esac")
	fmt.Fprintln(w, "}")
	fmt.Fprintln(w)
	fmt.Fprintln(w, `_mdblog "$@"`)
}

// zshEscape escapes characters that end a zsh _arguments description.
func zshEscape(s string) string {
	return strings.NewReplacer("'", `'\''`, "[", `\[`, "]", `\]`, ":", `\:`).Replace(s)
}

func writeFish(w io.Writer, cmds []commandDef) {
	fmt.Fprintln(w, "# fish completion for mdblog")
	fmt.Fprintln(w, "function __fish_mdblog_needs_command")
	fmt.Fprintln(w, "    set -l cmd (commandline -opc)")
	fmt.Fprintln(w, "    test (count $cmd) -eq 1")
	fmt.Fprintln(w, "end")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "function __fish_mdblog_using_command")
	fmt.Fprintln(w, "    set -l cmd (commandline -opc)")
	fmt.Fprintln(w, "    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]")
	fmt.Fprintln(w, "end")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "complete -c mdblog -f")
	for _, c := range cmds {
		fmt.Fprintf(w, "complete -c mdblog -n '__fish_mdblog_needs_command' -a %s -d %q\n", c.Name, c.Desc)
	}
	for _, c := range cmds {
		cond := fmt.Sprintf("'__fish_mdblog_using_command %s'", c.Name)
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c mdblog -n %s -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch f.Type {
			case flagDir:
				line += " -r -a '(__fish_complete_directories)'"
			case flagFile:
				line += " -r -F"
			case flagString, flagInt:
				line += " -r"
			}
			fmt.Fprintf(w, "%s -d %q\n", line, f.Desc)
		}
		if len(c.Args) > 0 {
			fmt.Fprintf(w, "complete -c mdblog -n %s -a %q\n", cond, strings.Join(c.Args, " "))
		}
	}
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	return GenerateCompletion(env.Stdout, Shell(args[0]))
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mdblog completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(mdblog completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(mdblog completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    mdblog completion fish > ~/.config/fish/completions/mdblog.fish")
}
