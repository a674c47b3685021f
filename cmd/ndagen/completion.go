package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/cultivatedynamics/go-ndagen/internal/dateutil"
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

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string
	Short    string
	Desc     string
	Bool     bool
	Values   []string // enum values
	FileGlob string   // e.g. "*.docx"
}

// commandDef describes a command for completion.
type commandDef struct {
	Name    string
	Desc    string
	Flags   []flagDef
	Args    []string // fixed positional words
	FileArg string   // glob for a positional file
}

// completionMeta holds completion hints that a FlagSet cannot express.
type completionMeta struct {
	Values   []string
	FileGlob string
}

// flagMeta returns per-flag completion hints keyed by long name.
func flagMeta(templates []string) map[string]completionMeta {
	return map[string]completionMeta{
		"output":      {FileGlob: "*.docx"},
		"template":    {Values: templates},
		"date-format": {Values: slices.Sorted(maps.Keys(dateutil.Presets))},
	}
}

// extractFlags reads flag definitions from fs and enriches them with meta.
func extractFlags(fs *flag.FlagSet, meta map[string]completionMeta) []flagDef {
	var flags []flagDef
	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
			Bool:  f.Value.Type() == "bool",
		}
		if m, ok := meta[f.Name]; ok {
			fd.Values = m.Values
			fd.FileGlob = m.FileGlob
		}
		flags = append(flags, fd)
	})
	return flags
}

// getCommands returns the command registry for completion. Flags come from
// the same FlagSets the parsers use.
func getCommands(templates []string) []commandDef {
	meta := flagMeta(templates)
	return []commandDef{
		{Name: "generate", Desc: "Generate the agreement", Flags: extractFlags(generateFlagSet(&generateFlags{}), meta)},
		{Name: "verify", Desc: "Check a generated agreement", Flags: extractFlags(verifyFlagSet(&verifyFlags{}), meta), FileArg: "*.docx"},
		{Name: "doctor", Desc: "Check that generation can succeed", Flags: extractFlags(doctorFlagSet(&doctorFlags{}), meta)},
		{Name: "version", Desc: "Show version information"},
		{Name: "help", Desc: "Show help for a command", Args: []string{"generate", "verify", "doctor", "version", "completion"}},
		{Name: "completion", Desc: "Generate shell completion script", Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish)}},
	}
}

// GenerateCompletion writes the completion script for shell to w.
func GenerateCompletion(w io.Writer, shell Shell, templates []string) error {
	cmds := getCommands(templates)
	var script string
	switch shell {
	case ShellBash:
		script = bashScript(cmds)
	case ShellZsh:
		script = zshScript(cmds)
	case ShellFish:
		script = fishScript(cmds)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) int {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return ExitSuccess
	}
	if err := GenerateCompletion(env.Stdout, Shell(args[0]), env.templateNames()); err != nil {
		return report(env, fmt.Errorf("%w: %v", ErrUsage, err))
	}
	return ExitSuccess
}

func bashScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# bash completion for ndagen\n")
	b.WriteString("_ndagen() {\n")
	b.WriteString("    local cur prev cmd\n")
	b.WriteString("    cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	b.WriteString("    prev=\"${COMP_WORDS[COMP_CWORD-1]}\"\n")
	b.WriteString("    cmd=generate\n")
	b.WriteString("    if [[ ${COMP_CWORD} -gt 1 && ${COMP_WORDS[1]} != -* ]]; then\n")
	b.WriteString("        cmd=\"${COMP_WORDS[1]}\"\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case \"$prev\" in\n")
	seen := make(map[string]bool)
	for _, c := range cmds {
		for _, f := range c.Flags {
			if f.Bool || seen[f.Long] {
				continue
			}
			seen[f.Long] = true
			pattern := "--" + f.Long
			if f.Short != "" {
				pattern = "-" + f.Short + "|" + pattern
			}
			fmt.Fprintf(&b, "        %s)\n            %s\n            return ;;\n", pattern, bashValues(f.Values, f.FileGlob))
		}
	}
	b.WriteString("    esac\n\n")

	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	b.WriteString("    if [[ ${COMP_CWORD} -eq 1 && $cur != -* ]]; then\n")
	fmt.Fprintf(&b, "        COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(names, " "))
	b.WriteString("        return\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case \"$cmd\" in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		b.WriteString("            if [[ $cur == -* ]]; then\n")
		fmt.Fprintf(&b, "                COMPREPLY=($(compgen -W %q -- \"$cur\"))\n", strings.Join(flagWords(c.Flags), " "))
		if len(c.Args) > 0 || c.FileArg != "" {
			b.WriteString("            else\n")
			fmt.Fprintf(&b, "                %s\n", bashValues(c.Args, c.FileArg))
		}
		b.WriteString("            fi ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("complete -F _ndagen ndagen\n")
	return b.String()
}

func bashValues(values []string, glob string) string {
	switch {
	case len(values) > 0:
		return fmt.Sprintf("COMPREPLY=($(compgen -W %q -- \"$cur\"))", strings.Join(values, " "))
	case glob != "":
		return fmt.Sprintf("compopt -o plusdirs 2>/dev/null; COMPREPLY=($(compgen -f -X '!%s' -- \"$cur\"))", glob)
	default:
		return "COMPREPLY=($(compgen -f -- \"$cur\"))"
	}
}

func flagWords(flags []flagDef) []string {
	var words []string
	for _, f := range flags {
		words = append(words, "--"+f.Long)
		if f.Short != "" {
			words = append(words, "-"+f.Short)
		}
	}
	words = append(words, "--help")
	return words
}

func zshScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("#compdef ndagen\n\n")
	b.WriteString("_ndagen() {\n")
	b.WriteString("    local -a commands\n")
	b.WriteString("    commands=(\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        '%s:%s'\n", c.Name, sanitizeDesc(c.Desc))
	}
	b.WriteString("    )\n\n")
	b.WriteString("    local cmd=generate\n")
	b.WriteString("    if [[ $words[2] != -* ]]; then\n")
	b.WriteString("        if (( CURRENT == 2 )); then\n")
	b.WriteString("            _describe 'command' commands\n")
	b.WriteString("            return\n")
	b.WriteString("        fi\n")
	b.WriteString("        cmd=$words[2]\n")
	b.WriteString("        shift words\n")
	b.WriteString("        (( CURRENT-- ))\n")
	b.WriteString("    fi\n\n")

	b.WriteString("    case $cmd in\n")
	for _, c := range cmds {
		fmt.Fprintf(&b, "        %s)\n", c.Name)
		b.WriteString("            _arguments \\\n")
		for _, f := range c.Flags {
			fmt.Fprintf(&b, "                %s \\\n", zshFlag(f))
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "                '1:argument:(%s)' \\\n", strings.Join(c.Args, " "))
		case c.FileArg != "":
			fmt.Fprintf(&b, "                '1:file:_files -g \"%s\"' \\\n", c.FileArg)
		}
		b.WriteString("                '(-h --help)'{-h,--help}'[show help]'\n")
		b.WriteString("            ;;\n")
	}
	b.WriteString("    esac\n")
	b.WriteString("}\n\n")
	b.WriteString("_ndagen \"$@\"\n")
	return b.String()
}

func zshFlag(f flagDef) string {
	spec := "'--" + f.Long + "[" + sanitizeDesc(f.Desc) + "]"
	if f.Short != "" {
		spec = "'(-" + f.Short + " --" + f.Long + ")'{-" + f.Short + ",--" + f.Long + "}'[" + sanitizeDesc(f.Desc) + "]"
	}
	switch {
	case f.Bool:
	case len(f.Values) > 0:
		spec += ":" + f.Long + ":(" + strings.Join(f.Values, " ") + ")"
	case f.FileGlob != "":
		spec += ":file:_files -g \"" + f.FileGlob + "\""
	default:
		spec += ":" + f.Long + ":"
	}
	return spec + "'"
}

func fishScript(cmds []commandDef) string {
	var b strings.Builder
	b.WriteString("# fish completion for ndagen\n")
	b.WriteString("complete -c ndagen -f\n\n")

	for _, c := range cmds {
		fmt.Fprintf(&b, "complete -c ndagen -n __fish_use_subcommand -a %s -d '%s'\n", c.Name, sanitizeDesc(c.Desc))
	}
	b.WriteString("\n")

	for _, c := range cmds {
		cond := "__fish_seen_subcommand_from " + c.Name
		if c.Name == "generate" {
			cond = "__fish_use_subcommand; or " + cond
		}
		for _, f := range c.Flags {
			line := fmt.Sprintf("complete -c ndagen -n '%s' -l %s", cond, f.Long)
			if f.Short != "" {
				line += " -s " + f.Short
			}
			switch {
			case f.Bool:
			case len(f.Values) > 0:
				line += " -xa '" + strings.Join(f.Values, " ") + "'"
			default:
				line += " -rF"
			}
			fmt.Fprintf(&b, "%s -d '%s'\n", line, sanitizeDesc(f.Desc))
		}
		switch {
		case len(c.Args) > 0:
			fmt.Fprintf(&b, "complete -c ndagen -n '%s' -a '%s'\n", cond, strings.Join(c.Args, " "))
		case c.FileArg != "":
			fmt.Fprintf(&b, "complete -c ndagen -n '%s' -F\n", cond)
		}
	}
	return b.String()
}

// sanitizeDesc drops characters that end a quoted description in any of
// the generated scripts.
func sanitizeDesc(s string) string {
	return strings.NewReplacer("'", "", "[", "(", "]", ")").Replace(s)
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: ndagen completion <shell>")
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
	fmt.Fprintln(w, "    eval \"$(ndagen completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (before compinit):")
	fmt.Fprintln(w, "    eval \"$(ndagen completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    ndagen completion fish > ~/.config/fish/completions/ndagen.fish")
}
