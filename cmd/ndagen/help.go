package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: ndagen [command] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Without a command, writes "+defaultOutput()+" to the current directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  generate   Generate the agreement (default)")
	fmt.Fprintln(w, "  verify     Check the structure of a generated agreement")
	fmt.Fprintln(w, "  doctor     Check that generation can succeed")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'ndagen help <command>' for details on a specific command.")
}

// printGenerateUsage prints usage for the generate command.
func printGenerateUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: ndagen generate [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate the mutual non-disclosure agreement as a .docx file.")
	fmt.Fprintln(w, "An existing file at the output path is replaced.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default "+defaultOutput()+")")
	fmt.Fprintln(w, "  -t, --template <name>     Embedded template name")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log assembly steps to stderr")
}

// printVerifyUsage prints usage for the verify command.
func printVerifyUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: ndagen verify [path] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Reopen a generated agreement and check its title, sections,")
	fmt.Fprintln(w, "signature blocks, margins and fonts.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  path    Document to check (default "+defaultOutput()+")")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -t, --template <name>     Template the document was generated from")
	fmt.Fprintln(w, "      --json                Print the summary as JSON")
	fmt.Fprintln(w, "      --date-format <fmt>   Creation date layout: iso, european, us, long,")
	fmt.Fprintln(w, "                            stamp, or tokens like 'DD MMM YYYY' (default long)")
	fmt.Fprintln(w, "  -q, --quiet               Only show problems")
	fmt.Fprintln(w, "  -v, --verbose             Log to stderr")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: ndagen doctor [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check the document writer, the embedded template and the output directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file whose directory is checked")
	fmt.Fprintln(w, "      --json                Print results as JSON")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "generate":
		printGenerateUsage(env.Stdout)
	case "verify":
		printVerifyUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: ndagen version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: ndagen help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
