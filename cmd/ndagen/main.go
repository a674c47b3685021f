package main

import (
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Configure GOMAXPROCS with conditional logging
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if hasVerboseFlag(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	os.Exit(runMain(os.Args[1:], DefaultEnv()))
}

// runMain dispatches a command and returns the process exit code.
// With no arguments it generates the agreement in the working directory.
func runMain(args []string, env *Environment) int {
	if len(args) > 0 {
		switch args[0] {
		case "--version":
			printVersion(env)
			return ExitSuccess
		case "-h", "--help":
			printUsage(env.Stdout)
			return ExitSuccess
		}
	}

	cmd, rest := "generate", args
	if len(args) > 0 && !isFlag(args[0]) {
		cmd, rest = args[0], args[1:]
	}

	switch cmd {
	case "generate":
		return report(env, runGenerate(rest, env))
	case "verify":
		return runVerifyCmd(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "completion":
		return runCompletion(rest, env)
	case "version":
		printVersion(env)
		return ExitSuccess
	case "help":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}
}

// report prints err with its hint and maps it to an exit code.
func report(env *Environment, err error) int {
	if err == nil {
		return ExitSuccess
	}
	fmt.Fprintln(env.Stderr, "error: "+err.Error()+hintFor(err, env))
	return exitCodeFor(err)
}

func printVersion(env *Environment) {
	fmt.Fprintf(env.Stdout, "ndagen %s\n", Version)
}

func isFlag(arg string) bool {
	return len(arg) > 1 && arg[0] == '-'
}

func hasVerboseFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-v" || arg == "--verbose" {
			return true
		}
	}
	return false
}
