package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks invalid flags or arguments.
var ErrUsage = errors.New("usage error")

// errHelp is returned by parsers when -h/--help was given.
var errHelp = flag.ErrHelp

// commonFlags holds flags shared across commands.
type commonFlags struct {
	quiet   bool
	verbose bool
}

// generateFlags holds flags for the generate command.
type generateFlags struct {
	common   commonFlags
	output   string
	template string
}

// verifyFlags holds flags for the verify command.
type verifyFlags struct {
	common     commonFlags
	template   string
	json       bool
	dateFormat string
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	json   bool
	output string
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log assembly steps to stderr")
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false
	return fs
}

// parseFlags runs fs and converts parse failures to ErrUsage.
func parseFlags(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, errHelp
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return fs.Args(), nil
}

// parseGenerateFlags parses generate command flags. No positional
// arguments are accepted.
func parseGenerateFlags(args []string) (*generateFlags, error) {
	f := &generateFlags{}
	rest, err := parseFlags(generateFlagSet(f), args)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, rest[0])
	}
	return f, nil
}

// generateFlagSet registers generate flags on a new FlagSet bound to f.
// Completion scripts are built from the same sets.
func generateFlagSet(f *generateFlags) *flag.FlagSet {
	fs := newFlagSet("generate")
	fs.StringVarP(&f.output, "output", "o", "", "output file (default "+defaultOutput()+")")
	fs.StringVarP(&f.template, "template", "t", "", "embedded template name")
	addCommonFlags(fs, &f.common)
	return fs
}

// parseVerifyFlags parses verify command flags and returns the optional
// document path.
func parseVerifyFlags(args []string) (*verifyFlags, string, error) {
	f := &verifyFlags{}
	rest, err := parseFlags(verifyFlagSet(f), args)
	if err != nil {
		return nil, "", err
	}
	switch len(rest) {
	case 0:
		return f, defaultOutput(), nil
	case 1:
		return f, rest[0], nil
	default:
		return nil, "", fmt.Errorf("%w: verify takes at most one path", ErrUsage)
	}
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string) (*doctorFlags, error) {
	f := &doctorFlags{}
	rest, err := parseFlags(doctorFlagSet(f), args)
	if err != nil {
		return nil, err
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, rest[0])
	}
	return f, nil
}

func verifyFlagSet(f *verifyFlags) *flag.FlagSet {
	fs := newFlagSet("verify")
	fs.StringVarP(&f.template, "template", "t", "", "template the document was generated from")
	fs.BoolVar(&f.json, "json", false, "print the summary as JSON")
	fs.StringVar(&f.dateFormat, "date-format", "", "creation date layout: preset or tokens")
	addCommonFlags(fs, &f.common)
	return fs
}

func doctorFlagSet(f *doctorFlags) *flag.FlagSet {
	fs := newFlagSet("doctor")
	fs.BoolVar(&f.json, "json", false, "print results as JSON")
	fs.StringVarP(&f.output, "output", "o", "", "output file whose directory is checked")
	return fs
}
