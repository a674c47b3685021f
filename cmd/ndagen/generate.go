package main

import (
	"errors"
	"fmt"

	ndagen "github.com/cultivatedynamics/go-ndagen"
)

func defaultOutput() string {
	return ndagen.DefaultOutputName
}

// runGenerate writes the agreement and prints a confirmation naming the file.
func runGenerate(args []string, env *Environment) error {
	f, err := parseGenerateFlags(args)
	if err != nil {
		if errors.Is(err, errHelp) {
			printGenerateUsage(env.Stdout)
			return nil
		}
		return err
	}

	logger := newLogger(f.common.verbose, env.Stderr)
	defer func() { _ = logger.Sync() }()

	opts := append(env.options(), ndagen.WithLogger(logger))
	if f.template != "" {
		opts = append(opts, ndagen.WithTemplate(f.template))
	}

	res, err := ndagen.Generate(f.output, opts...)
	if err != nil {
		return err
	}

	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "Document created successfully: %s\n", res.Path)
	}
	return nil
}
