package main

import (
	"io"
	"os"
	"time"

	ndagen "github.com/cultivatedynamics/go-ndagen"
	"github.com/cultivatedynamics/go-ndagen/internal/assets"
)

// TemplateSource loads agreement templates and lists their names.
type TemplateSource interface {
	assets.TemplateLoader
	Names() []string
}

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	// Writer overrides the document writer; nil uses the built-in one.
	Writer ndagen.DocumentWriter
	// Templates is where generate, verify and doctor load agreements from.
	// nil uses the templates compiled into the binary.
	Templates TemplateSource
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:       time.Now,
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
		Templates: assets.NewEmbeddedLoader(),
	}
}

// options translates the environment into library options.
func (e *Environment) options() []ndagen.Option {
	opts := []ndagen.Option{ndagen.WithClock(e.Now)}
	if e.Writer != nil {
		opts = append(opts, ndagen.WithWriter(e.Writer))
	}
	if e.Templates != nil {
		opts = append(opts, ndagen.WithTemplateLoader(e.Templates))
	}
	return opts
}

func (e *Environment) templateNames() []string {
	if e.Templates == nil {
		return nil
	}
	return e.Templates.Names()
}
