package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	ndagen "github.com/cultivatedynamics/go-ndagen"
	"github.com/cultivatedynamics/go-ndagen/internal/agreement"
	"github.com/cultivatedynamics/go-ndagen/internal/assets"
	"github.com/cultivatedynamics/go-ndagen/internal/fileutil"
	"github.com/cultivatedynamics/go-ndagen/internal/hints"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status   string       `json:"status"` // "ready", "warnings", "errors"
	Writer   writerInfo   `json:"writer"`
	Template templateInfo `json:"template"`
	Output   outputInfo   `json:"output"`
	Env      envInfo      `json:"environment"`
	Warnings []string     `json:"warnings,omitempty"`
	Errors   []string     `json:"errors,omitempty"`
}

// writerInfo holds the document writer check.
type writerInfo struct {
	Available bool   `json:"available"`
	Format    string `json:"format,omitempty"`
}

// templateInfo holds the embedded template check.
type templateInfo struct {
	Name     string `json:"name"`
	Valid    bool   `json:"valid"`
	Sections int    `json:"sections,omitempty"`
}

// outputInfo holds output location checks.
type outputInfo struct {
	Path     string `json:"path"`
	Writable bool   `json:"writable"`
	Exists   bool   `json:"exists"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	GoVersion string `json:"go_version"`
	Container bool   `json:"container"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	f, err := parseDoctorFlags(args)
	if err != nil {
		if errors.Is(err, errHelp) {
			printDoctorUsage(env.Stdout)
			return ExitSuccess
		}
		return report(env, err)
	}

	output := f.output
	if output == "" {
		output = defaultOutput()
	}
	result := runDoctor(env, output)

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(env *Environment, output string) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:        runtime.GOOS,
			Arch:      runtime.GOARCH,
			GoVersion: runtime.Version(),
			Container: hints.IsInContainer(),
		},
	}

	checkWriter(env, result)
	checkTemplate(env, result)
	checkOutput(output, result)

	// Determine final status
	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}

	return result
}

// checkWriter verifies the document writer can encode a package.
func checkWriter(env *Environment, result *doctorResult) {
	var w ndagen.DocumentWriter = ndagen.NewDOCXWriter()
	if env.Writer != nil {
		w = env.Writer
	}
	result.Writer.Format = w.Format()

	if _, err := ndagen.NewAssembler(ndagen.WithWriter(w)); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Document writer unavailable: %v", err))
		return
	}
	result.Writer.Available = true
}

// checkTemplate verifies the embedded agreement decodes and validates.
func checkTemplate(env *Environment, result *doctorResult) {
	result.Template.Name = assets.DefaultTemplateName

	var loader assets.TemplateLoader = assets.NewEmbeddedLoader()
	if env.Templates != nil {
		loader = env.Templates
	}
	tpl, err := agreement.Load(loader, assets.DefaultTemplateName)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Template %s invalid: %v", assets.DefaultTemplateName, err))
		return
	}
	result.Template.Valid = true
	result.Template.Sections = len(tpl.Sections)
}

// checkOutput verifies the output directory accepts new files.
func checkOutput(output string, result *doctorResult) {
	abs, err := filepath.Abs(output)
	if err != nil {
		abs = output
	}
	result.Output.Path = abs

	if err := fileutil.DirWritable(filepath.Dir(abs)); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Output directory not writable: %s", filepath.Dir(abs)))
	} else {
		result.Output.Writable = true
	}

	if info, err := os.Stat(abs); err == nil {
		if info.IsDir() {
			result.Errors = append(result.Errors, fmt.Sprintf("Output path is a directory: %s", abs))
			return
		}
		result.Output.Exists = true
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s exists and will be overwritten", filepath.Base(abs)))
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "ndagen doctor")
	fmt.Fprintln(w)

	// Writer section
	fmt.Fprintln(w, "Document writer")
	if r.Writer.Available {
		fmt.Fprintf(w, "  [OK] Format: %s\n", r.Writer.Format)
	} else {
		fmt.Fprintln(w, "  [ERROR] Not available")
	}
	fmt.Fprintln(w)

	// Template section
	fmt.Fprintln(w, "Template")
	if r.Template.Valid {
		fmt.Fprintf(w, "  [OK] %s: %d sections\n", r.Template.Name, r.Template.Sections)
	} else {
		fmt.Fprintf(w, "  [ERROR] %s: invalid\n", r.Template.Name)
	}
	fmt.Fprintln(w)

	// Output section
	fmt.Fprintln(w, "Output")
	if r.Output.Writable {
		fmt.Fprintf(w, "  [OK] Directory writable: %s\n", filepath.Dir(r.Output.Path))
	} else {
		fmt.Fprintf(w, "  [ERROR] Directory not writable: %s\n", filepath.Dir(r.Output.Path))
	}
	fmt.Fprintln(w)

	// Environment section
	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s (%s)\n", r.Env.OS, r.Env.Arch, r.Env.GoVersion)
	if r.Env.Container {
		fmt.Fprintln(w, "  [OK] Container: detected")
	}
	fmt.Fprintln(w)

	// Warnings
	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	// Errors
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	// Final status
	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to generate")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
