package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	ndagen "github.com/cultivatedynamics/go-ndagen"
	"github.com/cultivatedynamics/go-ndagen/internal/dateutil"
	"github.com/cultivatedynamics/go-ndagen/internal/hints"
)

// verifyResult is the JSON form of a verification.
type verifyResult struct {
	Path     string          `json:"path"`
	Status   string          `json:"status"` // "ok", "problems"
	Summary  *ndagen.Summary `json:"summary"`
	Problems []string        `json:"problems,omitempty"`
}

// runVerifyCmd checks a generated document and returns an exit code.
// Exit codes: 0 = every structural property holds, 1 = problems found,
// 2 = usage, 3 = document unreadable.
func runVerifyCmd(args []string, env *Environment) int {
	f, path, err := parseVerifyFlags(args)
	if err != nil {
		if errors.Is(err, errHelp) {
			printVerifyUsage(env.Stdout)
			return ExitSuccess
		}
		return report(env, err)
	}
	if _, err := dateutil.Layout(f.dateFormat); err != nil {
		return report(env, fmt.Errorf("%w: %v", ErrUsage, err))
	}

	logger := newLogger(f.common.verbose, env.Stderr)
	defer func() { _ = logger.Sync() }()

	opts := env.options()
	if f.template != "" {
		opts = append(opts, ndagen.WithTemplate(f.template))
	}
	summary, problems, err := ndagen.Verify(path, opts...)
	if err != nil {
		return report(env, err)
	}
	logger.Debug("document verified", zap.String("path", path), zap.Int("problems", len(problems)))

	result := &verifyResult{Path: path, Status: "ok", Summary: summary, Problems: problems}
	if len(problems) > 0 {
		result.Status = "problems"
	}

	if f.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else if !f.common.quiet || len(problems) > 0 {
		created, _ := dateutil.Format(summary.Created, f.dateFormat)
		printVerifyResult(env.Stdout, result, created)
	}

	if len(problems) > 0 {
		return ExitGeneral
	}
	return ExitSuccess
}

// printVerifyResult outputs a human-readable verification report.
func printVerifyResult(w io.Writer, r *verifyResult, created string) {
	s := r.Summary
	fmt.Fprintf(w, "ndagen verify %s\n", r.Path)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Document")
	fmt.Fprintf(w, "  Creator: %s\n", s.Creator)
	fmt.Fprintf(w, "  Created: %s\n", created)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Structure")
	fmt.Fprintf(w, "  Titles: %d\n", len(s.Titles))
	fmt.Fprintf(w, "  Sections: %d\n", len(s.SectionHeadings))
	for _, h := range s.SectionHeadings {
		fmt.Fprintf(w, "    %s\n", h)
	}
	fmt.Fprintf(w, "  Signature blocks: %d\n", len(s.Signatures))
	for _, b := range s.Signatures {
		fmt.Fprintf(w, "    %s (%d lines)\n", b.Party, len(b.Lines))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Layout")
	m := s.MarginInches
	fmt.Fprintf(w, "  Margins: top %.2fin, right %.2fin, bottom %.2fin, left %.2fin\n", m[0], m[1], m[2], m[3])
	fmt.Fprintf(w, "  Default font: %s %.1fpt\n", s.FontFamily, s.FontSize)
	fmt.Fprintln(w)

	if len(r.Problems) > 0 {
		fmt.Fprintln(w, "Problems:")
		for _, p := range r.Problems {
			fmt.Fprintf(w, "  [ERROR] %s\n", p)
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Status: document incomplete"+hints.ForVerify())
		return
	}
	fmt.Fprintln(w, "Status: OK")
}
