package main

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"

	ndagen "github.com/cultivatedynamics/go-ndagen"
	"github.com/cultivatedynamics/go-ndagen/internal/assets"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"missing capability", fmt.Errorf("%w: zip unavailable", ndagen.ErrMissingCapability), ExitGeneral},
		{"write failure", fmt.Errorf("%w: out.docx: %w", ndagen.ErrWriteDocument, fs.ErrPermission), ExitIO},
		{"read failure", fmt.Errorf("%w: in.docx", ndagen.ErrReadDocument), ExitIO},
		{"not exist", fs.ErrNotExist, ExitIO},
		{"permission", fmt.Errorf("open: %w", fs.ErrPermission), ExitIO},
		{"usage", fmt.Errorf("%w: bad flag", ErrUsage), ExitUsage},
		{"template", fmt.Errorf("%w: broken", ndagen.ErrTemplate), ExitGeneral},
		{"other", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestHintFor(t *testing.T) {
	t.Parallel()

	env := &Environment{Templates: assets.NewEmbeddedLoader()}

	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{"missing capability", ndagen.ErrMissingCapability, "ndagen doctor"},
		{"write failure", ndagen.ErrWriteDocument, "--output"},
		{"template", ndagen.ErrTemplate, "available: " + assets.DefaultTemplateName},
		{"other", errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := hintFor(tt.err, env)
			if tt.contains == "" {
				if got != "" {
					t.Errorf("hintFor() = %q, want empty", got)
				}
				return
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("hintFor() = %q, want it to contain %q", got, tt.contains)
			}
		})
	}
}
