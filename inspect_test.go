package ndagen

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestVerify_GeneratedDocument(t *testing.T) {
	t.Parallel()

	s, problems, err := Verify(generateTemp(t))
	if err != nil {
		t.Fatalf("Verify() unexpected error: %v", err)
	}
	if len(problems) != 0 {
		t.Errorf("Verify() problems = %q, want none", problems)
	}
	if s.MarginInches != [4]float64{1, 1, 1, 1} {
		t.Errorf("MarginInches = %v", s.MarginInches)
	}
	if s.Creator != "Cultivate Dynamics LLC" || s.Created.IsZero() {
		t.Errorf("Creator = %q, Created = %v", s.Creator, s.Created)
	}
}

func TestVerify_IncompleteDocument(t *testing.T) {
	t.Parallel()

	a := newTestAssembler(t)
	steps := []error{
		a.AppendHeading("Mutual Non-Disclosure Agreement (NDA)", 0),
		a.AppendHeading("1. Definition of Confidential Information", 2),
		a.AppendParagraph("", ParagraphFormat{}),
		a.AppendRun("Receiving Party", RunFormat{Bold: true}),
		a.ApplyDocumentDefaults("Arial", 11),
	}
	for i, err := range steps {
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
	}
	path := filepath.Join(t.TempDir(), "partial.docx")
	if _, err := a.Serialize(path); err != nil {
		t.Fatal(err)
	}

	_, problems, err := Verify(path)
	if err != nil {
		t.Fatalf("Verify() unexpected error: %v", err)
	}

	joined := strings.Join(problems, "\n")
	for _, want := range []string{
		"want 7 section headings, found 1",
		"want 2 signature blocks, found 1",
		"default font is Arial 11.0pt",
		"heading style",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("problems missing %q:\n%s", want, joined)
		}
	}
	if strings.Contains(joined, "want exactly 1 title") {
		t.Errorf("title reported although present:\n%s", joined)
	}
}

func TestInspect_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.docx")
	if err := os.WriteFile(garbage, []byte("not a zip"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{filepath.Join(dir, "missing.docx"), garbage} {
		if _, err := Inspect(path); !errors.Is(err, ErrReadDocument) {
			t.Errorf("Inspect(%s) error = %v, want ErrReadDocument", filepath.Base(path), err)
		}
	}
}

func TestVerify_UnknownTemplate(t *testing.T) {
	t.Parallel()

	_, _, err := Verify(generateTemp(t), WithTemplate("missing"))
	if !errors.Is(err, ErrTemplate) {
		t.Errorf("Verify() error = %v, want ErrTemplate", err)
	}
}
