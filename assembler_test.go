package ndagen

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// Test doubles
// ---------------------------------------------------------------------------

// mockWriter records the last document and returns configured errors.
type mockWriter struct {
	checkErr error
	writeErr error
	payload  string
	last     *Document
}

func (m *mockWriter) Format() string { return "mock" }

func (m *mockWriter) Check() error { return m.checkErr }

func (m *mockWriter) Write(w io.Writer, doc *Document) error {
	m.last = doc
	if m.writeErr != nil {
		return m.writeErr
	}
	_, err := io.WriteString(w, m.payload)
	return err
}

func newTestAssembler(t *testing.T, opts ...Option) *Assembler {
	t.Helper()

	a, err := NewAssembler(opts...)
	if err != nil {
		t.Fatalf("NewAssembler() unexpected error: %v", err)
	}
	if err := a.Initialize(); err != nil {
		t.Fatalf("Initialize() unexpected error: %v", err)
	}
	return a
}

// ---------------------------------------------------------------------------
// NewAssembler - capability check
// ---------------------------------------------------------------------------

func TestNewAssembler_MissingCapability(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opt  Option
	}{
		{"nil writer", WithWriter(nil)},
		{"failing check", WithWriter(&mockWriter{checkErr: errors.New("encoder unavailable")})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a, err := NewAssembler(tt.opt)
			if !errors.Is(err, ErrMissingCapability) {
				t.Errorf("NewAssembler() error = %v, want ErrMissingCapability", err)
			}
			if a != nil {
				t.Error("NewAssembler() returned an assembler on failure")
			}
		})
	}
}

func TestNewAssembler_DefaultWriter(t *testing.T) {
	t.Parallel()

	a, err := NewAssembler()
	if err != nil {
		t.Fatalf("NewAssembler() unexpected error: %v", err)
	}
	if got := a.cfg.writer.Format(); got != "docx" {
		t.Errorf("default writer format = %q, want docx", got)
	}
}

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

func TestAssembler_Lifecycle(t *testing.T) {
	t.Parallel()

	a, err := NewAssembler(WithWriter(&mockWriter{}))
	if err != nil {
		t.Fatalf("NewAssembler() unexpected error: %v", err)
	}

	if err := a.AppendHeading("early", 1); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("AppendHeading before Initialize error = %v, want ErrNotInitialized", err)
	}
	if a.Document() != nil {
		t.Error("Document() before Initialize should be nil")
	}
	if err := a.Initialize(); err != nil {
		t.Fatalf("Initialize() unexpected error: %v", err)
	}
	if err := a.Initialize(); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("second Initialize() error = %v, want ErrAlreadyInitialized", err)
	}
	if got := a.Document().Page.Margins; got != UniformMargins(Inch) {
		t.Errorf("margins = %+v, want 1 inch", got)
	}
}

func TestAssembler_InitializeInvalidPage(t *testing.T) {
	t.Parallel()

	a, err := NewAssembler(WithWriter(&mockWriter{}), WithPage(&PageSettings{}))
	if err != nil {
		t.Fatalf("NewAssembler() unexpected error: %v", err)
	}
	if err := a.Initialize(); !errors.Is(err, ErrInvalidMargin) {
		t.Errorf("Initialize() error = %v, want ErrInvalidMargin", err)
	}
}

func TestAssembler_BlocksInOrder(t *testing.T) {
	t.Parallel()

	a := newTestAssembler(t, WithWriter(&mockWriter{}))

	steps := []func() error{
		func() error { return a.AppendHeading("Title", 0) },
		func() error { return a.AppendParagraph("Intro", ParagraphFormat{SpaceAfter: Points(12)}) },
		func() error { return a.AppendRun(" bold", RunFormat{Bold: true}) },
		func() error { return a.AppendHeading("1. Clause", 2) },
		func() error { return a.AppendParagraph("", ParagraphFormat{LeftIndent: Inches(0.25)}) },
		func() error { return a.AppendRun("(a) item", RunFormat{}) },
		func() error { return a.AppendBlankLine() },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d unexpected error: %v", i, err)
		}
	}

	want := []Block{
		Heading{Text: "Title", Level: 0},
		Paragraph{Format: ParagraphFormat{SpaceAfter: 240}, Runs: []Run{{Text: "Intro"}, {Text: " bold", Format: RunFormat{Bold: true}}}},
		Heading{Text: "1. Clause", Level: 2},
		Paragraph{Format: ParagraphFormat{LeftIndent: 360}, Runs: []Run{{Text: "(a) item"}}},
		BlankLine{},
	}
	if diff := cmp.Diff(want, a.Document().Blocks()); diff != "" {
		t.Errorf("Blocks() mismatch (-want +got):\n%s", diff)
	}
}

func TestAssembler_BlocksReturnsCopies(t *testing.T) {
	t.Parallel()

	a := newTestAssembler(t, WithWriter(&mockWriter{}))
	if err := a.AppendParagraph("original", ParagraphFormat{}); err != nil {
		t.Fatal(err)
	}

	blocks := a.Document().Blocks()
	blocks[0].(Paragraph).Runs[0].Text = "changed"

	got := a.Document().Blocks()[0].(Paragraph).Text()
	if got != "original" {
		t.Errorf("stored paragraph = %q, want original", got)
	}
}

func TestAssembler_AppendRunNeedsParagraph(t *testing.T) {
	t.Parallel()

	a := newTestAssembler(t, WithWriter(&mockWriter{}))

	if err := a.AppendRun("orphan", RunFormat{}); !errors.Is(err, ErrNoParagraph) {
		t.Errorf("AppendRun on empty document error = %v, want ErrNoParagraph", err)
	}
	if err := a.AppendHeading("Heading", 2); err != nil {
		t.Fatal(err)
	}
	if err := a.AppendRun("after heading", RunFormat{}); !errors.Is(err, ErrNoParagraph) {
		t.Errorf("AppendRun after heading error = %v, want ErrNoParagraph", err)
	}
	if err := a.AppendParagraph("p", ParagraphFormat{}); err != nil {
		t.Fatal(err)
	}
	if err := a.AppendBlankLine(); err != nil {
		t.Fatal(err)
	}
	if err := a.AppendRun("after blank", RunFormat{}); !errors.Is(err, ErrNoParagraph) {
		t.Errorf("AppendRun after blank line error = %v, want ErrNoParagraph", err)
	}
}

func TestAssembler_AppendValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		block   Block
		wantErr error
	}{
		{"heading level too deep", Heading{Text: "x", Level: 10}, ErrInvalidHeadingLevel},
		{"negative heading level", Heading{Text: "x", Level: -1}, ErrInvalidHeadingLevel},
		{"heading bad alignment", Heading{Text: "x", Align: Alignment(9)}, ErrInvalidAlignment},
		{"heading bad size", Heading{Text: "x", Format: RunFormat{Size: 5000}}, ErrInvalidFontSize},
		{"paragraph bad alignment", Paragraph{Format: ParagraphFormat{Align: Alignment(-1)}}, ErrInvalidAlignment},
		{"paragraph negative spacing", Paragraph{Format: ParagraphFormat{SpaceAfter: -1}}, ErrInvalidSpacing},
		{"paragraph negative indent", Paragraph{Format: ParagraphFormat{LeftIndent: -1}}, ErrInvalidSpacing},
		{"run bad size", Paragraph{Runs: []Run{{Text: "x", Format: RunFormat{Size: 0.5}}}}, ErrInvalidFontSize},
		{"pointer block", &Paragraph{}, ErrUnknownBlock},
		{"nil block", nil, ErrUnknownBlock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := newTestAssembler(t, WithWriter(&mockWriter{}))
			if err := a.Append(tt.block); !errors.Is(err, tt.wantErr) {
				t.Errorf("Append() error = %v, want %v", err, tt.wantErr)
			}
			if a.Document().Len() != 0 {
				t.Error("rejected block was stored")
			}
		})
	}
}

func TestAssembler_ApplyDocumentDefaults(t *testing.T) {
	t.Parallel()

	a := newTestAssembler(t, WithWriter(&mockWriter{}))

	if err := a.ApplyDocumentDefaults("", 12); !errors.Is(err, ErrEmptyFontFamily) {
		t.Errorf("empty family error = %v, want ErrEmptyFontFamily", err)
	}
	if err := a.ApplyDocumentDefaults("Times New Roman", 0); !errors.Is(err, ErrInvalidFontSize) {
		t.Errorf("zero size error = %v, want ErrInvalidFontSize", err)
	}
	if err := a.ApplyDocumentDefaults("Times New Roman", 12); err != nil {
		t.Fatalf("ApplyDocumentDefaults() unexpected error: %v", err)
	}
	if err := a.ApplyDocumentDefaults("Arial", 11); !errors.Is(err, ErrDefaultsApplied) {
		t.Errorf("second call error = %v, want ErrDefaultsApplied", err)
	}

	want := &StyleDefaults{FontFamily: "Times New Roman", Size: 12}
	if diff := cmp.Diff(want, a.Document().Defaults); diff != "" {
		t.Errorf("Defaults mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// Serialize
// ---------------------------------------------------------------------------

func TestAssembler_Serialize(t *testing.T) {
	t.Parallel()

	fixed := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	w := &mockWriter{payload: "document"}
	a := newTestAssembler(t, WithWriter(w), WithClock(func() time.Time { return fixed }))
	if err := a.AppendHeading("Title", 0); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "out.docx")
	n, err := a.Serialize(path)
	if err != nil {
		t.Fatalf("Serialize() unexpected error: %v", err)
	}
	if n != int64(len("document")) {
		t.Errorf("Serialize() = %d bytes, want %d", n, len("document"))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "document" {
		t.Errorf("output = %q, want %q", data, "document")
	}
	if !w.last.Created.Equal(fixed) {
		t.Errorf("Created = %v, want %v", w.last.Created, fixed)
	}
}

func TestAssembler_SealedAfterSerialize(t *testing.T) {
	t.Parallel()

	a := newTestAssembler(t, WithWriter(&mockWriter{}))
	if err := a.AppendParagraph("text", ParagraphFormat{}); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Serialize(filepath.Join(t.TempDir(), "out.docx")); err != nil {
		t.Fatalf("Serialize() unexpected error: %v", err)
	}

	checks := map[string]error{
		"Initialize":            a.Initialize(),
		"AppendHeading":         a.AppendHeading("late", 2),
		"AppendParagraph":       a.AppendParagraph("late", ParagraphFormat{}),
		"AppendRun":             a.AppendRun("late", RunFormat{}),
		"AppendBlankLine":       a.AppendBlankLine(),
		"ApplyDocumentDefaults": a.ApplyDocumentDefaults("Serif", 12),
	}
	for name, err := range checks {
		if !errors.Is(err, ErrSealed) {
			t.Errorf("%s after Serialize error = %v, want ErrSealed", name, err)
		}
	}
	if _, err := a.Serialize(filepath.Join(t.TempDir(), "again.docx")); !errors.Is(err, ErrSealed) {
		t.Errorf("second Serialize() error = %v, want ErrSealed", err)
	}
}

func TestAssembler_SerializeFailures(t *testing.T) {
	t.Parallel()

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		a := newTestAssembler(t, WithWriter(&mockWriter{payload: "x"}))
		path := filepath.Join(t.TempDir(), "missing", "out.docx")

		_, err := a.Serialize(path)
		if !errors.Is(err, ErrWriteDocument) {
			t.Errorf("Serialize() error = %v, want ErrWriteDocument", err)
		}
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("Serialize() error = %v, want it to wrap os.ErrNotExist", err)
		}
	})

	t.Run("writer error leaves no file", func(t *testing.T) {
		t.Parallel()

		a := newTestAssembler(t, WithWriter(&mockWriter{writeErr: errors.New("encode failed")}))
		path := filepath.Join(t.TempDir(), "out.docx")

		if _, err := a.Serialize(path); !errors.Is(err, ErrWriteDocument) {
			t.Errorf("Serialize() error = %v, want ErrWriteDocument", err)
		}
		if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("output exists after failed write: %v", err)
		}
	})

	t.Run("failure does not seal", func(t *testing.T) {
		t.Parallel()

		a := newTestAssembler(t, WithWriter(&mockWriter{payload: "x"}))
		dir := t.TempDir()
		if _, err := a.Serialize(filepath.Join(dir, "missing", "out.docx")); err == nil {
			t.Fatal("Serialize() into a missing directory succeeded")
		}
		if _, err := a.Serialize(filepath.Join(dir, "out.docx")); err != nil {
			t.Errorf("retry Serialize() unexpected error: %v", err)
		}
	})
}
