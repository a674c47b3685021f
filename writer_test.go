package ndagen

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/cultivatedynamics/go-ndagen/internal/docx"
)

func sampleDocument() *Document {
	return &Document{
		Page:     *DefaultPageSettings(),
		Defaults: &StyleDefaults{FontFamily: "Times New Roman", Size: 12},
		Meta:     Metadata{Title: "Agreement", Creator: "Cultivate Dynamics LLC"},
		Created:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		blocks: []Block{
			Heading{Text: "Agreement", Level: 0, Align: AlignCenter, Format: RunFormat{Font: "Times New Roman", Size: 16}},
			Heading{Text: "1. Terms", Level: 2},
			Paragraph{
				Format: ParagraphFormat{Align: AlignJustify, SpaceAfter: Points(12), LeftIndent: Inches(0.25)},
				Runs:   []Run{{Text: "Plain "}, {Text: "bold", Format: RunFormat{Bold: true}}},
			},
			Heading{Text: "Annex", Level: 4},
			BlankLine{},
		},
	}
}

// writeAndRead packs doc through DOCXWriter and decodes the result.
func writeAndRead(t *testing.T, doc *Document) *docx.Package {
	t.Helper()

	var buf bytes.Buffer
	if err := NewDOCXWriter().Write(&buf, doc); err != nil {
		t.Fatalf("Write() unexpected error: %v", err)
	}
	pkg, err := docx.Read(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("docx.Read() unexpected error: %v", err)
	}
	return pkg
}

// ---------------------------------------------------------------------------
// TestDOCXWriter_Paragraphs - Blocks map to styled paragraphs
// ---------------------------------------------------------------------------

func TestDOCXWriter_Paragraphs(t *testing.T) {
	t.Parallel()

	pkg := writeAndRead(t, sampleDocument())

	want := []docx.Paragraph{
		{StyleID: docx.StyleTitle, Align: docx.AlignCenter, SpaceAfter: 300, Runs: []docx.Run{
			{Text: "Agreement", Font: "Times New Roman", EastAsiaFont: "Times New Roman", SizeHalfPoint: 32},
		}},
		{StyleID: docx.StyleHeading2, SpaceBefore: 200, Runs: []docx.Run{{Text: "1. Terms"}}},
		{StyleID: "SpaceAfter240", Align: docx.AlignJustify, SpaceAfter: 240, IndentLeft: 360, Runs: []docx.Run{
			{Text: "Plain "}, {Text: "bold", Bold: true},
		}},
		{StyleID: "Heading4", SpaceBefore: 200, Runs: []docx.Run{{Text: "Annex"}}},
		{},
	}
	if diff := cmp.Diff(want, pkg.Paragraphs, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Paragraphs mismatch (-want +got):\n%s", diff)
	}

	m := pkg.Section.Margins
	if m.Top != 1440 || m.Right != 1440 || m.Bottom != 1440 || m.Left != 1440 {
		t.Errorf("margins = %+v, want 1440 twips on every side", m)
	}
	if pkg.Section.Width != 12240 || pkg.Section.Height != 15840 {
		t.Errorf("page = %dx%d, want US Letter", pkg.Section.Width, pkg.Section.Height)
	}
	if pkg.Core.Creator != "Cultivate Dynamics LLC" || !pkg.Core.Created.Equal(pkg.Core.Modified) {
		t.Errorf("Core = %+v", pkg.Core)
	}
}

func TestDOCXWriter_SpaceBeforeAndAfter(t *testing.T) {
	t.Parallel()

	doc := sampleDocument()
	doc.blocks = []Block{
		Paragraph{
			Format: ParagraphFormat{SpaceBefore: Points(36), SpaceAfter: Points(6)},
			Runs:   []Run{{Text: "Party", Format: RunFormat{Bold: true}}},
		},
		Paragraph{Format: ParagraphFormat{SpaceAfter: Points(6)}, Runs: []Run{{Text: "Name:"}}},
		Paragraph{Runs: []Run{{Text: "Plain"}}},
	}
	pkg := writeAndRead(t, doc)

	got := make([][2]int, 0, len(pkg.Paragraphs))
	for _, p := range pkg.Paragraphs {
		got = append(got, [2]int{p.SpaceBefore, p.SpaceAfter})
	}
	if diff := cmp.Diff([][2]int{{720, 120}, {0, 120}, {0, 0}}, got); diff != "" {
		t.Errorf("spacing mismatch (-want +got):\n%s", diff)
	}

	var spacing int
	for _, s := range pkg.Styles {
		if s.SpaceAfter == 120 && s.BasedOn == docx.StyleNormal {
			spacing++
		}
	}
	if spacing != 1 {
		t.Errorf("found %d space-after styles for 6pt, want 1 shared style", spacing)
	}
}

func TestDOCXWriter_Defaults(t *testing.T) {
	t.Parallel()

	pkg := writeAndRead(t, sampleDocument())

	normal := pkg.Style(docx.StyleNormal)
	if normal == nil || normal.Font != "Times New Roman" || normal.SizeHalfPoint != 24 {
		t.Fatalf("Normal = %+v, want Times New Roman 24 half-points", normal)
	}

	stock := docx.NewTemplate()
	stock.EnsureHeadingStyle(4)
	for _, id := range []string{docx.StyleTitle, docx.StyleHeading1, docx.StyleHeading2, "Heading4"} {
		s := pkg.Style(id)
		if s == nil {
			t.Fatalf("style %s missing", id)
		}
		if s.Font != "Times New Roman" {
			t.Errorf("%s font = %q, want Times New Roman", id, s.Font)
		}
		if want := stock.Style(id).SizeHalfPoint; s.SizeHalfPoint != want {
			t.Errorf("%s size = %d half-points, want unchanged %d", id, s.SizeHalfPoint, want)
		}
	}
}

func TestDOCXWriter_NoDefaults(t *testing.T) {
	t.Parallel()

	doc := sampleDocument()
	doc.Defaults = nil
	pkg := writeAndRead(t, doc)
	if f := pkg.Style(docx.StyleNormal).Font; f != "" {
		t.Errorf("Normal font = %q without defaults, want empty", f)
	}
}

func TestDOCXWriter_UnknownBlock(t *testing.T) {
	t.Parallel()

	doc := sampleDocument()
	doc.blocks = append(doc.blocks, &Paragraph{})
	err := NewDOCXWriter().Write(&bytes.Buffer{}, doc)
	if !errors.Is(err, ErrUnknownBlock) {
		t.Errorf("Write() error = %v, want ErrUnknownBlock", err)
	}
}

// Defaults resolve by style name, so the package reads back the same
// whichever order the assembler received them in.
func TestDOCXWriter_DefaultsOrderIndependent(t *testing.T) {
	t.Parallel()

	build := func(defaultsFirst bool) *docx.Package {
		a := newTestAssembler(t, WithClock(func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }))
		if defaultsFirst {
			if err := a.ApplyDocumentDefaults("Times New Roman", 12); err != nil {
				t.Fatal(err)
			}
		}
		if err := a.AppendHeading("Title", 0); err != nil {
			t.Fatal(err)
		}
		if err := a.AppendParagraph("Body", ParagraphFormat{}); err != nil {
			t.Fatal(err)
		}
		if !defaultsFirst {
			if err := a.ApplyDocumentDefaults("Times New Roman", 12); err != nil {
				t.Fatal(err)
			}
		}
		a.doc.Created = a.cfg.now()

		return writeAndRead(t, a.doc)
	}

	if diff := cmp.Diff(build(true), build(false)); diff != "" {
		t.Errorf("package differs with defaults applied before and after content (-first +last):\n%s", diff)
	}
}

func TestDOCXWriter_Write(t *testing.T) {
	t.Parallel()

	w := NewDOCXWriter()
	if w.Format() != "docx" {
		t.Errorf("Format() = %q", w.Format())
	}
	if err := w.Check(); err != nil {
		t.Fatalf("Check() unexpected error: %v", err)
	}

	pkg := writeAndRead(t, sampleDocument())
	if got := pkg.Paragraphs[2].Text(); got != "Plain bold" {
		t.Errorf("paragraph text = %q, want %q", got, "Plain bold")
	}
	if family, hp := pkg.ResolvedFont(docx.StyleNormal); family != "Times New Roman" || hp != 24 {
		t.Errorf("ResolvedFont(Normal) = %s %d", family, hp)
	}
}

func TestDOCXWriter_NilDocument(t *testing.T) {
	t.Parallel()

	err := NewDOCXWriter().Write(&bytes.Buffer{}, nil)
	if !errors.Is(err, ErrWriteDocument) {
		t.Errorf("Write(nil) error = %v, want ErrWriteDocument", err)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestDOCXWriter_WriteError(t *testing.T) {
	t.Parallel()

	if err := NewDOCXWriter().Write(failWriter{}, sampleDocument()); err == nil {
		t.Error("Write() to a failing writer succeeded, want error")
	}
}
