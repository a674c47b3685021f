package ndagen

import (
	"fmt"
	"io"
	"math"
	"strconv"

	docxlib "github.com/fumiama/go-docx"

	"github.com/cultivatedynamics/go-ndagen/internal/docx"
)

// DOCXWriter writes Office Open XML word-processing packages through
// github.com/fumiama/go-docx.
type DOCXWriter struct{}

// NewDOCXWriter creates a DOCXWriter.
func NewDOCXWriter() *DOCXWriter {
	return &DOCXWriter{}
}

// Format returns "docx".
func (*DOCXWriter) Format() string { return "docx" }

// Check packs an empty document to io.Discard. A failure means the library
// cannot produce documents at all in this build.
func (*DOCXWriter) Check() error {
	f := docxlib.New()
	if err := docx.NewTemplate().Apply(f); err != nil {
		return err
	}
	if _, err := f.WriteTo(io.Discard); err != nil {
		return fmt.Errorf("packing empty document: %w", err)
	}
	return nil
}

// Write encodes doc as a .docx package.
func (*DOCXWriter) Write(w io.Writer, doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: nil document", ErrWriteDocument)
	}
	f, err := buildDocx(doc)
	if err != nil {
		return err
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("packing document: %w", err)
	}
	return nil
}

// Compile-time interface check.
var _ DocumentWriter = (*DOCXWriter)(nil)

// headerFooterMargin is the distance of the (empty) header and footer from
// the page edge.
const headerFooterMargin = 720

func buildDocx(doc *Document) (*docxlib.Docx, error) {
	f := docxlib.New()
	tmpl := docx.NewTemplate()

	for i, b := range doc.blocks {
		switch b := b.(type) {
		case Heading:
			p := f.AddParagraph().Style(tmpl.EnsureHeadingStyle(b.Level))
			align(p, b.Align)
			addRun(p, Run{Text: b.Text, Format: b.Format})
		case Paragraph:
			p := f.AddParagraph()
			if after := int(b.Format.SpaceAfter); after != 0 {
				p.Style(tmpl.EnsureSpacingStyle(after))
			}
			align(p, b.Format.Align)
			if before := int(b.Format.SpaceBefore); before != 0 {
				properties(p).Spacing = &docxlib.Spacing{Before: before}
			}
			if indent := int(b.Format.LeftIndent); indent != 0 {
				properties(p).Ind = &docxlib.Ind{Left: indent}
			}
			for _, r := range b.Runs {
				addRun(p, r)
			}
		case BlankLine:
			f.AddParagraph()
		default:
			return nil, fmt.Errorf("%w: block %d: %T", ErrUnknownBlock, i, b)
		}
	}

	// The section properties close the body.
	page := doc.Page
	f.Document.Body.Items = append(f.Document.Body.Items, &docxlib.SectPr{
		PgSz: &docxlib.PgSz{W: int(page.Width), H: int(page.Height)},
		PgMar: &docxlib.PgMar{
			Top:    int(page.Margins.Top),
			Right:  int(page.Margins.Right),
			Bottom: int(page.Margins.Bottom),
			Left:   int(page.Margins.Left),
			Header: headerFooterMargin,
			Footer: headerFooterMargin,
		},
	})

	if d := doc.Defaults; d != nil {
		applyDefaults(tmpl, *d)
	}
	tmpl.Core = docx.CoreProperties{
		Title:    doc.Meta.Title,
		Subject:  doc.Meta.Subject,
		Creator:  doc.Meta.Creator,
		Created:  doc.Created,
		Modified: doc.Created,
	}
	if err := tmpl.Apply(f); err != nil {
		return nil, err
	}
	return f, nil
}

// applyDefaults sets the family and size on Normal and the family on every
// heading style. Headings keep their own sizes.
func applyDefaults(tmpl *docx.Template, d StyleDefaults) {
	for i := range tmpl.Styles {
		s := &tmpl.Styles[i]
		switch {
		case s.ID == docx.StyleNormal:
			s.Font = d.FontFamily
			s.SizeHalfPoint = halfPoints(d.Size)
		case s.OutlineLevel >= 0 || s.ID == docx.StyleTitle:
			s.Font = d.FontFamily
		}
	}
}

func properties(p *docxlib.Paragraph) *docxlib.ParagraphProperties {
	if p.Properties == nil {
		p.Properties = &docxlib.ParagraphProperties{}
	}
	return p.Properties
}

func align(p *docxlib.Paragraph, a Alignment) {
	if jc := justification(a); jc != "" {
		p.Justification(jc)
	}
}

func addRun(p *docxlib.Paragraph, r Run) {
	run := p.AddText(r.Text)
	if run.RunProperties == nil {
		run.RunProperties = &docxlib.RunProperties{}
	}
	for _, c := range run.Children {
		if t, ok := c.(*docxlib.Text); ok {
			t.XMLSpace = "preserve"
		}
	}

	format := r.Format
	if format.Font != "" {
		run.RunProperties.Fonts = &docxlib.RunFonts{
			ASCII:    format.Font,
			HAnsi:    format.Font,
			EastAsia: format.Font,
		}
	}
	if format.Bold {
		run.Bold()
	}
	if hp := halfPoints(format.Size); hp > 0 {
		v := strconv.Itoa(hp)
		run.Size(v).SizeCs(v)
	}
}

func justification(a Alignment) string {
	switch a {
	case AlignLeft:
		return docx.AlignLeft
	case AlignCenter:
		return docx.AlignCenter
	case AlignRight:
		return docx.AlignRight
	case AlignJustify:
		return docx.AlignJustify
	}
	return ""
}

func halfPoints(pt float64) int {
	return int(math.Round(pt * 2))
}
