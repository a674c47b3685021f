package ndagen

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cultivatedynamics/go-ndagen/internal/agreement"
	"github.com/cultivatedynamics/go-ndagen/internal/inline"
)

// DefaultOutputName is the file Generate writes when no path is given.
const DefaultOutputName = "CultivateDynamics_RiskLo_NDA.docx"

// Result describes a generated document.
type Result struct {
	Path   string
	Bytes  int64
	Blocks int
}

// Generate assembles the agreement and writes it to path (DefaultOutputName
// when empty).
//
// The writer capability is checked first; on ErrMissingCapability nothing is
// loaded and nothing is written. Template problems wrap ErrTemplate and I/O
// problems wrap ErrWriteDocument.
func Generate(path string, opts ...Option) (*Result, error) {
	if path == "" {
		path = DefaultOutputName
	}

	a, err := NewAssembler(opts...)
	if err != nil {
		return nil, err
	}

	tpl, err := agreement.Load(a.cfg.loader, a.cfg.templateName)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplate, a.cfg.templateName, err)
	}
	a.log.Debug("template loaded",
		zap.String("template", a.cfg.templateName),
		zap.Int("sections", len(tpl.Sections)),
		zap.Int("paragraphs", tpl.Paragraphs()),
		zap.Int("signatures", len(tpl.Signatures)),
	)

	a.useTemplate(tpl)
	if err := a.Initialize(); err != nil {
		return nil, err
	}
	if err := appendAgreement(a, tpl); err != nil {
		return nil, err
	}
	l := tpl.Layout
	if err := a.ApplyDocumentDefaults(l.FontFamily, l.FontSizePt); err != nil {
		return nil, err
	}

	n, err := a.Serialize(path)
	if err != nil {
		return nil, err
	}
	return &Result{Path: path, Bytes: n, Blocks: a.Document().Len()}, nil
}

// useTemplate fills page and metadata the caller did not set explicitly.
func (a *Assembler) useTemplate(tpl *agreement.Template) {
	if !a.cfg.pageSet {
		page := DefaultPageSettings()
		page.Margins = UniformMargins(Inches(tpl.Layout.MarginInches))
		a.cfg.page = page
	}
	if a.cfg.meta == (Metadata{}) {
		a.cfg.meta = Metadata{Title: tpl.Title, Subject: tpl.Subject, Creator: tpl.Creator}
	}
}

// appendAgreement appends title, preamble, sections and signature blocks
// in document order.
func appendAgreement(a *Assembler, tpl *agreement.Template) error {
	l := tpl.Layout

	title := Heading{
		Text:   tpl.Title,
		Level:  0,
		Align:  AlignCenter,
		Format: RunFormat{Font: l.FontFamily, Size: l.TitleSizePt},
	}
	if err := a.Append(title); err != nil {
		return err
	}

	for _, p := range tpl.Preamble {
		if err := appendBody(a, l, p); err != nil {
			return err
		}
	}

	for _, s := range tpl.Sections {
		if err := a.AppendHeading(s.Heading, 2); err != nil {
			return err
		}
		for _, p := range s.Paragraphs {
			if err := appendBody(a, l, p); err != nil {
				return err
			}
		}
	}

	if err := a.AppendBlankLine(); err != nil {
		return err
	}
	for _, sig := range tpl.Signatures {
		if err := appendSignature(a, l, tpl.SignatureFields, sig); err != nil {
			return err
		}
	}
	return nil
}

func appendBody(a *Assembler, l agreement.Layout, p agreement.Paragraph) error {
	align, err := ParseAlignment(p.Align)
	if err != nil {
		return err
	}
	format := ParagraphFormat{Align: align, SpaceAfter: Points(l.BodySpaceAfterPt)}
	if p.Indent {
		format.LeftIndent = Inches(l.ClauseIndentInches)
	}
	return appendMarkup(a, p.Text, format)
}

// appendSignature appends the party label, the optional representation
// line, then a label and a blank line for every field.
func appendSignature(a *Assembler, l agreement.Layout, fields []agreement.SignatureField, sig agreement.Signature) error {
	sl := l.Signature

	party := ParagraphFormat{
		SpaceBefore: Points(sl.PartySpaceBeforePt),
		SpaceAfter:  Points(sig.PartySpaceAfterPt),
	}
	if err := appendMarkup(a, sig.Party, party); err != nil {
		return err
	}

	if sig.Representation != "" {
		if err := appendMarkup(a, sig.Representation, ParagraphFormat{SpaceAfter: Points(sl.LineSpaceAfterPt)}); err != nil {
			return err
		}
	}

	for i, f := range fields {
		if err := appendMarkup(a, f.Label, ParagraphFormat{SpaceAfter: Points(sl.LabelSpaceAfterPt)}); err != nil {
			return err
		}
		after := sl.LineSpaceAfterPt
		if i == len(fields)-1 {
			after = sig.ClosingSpaceAfterPt
		}
		if err := a.AppendParagraph("", ParagraphFormat{SpaceAfter: Points(after)}); err != nil {
			return err
		}
		if err := a.AppendRun(f.Line(), RunFormat{Size: sl.LineSizePt}); err != nil {
			return err
		}
	}
	return nil
}

// appendMarkup opens a paragraph and adds one run per span of uniform weight.
func appendMarkup(a *Assembler, text string, format ParagraphFormat) error {
	if err := a.AppendParagraph("", format); err != nil {
		return err
	}
	for _, span := range inline.Parse(text) {
		if err := a.AppendRun(span.Text, RunFormat{Bold: span.Bold}); err != nil {
			return err
		}
	}
	return nil
}
