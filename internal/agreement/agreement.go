// Package agreement holds the typed form of an embedded agreement template:
// its sections and clauses, the signature blocks, and the layout measures
// the assembler applies to them.
package agreement

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cultivatedynamics/go-ndagen/internal/assets"
	"github.com/cultivatedynamics/go-ndagen/internal/yamlutil"
)

// Sentinel errors for template operations.
var (
	ErrTemplateParse   = errors.New("failed to parse template")
	ErrMissingField    = errors.New("required field is empty")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidLayout   = errors.New("invalid layout value")
	ErrInvalidAlign    = errors.New("invalid paragraph alignment")
	ErrInvalidLineSize = errors.New("invalid signature line length")
)

// Field length limits.
const (
	MaxTitleLength     = 200
	MaxHeadingLength   = 200
	MaxParagraphLength = 4000
	MaxLabelLength     = 100
	MaxLineLength      = 120 // underscores in one signature line
)

// Alignment names accepted in templates. Empty means the style default.
const (
	AlignLeft    = "left"
	AlignCenter  = "center"
	AlignRight   = "right"
	AlignJustify = "justify"
)

// Template is one agreement: front matter, numbered sections and the
// signature area.
type Template struct {
	Title           string           `yaml:"title"`
	Creator         string           `yaml:"creator"`
	Subject         string           `yaml:"subject"`
	Layout          Layout           `yaml:"layout"`
	Preamble        []Paragraph      `yaml:"preamble"`
	Sections        []Section        `yaml:"sections"`
	SignatureFields []SignatureField `yaml:"signatureFields"`
	Signatures      []Signature      `yaml:"signatures"`
}

// Layout carries the page and spacing measures, in inches and points.
type Layout struct {
	MarginInches       float64         `yaml:"marginInches"`
	FontFamily         string          `yaml:"fontFamily"`
	FontSizePt         float64         `yaml:"fontSizePt"`
	TitleSizePt        float64         `yaml:"titleSizePt"`
	BodySpaceAfterPt   float64         `yaml:"bodySpaceAfterPt"`
	ClauseIndentInches float64         `yaml:"clauseIndentInches"`
	Signature          SignatureLayout `yaml:"signature"`
}

// SignatureLayout holds spacing shared by every signature block.
type SignatureLayout struct {
	PartySpaceBeforePt float64 `yaml:"partySpaceBeforePt"`
	LabelSpaceAfterPt  float64 `yaml:"labelSpaceAfterPt"`
	LineSpaceAfterPt   float64 `yaml:"lineSpaceAfterPt"`
	LineSizePt         float64 `yaml:"lineSizePt"`
}

// Section is a numbered clause heading followed by its paragraphs.
type Section struct {
	Heading    string      `yaml:"heading"`
	Paragraphs []Paragraph `yaml:"paragraphs"`
}

// Paragraph is body text. Text may carry **bold** markup.
type Paragraph struct {
	Text   string `yaml:"text"`
	Align  string `yaml:"align"`  // "", left, center, right, justify
	Indent bool   `yaml:"indent"` // nest under the previous paragraph
}

// SignatureField is a label followed by a blank underscore line.
type SignatureField struct {
	Label      string `yaml:"label"`
	LineLength int    `yaml:"lineLength"`
}

// Line returns the blank line drawn under the label.
func (f SignatureField) Line() string {
	return strings.Repeat("_", f.LineLength)
}

// Signature is one party's block. Every block repeats SignatureFields.
type Signature struct {
	Party               string  `yaml:"party"`
	PartySpaceAfterPt   float64 `yaml:"partySpaceAfterPt"`
	Representation      string  `yaml:"representation"` // optional
	ClosingSpaceAfterPt float64 `yaml:"closingSpaceAfterPt"`
}

// Parse decodes and validates a template.
func Parse(data []byte) (*Template, error) {
	var tpl Template
	if err := yamlutil.DecodeStrict(data, &tpl); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateParse, yamlutil.FormatError(err))
	}
	if err := tpl.Validate(); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// Load reads the named template through loader and parses it.
func Load(loader assets.TemplateLoader, name string) (*Template, error) {
	data, err := loader.LoadTemplate(name)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Validate checks required fields, lengths and layout ranges.
func (t *Template) Validate() error {
	if err := requireField("title", t.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("creator", t.Creator, MaxLabelLength); err != nil {
		return err
	}
	if err := validateFieldLength("subject", t.Subject, MaxTitleLength); err != nil {
		return err
	}
	if err := t.Layout.validate(); err != nil {
		return err
	}

	for i, p := range t.Preamble {
		if err := p.validate(fmt.Sprintf("preamble[%d]", i)); err != nil {
			return err
		}
	}
	if len(t.Sections) == 0 {
		return fmt.Errorf("%w: sections", ErrMissingField)
	}
	for i, s := range t.Sections {
		field := fmt.Sprintf("sections[%d]", i)
		if err := requireField(field+".heading", s.Heading, MaxHeadingLength); err != nil {
			return err
		}
		if len(s.Paragraphs) == 0 {
			return fmt.Errorf("%w: %s.paragraphs", ErrMissingField, field)
		}
		for j, p := range s.Paragraphs {
			if err := p.validate(fmt.Sprintf("%s.paragraphs[%d]", field, j)); err != nil {
				return err
			}
		}
	}

	if len(t.SignatureFields) == 0 {
		return fmt.Errorf("%w: signatureFields", ErrMissingField)
	}
	for i, f := range t.SignatureFields {
		field := fmt.Sprintf("signatureFields[%d]", i)
		if err := requireField(field+".label", f.Label, MaxLabelLength); err != nil {
			return err
		}
		if f.LineLength < 1 || f.LineLength > MaxLineLength {
			return fmt.Errorf("%w: %s.lineLength must be between 1 and %d, got %d",
				ErrInvalidLineSize, field, MaxLineLength, f.LineLength)
		}
	}

	if len(t.Signatures) == 0 {
		return fmt.Errorf("%w: signatures", ErrMissingField)
	}
	for i, s := range t.Signatures {
		field := fmt.Sprintf("signatures[%d]", i)
		if err := requireField(field+".party", s.Party, MaxLabelLength); err != nil {
			return err
		}
		if err := validateFieldLength(field+".representation", s.Representation, MaxLabelLength); err != nil {
			return err
		}
		if s.PartySpaceAfterPt < 0 || s.ClosingSpaceAfterPt < 0 {
			return fmt.Errorf("%w: %s spacing must not be negative", ErrInvalidLayout, field)
		}
	}

	return nil
}

// Paragraphs returns the number of body paragraphs across all sections.
func (t *Template) Paragraphs() int {
	n := len(t.Preamble)
	for _, s := range t.Sections {
		n += len(s.Paragraphs)
	}
	return n
}

func (l Layout) validate() error {
	if l.MarginInches <= 0 || l.MarginInches > 3 {
		return fmt.Errorf("%w: layout.marginInches must be in (0, 3], got %.2f", ErrInvalidLayout, l.MarginInches)
	}
	if err := requireField("layout.fontFamily", l.FontFamily, MaxLabelLength); err != nil {
		return err
	}
	for name, pt := range map[string]float64{
		"layout.fontSizePt":  l.FontSizePt,
		"layout.titleSizePt": l.TitleSizePt,
	} {
		if pt < 1 || pt > 1638 {
			return fmt.Errorf("%w: %s must be between 1 and 1638, got %.1f", ErrInvalidLayout, name, pt)
		}
	}
	for name, v := range map[string]float64{
		"layout.bodySpaceAfterPt":             l.BodySpaceAfterPt,
		"layout.clauseIndentInches":           l.ClauseIndentInches,
		"layout.signature.partySpaceBeforePt": l.Signature.PartySpaceBeforePt,
		"layout.signature.labelSpaceAfterPt":  l.Signature.LabelSpaceAfterPt,
		"layout.signature.lineSpaceAfterPt":   l.Signature.LineSpaceAfterPt,
	} {
		if v < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %.2f", ErrInvalidLayout, name, v)
		}
	}
	if l.Signature.LineSizePt <= 0 {
		return fmt.Errorf("%w: layout.signature.lineSizePt must be positive", ErrInvalidLayout)
	}
	return nil
}

func (p Paragraph) validate(field string) error {
	if err := requireField(field+".text", p.Text, MaxParagraphLength); err != nil {
		return err
	}
	switch p.Align {
	case "", AlignLeft, AlignCenter, AlignRight, AlignJustify:
		return nil
	default:
		return fmt.Errorf("%w: %s.align %q (must be left, center, right, or justify)", ErrInvalidAlign, field, p.Align)
	}
}

func requireField(fieldName, value string, maxLength int) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s", ErrMissingField, fieldName)
	}
	return validateFieldLength(fieldName, value, maxLength)
}

func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}
