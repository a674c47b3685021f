package ndagen

import (
	"fmt"
	"strings"
)

// Block is one content unit of a Document: a Heading, a Paragraph or a
// BlankLine. Blocks are values; the assembler stores copies.
type Block interface {
	// Kind names the block type for logs and summaries.
	Kind() string
	validate() error
}

// RunFormat overrides character formatting for a run. Zero values inherit
// from the paragraph style.
type RunFormat struct {
	Bold bool
	Font string  // applied to every script slot
	Size float64 // points
}

func (f RunFormat) validate() error {
	if f.Size != 0 {
		return validateFontSize(f.Size)
	}
	return nil
}

// ParagraphFormat sets paragraph-level layout. Zero lengths inherit.
type ParagraphFormat struct {
	Align       Alignment
	SpaceBefore Length
	SpaceAfter  Length
	LeftIndent  Length
}

func (f ParagraphFormat) validate() error {
	if !f.Align.valid() {
		return fmt.Errorf("%w: %v", ErrInvalidAlignment, f.Align)
	}
	if f.SpaceBefore < 0 || f.SpaceAfter < 0 || f.LeftIndent < 0 {
		return fmt.Errorf("%w: before=%d after=%d indent=%d twips",
			ErrInvalidSpacing, f.SpaceBefore, f.SpaceAfter, f.LeftIndent)
	}
	return nil
}

// Run is the smallest styled text unit inside a paragraph.
type Run struct {
	Text   string
	Format RunFormat
}

// Heading is a title (Level 0) or section heading (Level 1 through 9).
type Heading struct {
	Text   string
	Level  int
	Align  Alignment
	Format RunFormat
}

// Maximum heading level.
const MaxHeadingLevel = 9

func (Heading) Kind() string { return "heading" }

func (h Heading) validate() error {
	if h.Level < 0 || h.Level > MaxHeadingLevel {
		return fmt.Errorf("%w: %d (must be between 0 and %d)", ErrInvalidHeadingLevel, h.Level, MaxHeadingLevel)
	}
	if !h.Align.valid() {
		return fmt.Errorf("%w: %v", ErrInvalidAlignment, h.Align)
	}
	return h.Format.validate()
}

// Paragraph is a body paragraph made of runs.
type Paragraph struct {
	Format ParagraphFormat
	Runs   []Run
}

func (Paragraph) Kind() string { return "paragraph" }

func (p Paragraph) validate() error {
	if err := p.Format.validate(); err != nil {
		return err
	}
	for _, r := range p.Runs {
		if err := r.Format.validate(); err != nil {
			return err
		}
	}
	return nil
}

// Text concatenates the paragraph's runs.
func (p Paragraph) Text() string {
	var b strings.Builder
	for _, r := range p.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}

func (p Paragraph) clone() Paragraph {
	p.Runs = append([]Run(nil), p.Runs...)
	return p
}

// BlankLine is an empty paragraph used for vertical spacing.
type BlankLine struct{}

func (BlankLine) Kind() string { return "blank" }

func (BlankLine) validate() error { return nil }

func cloneBlock(b Block) Block {
	if p, ok := b.(Paragraph); ok {
		return p.clone()
	}
	return b
}
