package ndagen

import (
	"fmt"
	"math"
	"strings"
)

// Alignment is the horizontal justification of a paragraph or heading.
// The zero value keeps whatever the paragraph style says.
type Alignment int

const (
	AlignDefault Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
	AlignJustify
)

var alignmentNames = [...]string{"default", "left", "center", "right", "justify"}

func (a Alignment) String() string {
	if a < 0 || int(a) >= len(alignmentNames) {
		return fmt.Sprintf("Alignment(%d)", int(a))
	}
	return alignmentNames[a]
}

func (a Alignment) valid() bool {
	return a >= AlignDefault && a <= AlignJustify
}

// ParseAlignment maps a name to an Alignment (case-insensitive).
// The empty string yields AlignDefault; "both" is accepted for justify.
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return AlignDefault, nil
	case "left":
		return AlignLeft, nil
	case "center", "centre":
		return AlignCenter, nil
	case "right":
		return AlignRight, nil
	case "justify", "both":
		return AlignJustify, nil
	}
	return AlignDefault, fmt.Errorf("%w: %q (must be left, center, right, or justify)", ErrInvalidAlignment, s)
}

// Length is a distance in twips (1/20 point).
type Length int

// Length units.
const (
	Twip  Length = 1
	Point Length = 20
	Inch  Length = 1440
)

// Inches converts inches to a Length, rounding to the nearest twip.
func Inches(v float64) Length {
	return Length(math.Round(v * float64(Inch)))
}

// Points converts points to a Length, rounding to the nearest twip.
func Points(v float64) Length {
	return Length(math.Round(v * float64(Point)))
}

// Inches reports l in inches.
func (l Length) Inches() float64 { return float64(l) / float64(Inch) }

// Points reports l in points.
func (l Length) Points() float64 { return float64(l) / float64(Point) }

// Font size bounds in points. The upper bound is the largest size the
// document format can store.
const (
	MinFontSize     = 1.0
	MaxFontSize     = 1638.0
	DefaultFontSize = 12.0
)

// Page bounds.
const (
	MaxMargin     = 3 * Inch
	DefaultMargin = Inch
	LetterWidth   = 12240 * Twip
	LetterHeight  = 15840 * Twip
)

// Margins holds the four page margins.
type Margins struct {
	Top, Right, Bottom, Left Length
}

// UniformMargins returns margins equal to l on every side.
func UniformMargins(l Length) Margins {
	return Margins{Top: l, Right: l, Bottom: l, Left: l}
}

// PageSettings configures page geometry.
type PageSettings struct {
	Width, Height Length
	Margins       Margins
}

// DefaultPageSettings returns a US Letter page with 1 inch margins.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Width:   LetterWidth,
		Height:  LetterHeight,
		Margins: UniformMargins(DefaultMargin),
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: page size %dx%d twips", ErrInvalidMargin, p.Width, p.Height)
	}
	m := p.Margins
	for _, side := range []Length{m.Top, m.Right, m.Bottom, m.Left} {
		if side < 0 || side > MaxMargin {
			return fmt.Errorf("%w: %.2fin (must be between 0 and %.2fin)", ErrInvalidMargin, side.Inches(), MaxMargin.Inches())
		}
	}
	if m.Left+m.Right >= p.Width || m.Top+m.Bottom >= p.Height {
		return fmt.Errorf("%w: margins leave no printable area", ErrInvalidMargin)
	}
	return nil
}

// StyleDefaults is the document-wide font applied to the Normal style and
// to every heading style.
type StyleDefaults struct {
	FontFamily string
	Size       float64 // points
}

// Validate checks that the defaults are usable.
func (s StyleDefaults) Validate() error {
	if strings.TrimSpace(s.FontFamily) == "" {
		return ErrEmptyFontFamily
	}
	return validateFontSize(s.Size)
}

func validateFontSize(pt float64) error {
	if pt < MinFontSize || pt > MaxFontSize {
		return fmt.Errorf("%w: %.1fpt (must be between %.0f and %.0f)", ErrInvalidFontSize, pt, MinFontSize, MaxFontSize)
	}
	return nil
}

// Metadata is stored in the package properties.
type Metadata struct {
	Title   string
	Subject string
	Creator string
}
