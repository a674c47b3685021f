package docx

import (
	"errors"
	"strconv"
	"time"
)

// Sentinel errors for package operations.
var (
	ErrMissingPart    = errors.New("missing required part")
	ErrMalformedPart  = errors.New("malformed part")
	ErrNotWordprocess = errors.New("not a WordprocessingML package")
	ErrRenderPart     = errors.New("rendering template part")
)

// Alignment values for w:jc.
const (
	AlignLeft    = "left"
	AlignCenter  = "center"
	AlignRight   = "right"
	AlignJustify = "both"
)

// Built-in style identifiers.
const (
	StyleNormal   = "Normal"
	StyleTitle    = "Title"
	StyleHeading1 = "Heading1"
	StyleHeading2 = "Heading2"
)

// TwipsPerInch is the number of twips in one inch.
const TwipsPerInch = 1440

// Part names inside the package.
const (
	partContentTypes = "[Content_Types].xml"
	partCore         = "docProps/core.xml"
	partDocument     = "word/document.xml"
	partStyles       = "word/styles.xml"
)

// Margins holds page margins in twips.
type Margins struct {
	Top, Right, Bottom, Left int
	Header, Footer, Gutter   int
}

// Section holds page geometry.
type Section struct {
	Width, Height int
	Margins       Margins
}

// Run is a span of text sharing character formatting.
// Zero values mean "inherit from the paragraph style".
type Run struct {
	Text          string
	Bold          bool
	Font          string
	EastAsiaFont  string
	SizeHalfPoint int
}

// Paragraph is a body paragraph as read back from a package. Spacing is the
// effective value: direct formatting first, then the paragraph style chain.
type Paragraph struct {
	StyleID     string
	Align       string
	SpaceBefore int
	SpaceAfter  int
	IndentLeft  int
	Runs        []Run
}

// Style is a named paragraph style.
type Style struct {
	ID            string
	Name          string
	BasedOn       string
	Next          string
	Default       bool
	Font          string
	SizeHalfPoint int
	Bold          bool
	Color         string
	KeepNext      bool
	SpaceBefore   int
	SpaceAfter    int
	OutlineLevel  int // -1 for body styles
}

// DocDefaults holds document-wide run defaults (w:docDefaults).
type DocDefaults struct {
	Font          string
	SizeHalfPoint int
	Lang          string
}

// CoreProperties is the Dublin Core metadata stored in docProps/core.xml.
type CoreProperties struct {
	Title    string
	Subject  string
	Creator  string
	Created  time.Time
	Modified time.Time
}

// Package is a WordprocessingML document decoded by Read.
type Package struct {
	Section    Section
	Defaults   DocDefaults
	Styles     []Style
	Paragraphs []Paragraph
	Core       CoreProperties
}

// HeadingStyleID returns the style id for an outline level: Title for 0,
// HeadingN for 1 through 9.
func HeadingStyleID(level int) string {
	if level == 0 {
		return StyleTitle
	}
	return "Heading" + strconv.Itoa(level)
}

// Style returns a pointer to the style with the given id, or nil.
func (p *Package) Style(id string) *Style {
	return findStyle(p.Styles, id)
}

func findStyle(styles []Style, id string) *Style {
	for i := range styles {
		if styles[i].ID == id {
			return &styles[i]
		}
	}
	return nil
}
