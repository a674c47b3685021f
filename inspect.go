package ndagen

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/cultivatedynamics/go-ndagen/internal/agreement"
	"github.com/cultivatedynamics/go-ndagen/internal/docx"
	"github.com/cultivatedynamics/go-ndagen/internal/inline"
)

// Summary is the structure read back from a generated document.
type Summary struct {
	Titles          []string          `json:"titles"`
	SectionHeadings []string          `json:"sectionHeadings"`
	Signatures      []SignatureBlock  `json:"signatures"`
	Margins         Margins           `json:"-"`
	MarginInches    [4]float64        `json:"marginInches"` // top, right, bottom, left
	FontFamily      string            `json:"fontFamily"`
	FontSize        float64           `json:"fontSize"`
	HeadingFonts    map[string]string `json:"headingFonts"` // style id -> family
	Creator         string            `json:"creator"`
	Created         time.Time         `json:"created"`
	Text            string            `json:"-"`
}

// SignatureBlock is one party's signature area: the bold party label and
// the non-empty paragraphs that follow it.
type SignatureBlock struct {
	Party     string   `json:"party"`
	PartyBold bool     `json:"partyBold"`
	Lines     []string `json:"lines"`
}

// Inspect reads the document at path and summarizes its structure.
func Inspect(path string) (*Summary, error) {
	pkg, err := docx.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadDocument, path, err)
	}
	return summarize(pkg), nil
}

func summarize(pkg *docx.Package) *Summary {
	s := &Summary{HeadingFonts: make(map[string]string)}

	m := pkg.Section.Margins
	s.Margins = Margins{Top: Length(m.Top), Right: Length(m.Right), Bottom: Length(m.Bottom), Left: Length(m.Left)}
	s.MarginInches = [4]float64{s.Margins.Top.Inches(), s.Margins.Right.Inches(), s.Margins.Bottom.Inches(), s.Margins.Left.Inches()}

	family, hp := pkg.ResolvedFont(docx.StyleNormal)
	s.FontFamily = family
	s.FontSize = float64(hp) / 2

	for _, st := range pkg.Styles {
		if level, ok := pkg.HeadingLevel(st.ID); ok && level <= MaxHeadingLevel {
			s.HeadingFonts[st.ID], _ = pkg.ResolvedFont(st.ID)
		}
	}

	var current *SignatureBlock
	for _, para := range pkg.Paragraphs {
		text := para.Text()
		if level, ok := pkg.HeadingLevel(para.StyleID); ok && para.StyleID != "" {
			switch level {
			case 0:
				s.Titles = append(s.Titles, text)
			case 2:
				s.SectionHeadings = append(s.SectionHeadings, text)
			}
			current = nil
			continue
		}
		if text == "" {
			continue
		}
		if allBold(para) && len(s.SectionHeadings) > 0 {
			s.Signatures = append(s.Signatures, SignatureBlock{Party: text, PartyBold: true})
			current = &s.Signatures[len(s.Signatures)-1]
			continue
		}
		if current != nil {
			current.Lines = append(current.Lines, text)
		}
	}

	s.Creator = pkg.Core.Creator
	s.Created = pkg.Core.Created
	s.Text = pkg.Text()
	return s
}

func allBold(p docx.Paragraph) bool {
	if len(p.Runs) == 0 {
		return false
	}
	for _, r := range p.Runs {
		if !r.Bold && strings.TrimSpace(r.Text) != "" {
			return false
		}
	}
	return true
}

// Verify inspects path and lists every way it departs from the agreement
// template selected by opts. An empty list means the document is complete.
func Verify(path string, opts ...Option) (*Summary, []string, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	tpl, err := agreement.Load(cfg.loader, cfg.templateName)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrTemplate, cfg.templateName, err)
	}

	s, err := Inspect(path)
	if err != nil {
		return nil, nil, err
	}
	return s, s.problems(tpl), nil
}

func (s *Summary) problems(tpl *agreement.Template) []string {
	var out []string
	addf := func(format string, args ...any) {
		out = append(out, fmt.Sprintf(format, args...))
	}

	if len(s.Titles) != 1 {
		addf("want exactly 1 title, found %d", len(s.Titles))
	} else if s.Titles[0] != tpl.Title {
		addf("title is %q, want %q", s.Titles[0], tpl.Title)
	}

	if len(s.SectionHeadings) != len(tpl.Sections) {
		addf("want %d section headings, found %d", len(tpl.Sections), len(s.SectionHeadings))
	} else {
		for i, sec := range tpl.Sections {
			if s.SectionHeadings[i] != sec.Heading {
				addf("section %d is %q, want %q", i+1, s.SectionHeadings[i], sec.Heading)
			}
		}
	}

	if len(s.Signatures) != len(tpl.Signatures) {
		addf("want %d signature blocks, found %d", len(tpl.Signatures), len(s.Signatures))
	} else {
		for i, sig := range tpl.Signatures {
			got := s.Signatures[i]
			if want := inline.Plain(sig.Party); got.Party != want || !got.PartyBold {
				addf("signature block %d: party label %q (bold=%t), want bold %q", i+1, got.Party, got.PartyBold, want)
			}
			if want := expectedLines(tpl.SignatureFields, sig); !slices.Equal(got.Lines, want) {
				addf("signature block %d: lines %q, want %q", i+1, got.Lines, want)
			}
		}
	}

	margin := Inches(tpl.Layout.MarginInches)
	if s.Margins != UniformMargins(margin) {
		addf("margins are %v inches, want %.2f on every side", s.MarginInches, margin.Inches())
	}

	if s.FontFamily != tpl.Layout.FontFamily || s.FontSize != tpl.Layout.FontSizePt {
		addf("default font is %s %.1fpt, want %s %.1fpt", s.FontFamily, s.FontSize, tpl.Layout.FontFamily, tpl.Layout.FontSizePt)
	}
	for _, id := range slices.Sorted(maps.Keys(s.HeadingFonts)) {
		if family := s.HeadingFonts[id]; family != tpl.Layout.FontFamily {
			addf("heading style %s uses %q, want %q", id, family, tpl.Layout.FontFamily)
		}
	}
	return out
}

func expectedLines(fields []agreement.SignatureField, sig agreement.Signature) []string {
	var lines []string
	if sig.Representation != "" {
		lines = append(lines, inline.Plain(sig.Representation))
	}
	for _, f := range fields {
		lines = append(lines, inline.Plain(f.Label), f.Line())
	}
	return lines
}
