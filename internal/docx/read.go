package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// ReadFile opens a .docx file and decodes the supported subset into a Package.
func ReadFile(filename string) (*Package, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotWordprocess, err)
	}
	defer zr.Close()
	return decode(&zr.Reader)
}

// Read decodes a package held in memory or any other io.ReaderAt.
func Read(r io.ReaderAt, size int64) (*Package, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotWordprocess, err)
	}
	return decode(zr)
}

func decode(zr *zip.Reader) (*Package, error) {
	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}
	for _, name := range []string{partContentTypes, partDocument} {
		if files[name] == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingPart, name)
		}
	}

	var doc documentXML
	if err := decodePart(files[partDocument], &doc); err != nil {
		return nil, err
	}

	p := &Package{}
	if doc.Body != nil {
		if doc.Body.SectPr != nil {
			p.Section = parseSection(doc.Body.SectPr)
		}
		p.Paragraphs = make([]Paragraph, 0, len(doc.Body.Paragraphs))
		for _, para := range doc.Body.Paragraphs {
			p.Paragraphs = append(p.Paragraphs, parseParagraph(para))
		}
	}

	// styles.xml and core.xml are optional in the format.
	if f := files[partStyles]; f != nil {
		var styles stylesXML
		if err := decodePart(f, &styles); err != nil {
			return nil, err
		}
		p.Defaults = parseDefaults(styles.DocDefaults)
		for _, def := range styles.Styles {
			if def.Type != "" && def.Type != "paragraph" {
				continue
			}
			p.Styles = append(p.Styles, parseStyle(def))
		}
	}
	if f := files[partCore]; f != nil {
		var core corePropertiesXML
		if err := decodePart(f, &core); err != nil {
			return nil, err
		}
		p.Core = CoreProperties{
			Title:    core.Title,
			Subject:  core.Subject,
			Creator:  core.Creator,
			Created:  parseTime(core.Created),
			Modified: parseTime(core.Modified),
		}
	}

	p.resolveSpacing()
	return p, nil
}

// resolveSpacing fills spacing a paragraph leaves unset from its style
// chain, the same way a word processor lays it out.
func (p *Package) resolveSpacing() {
	for i := range p.Paragraphs {
		para := &p.Paragraphs[i]
		visited := make(map[string]bool)
		for id := para.StyleID; id != "" && !visited[id]; {
			visited[id] = true
			s := p.Style(id)
			if s == nil {
				break
			}
			if para.SpaceBefore == 0 {
				para.SpaceBefore = s.SpaceBefore
			}
			if para.SpaceAfter == 0 {
				para.SpaceAfter = s.SpaceAfter
			}
			id = s.BasedOn
		}
	}
}

func decodePart(f *zip.File, v any) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedPart, f.Name, err)
	}
	defer rc.Close()
	if err := xml.NewDecoder(rc).Decode(v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedPart, f.Name, err)
	}
	return nil
}

func parseSection(s *sectPrXML) Section {
	return Section{
		Width:  atoi(s.PgSz.W),
		Height: atoi(s.PgSz.H),
		Margins: Margins{
			Top:    atoi(s.PgMar.Top),
			Right:  atoi(s.PgMar.Right),
			Bottom: atoi(s.PgMar.Bottom),
			Left:   atoi(s.PgMar.Left),
			Header: atoi(s.PgMar.Header),
			Footer: atoi(s.PgMar.Footer),
			Gutter: atoi(s.PgMar.Gutter),
		},
	}
}

func parseParagraph(p paragraphXML) Paragraph {
	props := p.Properties
	out := Paragraph{
		StyleID:     props.Style.Val,
		Align:       props.Justification.Val,
		SpaceBefore: atoi(props.Spacing.Before),
		SpaceAfter:  atoi(props.Spacing.After),
		IndentLeft:  atoi(props.Indent.Left),
	}
	if out.IndentLeft == 0 {
		out.IndentLeft = atoi(props.Indent.Start)
	}

	runs := p.Runs
	for _, h := range p.Hyperlinks {
		runs = append(runs, h.Runs...)
	}
	for _, r := range runs {
		out.Runs = append(out.Runs, Run{
			Text:          runText(r),
			Bold:          r.Properties.Bold.on(),
			Font:          r.Properties.Font.ASCII,
			EastAsiaFont:  r.Properties.Font.EastAsia,
			SizeHalfPoint: atoi(r.Properties.FontSize.Val),
		})
	}
	return out
}

func runText(r runXML) string {
	var b strings.Builder
	for _, t := range r.Text {
		b.WriteString(t.Value)
	}
	for range r.Tabs {
		b.WriteString("\t")
	}
	for _, br := range r.Breaks {
		if br.Type == "page" {
			b.WriteString("\n\n")
		} else {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func parseDefaults(d docDefaultsXML) DocDefaults {
	return DocDefaults{
		Font:          d.RPr.Font.ASCII,
		SizeHalfPoint: atoi(d.RPr.FontSize.Val),
		Lang:          d.RPr.Lang.Val,
	}
}

func parseStyle(def styleDefXML) Style {
	s := Style{
		ID:            def.StyleID,
		Name:          def.Name.Val,
		BasedOn:       def.BasedOn.Val,
		Next:          def.Next.Val,
		Default:       def.Default == "1" || def.Default == "true",
		Font:          def.RPr.Font.ASCII,
		SizeHalfPoint: atoi(def.RPr.FontSize.Val),
		Bold:          def.RPr.Bold.on(),
		Color:         def.RPr.Color.Val,
		KeepNext:      def.PPr.KeepNext.on(),
		SpaceBefore:   atoi(def.PPr.Spacing.Before),
		SpaceAfter:    atoi(def.PPr.Spacing.After),
		OutlineLevel:  -1,
	}
	if def.PPr.OutlineLvl.Val != "" {
		s.OutlineLevel = atoi(def.PPr.OutlineLvl.Val)
	}
	return s
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}

// atoi returns 0 for empty or malformed values, which the format treats as
// "not specified".
func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// HeadingLevel reports the outline level of a paragraph style: 0 for Title,
// n for "Heading n". Styles outside the catalog fall back to their outline
// level, which is zero-based in the format.
func (p *Package) HeadingLevel(styleID string) (int, bool) {
	id := strings.ToLower(styleID)
	if id == "title" {
		return 0, true
	}
	if n, ok := strings.CutPrefix(id, "heading"); ok {
		if level, err := strconv.Atoi(n); err == nil && level >= 1 && level <= 9 {
			return level, true
		}
	}
	if s := p.Style(styleID); s != nil && s.OutlineLevel >= 0 {
		return s.OutlineLevel + 1, true
	}
	return 0, false
}

// ResolvedFont walks the basedOn chain of styleID and returns the first
// font family and size found, falling back to the document defaults.
func (p *Package) ResolvedFont(styleID string) (family string, halfPoints int) {
	visited := make(map[string]bool)
	for id := styleID; id != "" && !visited[id]; {
		visited[id] = true
		s := p.Style(id)
		if s == nil {
			break
		}
		if family == "" {
			family = s.Font
		}
		if halfPoints == 0 {
			halfPoints = s.SizeHalfPoint
		}
		id = s.BasedOn
	}
	if family == "" {
		family = p.Defaults.Font
	}
	if halfPoints == 0 {
		halfPoints = p.Defaults.SizeHalfPoint
	}
	return family, halfPoints
}

// Text returns the paragraph text, one paragraph per line.
func (p *Package) Text() string {
	lines := make([]string, 0, len(p.Paragraphs))
	for _, para := range p.Paragraphs {
		lines = append(lines, para.Text())
	}
	return strings.Join(lines, "\n")
}

// Text concatenates the paragraph's runs.
func (para Paragraph) Text() string {
	var b strings.Builder
	for _, r := range para.Runs {
		b.WriteString(r.Text)
	}
	return b.String()
}
