package docx

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"text/template"
	"time"

	docxlib "github.com/fumiama/go-docx"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var partTemplates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

// Files lists the parts go-docx copies from a Template's FS into every
// package. document.xml and its relationships come from the library itself.
var Files = docxlib.DefaultTemplateFilesList

// Template holds the package parts the document writer takes from a
// template: the paragraph style catalog and the core properties. Theme,
// font table, content types and relationships come from the library's
// default template unchanged.
type Template struct {
	Defaults DocDefaults
	Styles   []Style
	Core     CoreProperties
}

// NewTemplate returns a template carrying the base style catalog.
func NewTemplate() *Template {
	return &Template{
		Defaults: DocDefaults{Lang: "en-US"},
		Styles:   BaseStyles(),
	}
}

// BaseStyles returns the paragraph styles every template starts with.
// Sizes and colours follow the stock word-processor template.
func BaseStyles() []Style {
	return []Style{
		{ID: StyleNormal, Name: "Normal", Default: true, OutlineLevel: -1},
		{
			ID: StyleTitle, Name: "Title", BasedOn: StyleNormal, Next: StyleNormal,
			SizeHalfPoint: 52, Color: "17365D", SpaceAfter: 300, OutlineLevel: -1,
		},
		{
			ID: StyleHeading1, Name: "heading 1", BasedOn: StyleNormal, Next: StyleNormal,
			SizeHalfPoint: 28, Bold: true, Color: "365F91", KeepNext: true,
			SpaceBefore: 480, OutlineLevel: 0,
		},
		{
			ID: StyleHeading2, Name: "heading 2", BasedOn: StyleNormal, Next: StyleNormal,
			SizeHalfPoint: 26, Bold: true, Color: "4F81BD", KeepNext: true,
			SpaceBefore: 200, OutlineLevel: 1,
		},
	}
}

// Style returns a pointer to the style with the given id, or nil.
func (t *Template) Style(id string) *Style {
	return findStyle(t.Styles, id)
}

// EnsureHeadingStyle returns the style id for level, adding a heading style
// derived from Heading2 when the template does not declare it yet.
func (t *Template) EnsureHeadingStyle(level int) string {
	id := HeadingStyleID(level)
	if t.Style(id) != nil {
		return id
	}
	t.Styles = append(t.Styles, Style{
		ID: id, Name: "heading " + strconv.Itoa(level), BasedOn: StyleNormal, Next: StyleNormal,
		SizeHalfPoint: 24, Bold: true, Color: "4F81BD", KeepNext: true,
		SpaceBefore: 200, OutlineLevel: level - 1,
	})
	return id
}

// EnsureSpacingStyle returns the id of a Normal-based style whose only
// property is the given space after, in twips, adding it on first use.
// go-docx writes w:spacing without an after attribute, so paragraphs
// carry that value through their style.
func (t *Template) EnsureSpacingStyle(after int) string {
	id := "SpaceAfter" + strconv.Itoa(after)
	if t.Style(id) != nil {
		return id
	}
	t.Styles = append(t.Styles, Style{
		ID: id, Name: "Space After " + strconv.Itoa(after), BasedOn: StyleNormal,
		SpaceAfter: after, OutlineLevel: -1,
	})
	return id
}

// FS renders the template parts and returns them layered over the
// library's default template, ready for (*docxlib.Docx).UseTemplate with
// an empty template name and Files.
func (t *Template) FS() (fs.FS, error) {
	base, err := fs.Sub(docxlib.TemplateXMLFS, "xml/default")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderPart, err)
	}

	styles, err := render("styles.xml.tmpl", t)
	if err != nil {
		return nil, err
	}
	core, err := render("core.xml.tmpl", coreView{
		Title:    t.Core.Title,
		Subject:  t.Core.Subject,
		Creator:  t.Core.Creator,
		Created:  w3cdtf(t.Core.Created),
		Modified: w3cdtf(t.Core.Modified),
	})
	if err != nil {
		return nil, err
	}

	return overlayFS{base: base, parts: map[string][]byte{
		partStyles: styles,
		partCore:   core,
	}}, nil
}

// Apply points f at the rendered template parts.
func (t *Template) Apply(f *docxlib.Docx) error {
	fsys, err := t.FS()
	if err != nil {
		return err
	}
	f.UseTemplate("", Files, fsys)
	return nil
}

type coreView struct {
	Title, Subject, Creator string
	Created, Modified       string
}

func w3cdtf(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := partTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrRenderPart, name, err)
	}
	return buf.Bytes(), nil
}

// overlayFS serves rendered parts by name and everything else from base.
type overlayFS struct {
	base  fs.FS
	parts map[string][]byte
}

func (o overlayFS) Open(name string) (fs.File, error) {
	data, ok := o.parts[name]
	if !ok {
		return o.base.Open(name)
	}
	return &partFile{Reader: bytes.NewReader(data), name: path.Base(name)}, nil
}

// partFile is an in-memory fs.File that is its own fs.FileInfo.
// Size comes from the embedded reader.
type partFile struct {
	*bytes.Reader
	name string
}

func (f *partFile) Stat() (fs.FileInfo, error) { return f, nil }
func (f *partFile) Close() error { return nil }
func (f *partFile) Name() string { return f.name }
func (f *partFile) Mode() fs.FileMode { return 0o444 }
func (f *partFile) ModTime() time.Time { return time.Time{} }
func (f *partFile) IsDir() bool { return false }
func (f *partFile) Sys() any { return nil }
