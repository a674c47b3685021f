package ndagen

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/cultivatedynamics/go-ndagen/internal/fileutil"
)

// DocumentWriter encodes a Document into a word-processing file format.
type DocumentWriter interface {
	// Format names the output format, e.g. "docx".
	Format() string
	// Check reports whether the writer can produce documents in this build.
	Check() error
	// Write encodes doc to w.
	Write(w io.Writer, doc *Document) error
}

// outputPerm is the mode of written documents.
const outputPerm = 0o644

// Assembler builds a Document block by block and serializes it once.
//
// The lifecycle is linear: NewAssembler, Initialize, appends,
// ApplyDocumentDefaults, Serialize. After a successful Serialize every
// mutating call returns ErrSealed.
type Assembler struct {
	cfg    assemblerConfig
	log    *zap.Logger
	doc    *Document
	open   bool // last block is a paragraph accepting runs
	sealed bool
}

// NewAssembler creates an Assembler and verifies the writer capability
// before anything else happens. Returns ErrMissingCapability if the writer
// is absent or its self-check fails.
func NewAssembler(opts ...Option) (*Assembler, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.writer == nil {
		return nil, fmt.Errorf("%w: no writer configured", ErrMissingCapability)
	}
	if err := cfg.writer.Check(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMissingCapability, cfg.writer.Format(), err)
	}

	return &Assembler{cfg: cfg, log: cfg.logger.Named("assembler")}, nil
}

// Initialize creates the empty document and applies page geometry.
func (a *Assembler) Initialize() error {
	if a.sealed {
		return ErrSealed
	}
	if a.doc != nil {
		return ErrAlreadyInitialized
	}
	if err := a.cfg.page.Validate(); err != nil {
		return err
	}

	a.doc = &Document{Page: *a.cfg.page, Meta: a.cfg.meta}
	m := a.doc.Page.Margins
	a.log.Debug("document initialized",
		zap.Float64("margin_top_in", m.Top.Inches()),
		zap.Float64("margin_right_in", m.Right.Inches()),
		zap.Float64("margin_bottom_in", m.Bottom.Inches()),
		zap.Float64("margin_left_in", m.Left.Inches()),
	)
	return nil
}

// Append validates b and adds it to the end of the document.
// Appending a Paragraph opens it for AppendRun.
func (a *Assembler) Append(b Block) error {
	if err := a.mutable(); err != nil {
		return err
	}
	if b == nil {
		return fmt.Errorf("%w: nil", ErrUnknownBlock)
	}
	switch b.(type) {
	case Heading, Paragraph, BlankLine:
	default:
		return fmt.Errorf("%w: %T", ErrUnknownBlock, b)
	}
	if err := b.validate(); err != nil {
		return err
	}

	a.doc.blocks = append(a.doc.blocks, cloneBlock(b))
	_, a.open = b.(Paragraph)
	a.log.Debug("block appended", zap.String("kind", b.Kind()), zap.Int("index", len(a.doc.blocks)-1))
	return nil
}

// AppendHeading adds a heading. Level 0 is the document title; section
// headings use level 1 and below.
func (a *Assembler) AppendHeading(text string, level int) error {
	return a.Append(Heading{Text: text, Level: level})
}

// AppendParagraph adds a body paragraph. A non-empty text becomes its first
// run; further runs can follow with AppendRun.
func (a *Assembler) AppendParagraph(text string, format ParagraphFormat) error {
	p := Paragraph{Format: format}
	if text != "" {
		p.Runs = []Run{{Text: text}}
	}
	return a.Append(p)
}

// AppendRun adds a run to the paragraph appended last.
// Returns ErrNoParagraph if the last block is not a paragraph.
func (a *Assembler) AppendRun(text string, format RunFormat) error {
	if err := a.mutable(); err != nil {
		return err
	}
	if !a.open {
		return ErrNoParagraph
	}
	if err := format.validate(); err != nil {
		return err
	}

	last := len(a.doc.blocks) - 1
	p := a.doc.blocks[last].(Paragraph)
	p.Runs = append(p.Runs, Run{Text: text, Format: format})
	a.doc.blocks[last] = p
	a.log.Debug("run appended", zap.Int("index", last), zap.Int("runs", len(p.Runs)), zap.Bool("bold", format.Bold))
	return nil
}

// AppendBlankLine adds an empty spacing paragraph.
func (a *Assembler) AppendBlankLine() error {
	return a.Append(BlankLine{})
}

// ApplyDocumentDefaults sets the font used by the Normal style and every
// heading style. Styles are resolved by name when the document is rendered,
// so calling this before or after appending content gives the same result.
// It may be called once.
func (a *Assembler) ApplyDocumentDefaults(family string, size float64) error {
	if err := a.mutable(); err != nil {
		return err
	}
	if a.doc.Defaults != nil {
		return ErrDefaultsApplied
	}
	defaults := StyleDefaults{FontFamily: family, Size: size}
	if err := defaults.Validate(); err != nil {
		return err
	}

	a.doc.Defaults = &defaults
	a.log.Debug("document defaults applied", zap.String("font", family), zap.Float64("size_pt", size))
	return nil
}

// Serialize writes the document to path, replacing any existing file.
// The file is staged next to path and renamed into place, so a failure
// never leaves a partial document. Returns the number of bytes written.
func (a *Assembler) Serialize(path string) (int64, error) {
	if err := a.mutable(); err != nil {
		return 0, err
	}

	a.doc.Created = a.cfg.now().UTC()
	doc := a.doc.clone()
	n, err := fileutil.WriteFileAtomic(path, outputPerm, func(w io.Writer) error {
		return a.cfg.writer.Write(w, doc)
	})
	if err != nil {
		a.log.Debug("serialize failed", zap.String("path", path), zap.Error(err))
		return 0, fmt.Errorf("%w: %s: %w", ErrWriteDocument, path, err)
	}

	a.sealed = true
	a.open = false
	a.log.Debug("document serialized",
		zap.String("path", path),
		zap.String("format", a.cfg.writer.Format()),
		zap.Int("blocks", a.doc.Len()),
		zap.Int64("bytes", n),
	)
	return n, nil
}

// Document returns a copy of the document assembled so far, or nil before
// Initialize.
func (a *Assembler) Document() *Document {
	if a.doc == nil {
		return nil
	}
	return a.doc.clone()
}

func (a *Assembler) mutable() error {
	switch {
	case a.sealed:
		return ErrSealed
	case a.doc == nil:
		return ErrNotInitialized
	}
	return nil
}
