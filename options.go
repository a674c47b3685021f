package ndagen

import (
	"time"

	"go.uber.org/zap"

	"github.com/cultivatedynamics/go-ndagen/internal/assets"
)

// Option configures an Assembler.
type Option func(*assemblerConfig)

// assemblerConfig holds internal configuration for Assembler.
type assemblerConfig struct {
	writer DocumentWriter
	logger *zap.Logger
	now    func() time.Time
	page   *PageSettings
	meta   Metadata

	pageSet      bool // page came from WithPage
	loader       TemplateLoader
	templateName string
}

func defaultConfig() assemblerConfig {
	return assemblerConfig{
		writer: NewDOCXWriter(),
		logger: zap.NewNop(),
		now:    time.Now,
		page:   DefaultPageSettings(),

		loader:       assets.NewEmbeddedLoader(),
		templateName: assets.DefaultTemplateName,
	}
}

// WithWriter sets the document writer. A nil writer makes NewAssembler
// fail with ErrMissingCapability.
func WithWriter(w DocumentWriter) Option {
	return func(c *assemblerConfig) {
		c.writer = w
	}
}

// WithLogger sets the logger for debug output. Nil keeps the no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *assemblerConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock sets the time source for package timestamps.
// Panics if now is nil (programmer error).
func WithClock(now func() time.Time) Option {
	if now == nil {
		panic("ndagen: WithClock requires a non-nil clock")
	}
	return func(c *assemblerConfig) {
		c.now = now
	}
}

// WithPage overrides page geometry. Settings are validated by Initialize.
func WithPage(p *PageSettings) Option {
	return func(c *assemblerConfig) {
		if p != nil {
			page := *p
			c.page = &page
			c.pageSet = true
		}
	}
}

// WithMetadata sets the title, subject and creator stored in the package.
func WithMetadata(m Metadata) Option {
	return func(c *assemblerConfig) {
		c.meta = m
	}
}

// TemplateLoader loads agreement templates by name.
// Templates are YAML documents; see the embedded mutual-nda template.
type TemplateLoader interface {
	LoadTemplate(name string) ([]byte, error)
}

// WithTemplateLoader replaces the embedded template source used by Generate.
func WithTemplateLoader(l TemplateLoader) Option {
	return func(c *assemblerConfig) {
		if l != nil {
			c.loader = l
		}
	}
}

// WithTemplate selects the template Generate renders.
func WithTemplate(name string) Option {
	return func(c *assemblerConfig) {
		if name != "" {
			c.templateName = name
		}
	}
}
