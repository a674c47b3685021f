package assets

// DefaultTemplateName is the agreement generated when no name is given.
const DefaultTemplateName = "mutual-nda"

// TemplateLoader loads raw agreement templates by name.
type TemplateLoader interface {
	// LoadTemplate returns the YAML source of the named template
	// (without the .yaml extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) ([]byte, error)
}
