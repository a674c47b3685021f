// Package assets provides the agreement templates compiled into the binary.
//
// Templates live under templates/{name}.yaml and are loaded by name through
// the TemplateLoader interface. EmbeddedLoader is the only production
// implementation; tests substitute their own loaders.
//
// Template names are validated to prevent path traversal, even though the
// embedded filesystem cannot escape its root, so that alternative loaders
// can share the same contract.
package assets
