package ndagen

import "errors"

// Sentinel errors for library operations.
var (
	// ErrMissingCapability means no usable document writer is available.
	// It is reported before any document mutation, so nothing is written.
	ErrMissingCapability = errors.New("document writer not available")
	ErrWriteDocument     = errors.New("failed to write document")
	ErrReadDocument      = errors.New("failed to read document")
	ErrTemplate          = errors.New("invalid agreement template")

	// Assembler state errors.
	ErrNotInitialized     = errors.New("document not initialized")
	ErrAlreadyInitialized = errors.New("document already initialized")
	ErrSealed             = errors.New("document already serialized")
	ErrNoParagraph        = errors.New("no open paragraph for run")
	ErrDefaultsApplied    = errors.New("document defaults already applied")

	// Block and layout validation errors.
	ErrInvalidHeadingLevel = errors.New("invalid heading level")
	ErrInvalidAlignment    = errors.New("invalid alignment")
	ErrInvalidMargin       = errors.New("invalid margin")
	ErrInvalidSpacing      = errors.New("invalid spacing")
	ErrInvalidFontSize     = errors.New("invalid font size")
	ErrEmptyFontFamily     = errors.New("font family cannot be empty")
	ErrUnknownBlock        = errors.New("unknown block type")
)
