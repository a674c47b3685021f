// Package ndagen assembles the Cultivate Dynamics mutual non-disclosure
// agreement for RiskLo and writes it as a .docx word-processing file.
//
// # Quick Start
//
// Generate the agreement in the current directory:
//
//	res, err := ndagen.Generate("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Document created successfully:", res.Path)
//
// # Assembly
//
// Generate drives an Assembler, which can also be used directly. The
// lifecycle is linear:
//
//  1. NewAssembler checks the document writer capability
//  2. Initialize creates the document and applies page margins
//  3. Append, AppendHeading, AppendParagraph, AppendRun and AppendBlankLine
//     add blocks in order
//  4. ApplyDocumentDefaults sets the Normal and heading style fonts
//  5. Serialize writes the file atomically and seals the assembler
//
// Styles are referenced by name, so the defaults render the same whether
// they are applied before or after content.
//
// # Configuration
//
// Use functional options to customize the assembler:
//
//	a, err := ndagen.NewAssembler(
//	    ndagen.WithLogger(logger),
//	    ndagen.WithClock(func() time.Time { return fixed }),
//	    ndagen.WithPage(&ndagen.PageSettings{...}),
//	)
//
// # Verification
//
// Inspect reads a generated file back into a Summary, and Verify compares
// that summary with the agreement template:
//
//	summary, problems, err := ndagen.Verify("CultivateDynamics_RiskLo_NDA.docx")
//
// # Errors
//
// ErrMissingCapability is returned before any mutation when the writer is
// unusable. Failures while writing wrap ErrWriteDocument together with the
// underlying filesystem error, so errors.Is(err, fs.ErrPermission) works.
package ndagen
