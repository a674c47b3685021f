// Package docx reads Office Open XML WordprocessingML packages back and
// supplies the template parts the document writer hands to go-docx.
//
// The reader covers the subset a generated agreement uses: page margins,
// paragraph styles and their basedOn chain, paragraph alignment, spacing
// and left indent, run-level bold/font/size, and the core properties.
//
// Template renders word/styles.xml and docProps/core.xml from embedded text
// templates and layers them over the library's default template, which
// provides the theme, font table, content types and relationships.
//
// # Units
//
// Lengths are stored in twentieths of a point (twips, 1440 per inch) and font
// sizes in half-points, the native units of the format.
package docx
