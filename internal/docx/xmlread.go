package docx

import "encoding/xml"

// Read-side element types. Tags name local parts only so the decoder matches
// whatever prefix the producing application bound to each namespace.

type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    *bodyXML `xml:"body"`
}

type bodyXML struct {
	Paragraphs []paragraphXML `xml:"p"`
	SectPr     *sectPrXML     `xml:"sectPr"`
}

type paragraphXML struct {
	Properties paragraphPropsXML `xml:"pPr"`
	Runs       []runXML          `xml:"r"`
	Hyperlinks []hyperlinkXML    `xml:"hyperlink"`
}

type paragraphPropsXML struct {
	Style         valXML     `xml:"pStyle"`
	KeepNext      boolXML    `xml:"keepNext"`
	Justification valXML     `xml:"jc"`
	Spacing       spacingXML `xml:"spacing"`
	Indent        indentXML  `xml:"ind"`
	OutlineLvl    valXML     `xml:"outlineLvl"`
}

type valXML struct {
	Val string `xml:"val,attr"`
}

type spacingXML struct {
	Before string `xml:"before,attr"`
	After  string `xml:"after,attr"`
}

type indentXML struct {
	Left  string `xml:"left,attr"`
	Start string `xml:"start,attr"`
}

type runXML struct {
	Properties runPropsXML `xml:"rPr"`
	Text       []textXML   `xml:"t"`
	Tabs       []tabXML    `xml:"tab"`
	Breaks     []breakXML  `xml:"br"`
}

type runPropsXML struct {
	Font     fontXML `xml:"rFonts"`
	Bold     boolXML `xml:"b"`
	Color    valXML  `xml:"color"`
	FontSize valXML  `xml:"sz"`
	Lang     valXML  `xml:"lang"`
}

// boolXML distinguishes an absent toggle from <w:b/> and <w:b w:val="0"/>.
type boolXML struct {
	XMLName xml.Name
	Val     string `xml:"val,attr"`
}

func (b boolXML) on() bool {
	if b.XMLName.Local == "" {
		return false
	}
	switch b.Val {
	case "0", "false", "off":
		return false
	}
	return true
}

type fontXML struct {
	ASCII    string `xml:"ascii,attr"`
	HAnsi    string `xml:"hAnsi,attr"`
	CS       string `xml:"cs,attr"`
	EastAsia string `xml:"eastAsia,attr"`
}

type textXML struct {
	Value string `xml:",chardata"`
}

type tabXML struct {
	XMLName xml.Name `xml:"tab"`
}

type breakXML struct {
	Type string `xml:"type,attr"`
}

type hyperlinkXML struct {
	Runs []runXML `xml:"r"`
}

type sectPrXML struct {
	PgSz  pgSzXML  `xml:"pgSz"`
	PgMar pgMarXML `xml:"pgMar"`
}

type pgSzXML struct {
	W string `xml:"w,attr"`
	H string `xml:"h,attr"`
}

type pgMarXML struct {
	Top    string `xml:"top,attr"`
	Right  string `xml:"right,attr"`
	Bottom string `xml:"bottom,attr"`
	Left   string `xml:"left,attr"`
	Header string `xml:"header,attr"`
	Footer string `xml:"footer,attr"`
	Gutter string `xml:"gutter,attr"`
}

type stylesXML struct {
	XMLName     xml.Name       `xml:"styles"`
	DocDefaults docDefaultsXML `xml:"docDefaults"`
	Styles      []styleDefXML  `xml:"style"`
}

type docDefaultsXML struct {
	RPr runPropsXML `xml:"rPrDefault>rPr"`
}

type styleDefXML struct {
	Type    string            `xml:"type,attr"`
	StyleID string            `xml:"styleId,attr"`
	Default string            `xml:"default,attr"`
	Name    valXML            `xml:"name"`
	BasedOn valXML            `xml:"basedOn"`
	Next    valXML            `xml:"next"`
	PPr     paragraphPropsXML `xml:"pPr"`
	RPr     runPropsXML       `xml:"rPr"`
}

type corePropertiesXML struct {
	XMLName  xml.Name `xml:"coreProperties"`
	Title    string   `xml:"title"`
	Subject  string   `xml:"subject"`
	Creator  string   `xml:"creator"`
	Created  string   `xml:"created"`
	Modified string   `xml:"modified"`
}
