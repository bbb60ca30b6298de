package loader

import (
	"encoding/xml"
	"strings"
)

// The xml* types mirror the registry document layout.

type xmlRegistry struct {
	XMLName  xml.Name      `xml:"registry"`
	Types    []xmlType     `xml:"types>type"`
	Groups   []xmlGroup    `xml:"groups>group"`
	Enums    []xmlEnums    `xml:"enums"`
	Commands []xmlCommands `xml:"commands"`
}

// xmlType keeps the mixed content of a <type> entry: the declaration text in
// front of the nested <name> element is the aliased native type.
type xmlType struct {
	NameAttr    string
	Requires    string
	API         string
	Name        string
	HasNameElem bool
	Declaration string
}

func (t *xmlType) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "name":
			t.NameAttr = attr.Value
		case "requires":
			t.Requires = attr.Value
		case "api":
			t.API = attr.Value
		}
	}

	var before strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "name" && !t.HasNameElem {
				if err := d.DecodeElement(&t.Name, &el); err != nil {
					return err
				}
				t.HasNameElem = true
				continue
			}
			if err := d.Skip(); err != nil {
				return err
			}
		case xml.CharData:
			if !t.HasNameElem {
				before.Write(el)
			}
		case xml.EndElement:
			t.Declaration = before.String()
			return nil
		}
	}
}

type xmlGroup struct {
	Name  string        `xml:"name,attr"`
	Enums []xmlGroupRef `xml:"enum"`
}

type xmlGroupRef struct {
	Name string `xml:"name,attr"`
}

type xmlEnums struct {
	Namespace string    `xml:"namespace,attr"`
	Group     string    `xml:"group,attr"`
	Vendor    string    `xml:"vendor,attr"`
	Type      string    `xml:"type,attr"`
	Values    []xmlEnum `xml:"enum"`
}

type xmlEnum struct {
	Name  string `xml:"name,attr"`
	API   string `xml:"api,attr"`
	Value string `xml:"value,attr"`
	Type  string `xml:"type,attr"`
	Alias string `xml:"alias,attr"`
}

type xmlCommands struct {
	Namespace string       `xml:"namespace,attr"`
	Commands  []xmlCommand `xml:"command"`
}

type xmlCommand struct {
	Proto  *xmlProto  `xml:"proto"`
	Params []xmlParam `xml:"param"`
}

type xmlProto struct {
	Group string `xml:"group,attr"`
	PType string `xml:"ptype"`
	Name  string `xml:"name"`
	Text  string `xml:",chardata"`
}

type xmlParam struct {
	Group string `xml:"group,attr"`
	Len   string `xml:"len,attr"`
	PType string `xml:"ptype"`
	Name  string `xml:"name"`
	Text  string `xml:",chardata"`
}
