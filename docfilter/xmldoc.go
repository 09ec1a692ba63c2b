package docfilter

import "encoding/xml"

// xmlCondition is the root element of the XML structured document. Nested
// groups are represented by repeated <groups> sibling elements rather
// than a single wrapper, matching the schema in the external-interfaces
// section: `<groups logical="OR">…</groups>`.
type xmlCondition struct {
	XMLName xml.Name   `xml:"condition"`
	Logical string     `xml:"logical,attr,omitempty"`
	Fields  []xmlField `xml:"fields>field,omitempty"`
	Groups  []xmlGroup `xml:"groups"`
}

type xmlGroup struct {
	XMLName xml.Name   `xml:"groups"`
	Logical string     `xml:"logical,attr,omitempty"`
	Fields  []xmlField `xml:"fields>field,omitempty"`
	Groups  []xmlGroup `xml:"groups"`
}

type xmlField struct {
	Name            string          `xml:"name,attr"`
	SingleValues    []string        `xml:"single-values>value,omitempty"`
	ExcludedValues  []string        `xml:"excluded-values>value,omitempty"`
	Ranges          []xmlRange      `xml:"ranges>range,omitempty"`
	ExcludedRanges  []xmlRange      `xml:"excluded-ranges>range,omitempty"`
	Comparisons     []xmlComparison `xml:"comparisons>comparison,omitempty"`
	PatternMatchers []xmlPattern    `xml:"pattern-matchers>pattern-matcher,omitempty"`
}

type xmlRange struct {
	Lower xmlBound `xml:"lower"`
	Upper xmlBound `xml:"upper"`
}

type xmlBound struct {
	Inclusive string `xml:"inclusive,attr,omitempty"`
	Value     string `xml:",chardata"`
}

type xmlComparison struct {
	Operator string `xml:"operator,attr"`
	Value    string `xml:",chardata"`
}

type xmlPattern struct {
	Type            string `xml:"type,attr"`
	CaseInsensitive string `xml:"case-insensitive,attr,omitempty"`
	Value           string `xml:",chardata"`
}

func decodeXMLDocument(data []byte) (*xmlCondition, error) {
	var doc xmlCondition
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// xmlBoolAttr renders the "true"/"false" string form the schema requires
// for inclusive/case-insensitive attributes.
func xmlBoolAttr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func xmlBoolOrDefault(s string, def bool) bool {
	switch s {
	case "true":
		return true
	case "false":
		return false
	default:
		return def
	}
}

func (c *xmlCondition) toRaw() rawGroup {
	rg := rawGroup{logical: c.Logical}
	for _, f := range c.Fields {
		rg.fields = append(rg.fields, f.toRawField())
	}
	for _, g := range c.Groups {
		rg.groups = append(rg.groups, g.toRaw())
	}
	return rg
}

func (g *xmlGroup) toRaw() rawGroup {
	rg := rawGroup{logical: g.Logical}
	for _, f := range g.Fields {
		rg.fields = append(rg.fields, f.toRawField())
	}
	for _, child := range g.Groups {
		rg.groups = append(rg.groups, child.toRaw())
	}
	return rg
}

func (f *xmlField) toRawField() rawField {
	rf := rawField{name: f.Name}
	rf.singles = append(rf.singles, f.SingleValues...)
	rf.excludedSingles = append(rf.excludedSingles, f.ExcludedValues...)
	for _, r := range f.Ranges {
		rf.ranges = append(rf.ranges, r.toRaw())
	}
	for _, r := range f.ExcludedRanges {
		rf.excludedRanges = append(rf.excludedRanges, r.toRaw())
	}
	for _, c := range f.Comparisons {
		rf.comparisons = append(rf.comparisons, rawComparison{value: c.Value, operator: c.Operator})
	}
	for _, p := range f.PatternMatchers {
		rf.patternMatchers = append(rf.patternMatchers, rawPattern{
			value: p.Value, kind: p.Type,
			caseInsensitive: xmlBoolOrDefault(p.CaseInsensitive, false),
		})
	}
	return rf
}

func (r *xmlRange) toRaw() rawRange {
	return rawRange{
		lower: r.Lower.Value, upper: r.Upper.Value,
		lowerInclusive: xmlBoolOrDefault(r.Lower.Inclusive, true),
		upperInclusive: xmlBoolOrDefault(r.Upper.Inclusive, true),
	}
}
