package docfilter

import (
	"encoding/json"
	"encoding/xml"

	"github.com/hugr-lab/condql/condition"
)

// Emitter renders a Condition to a structured document.
type Emitter struct{}

// NewEmitter creates an Emitter.
func NewEmitter() *Emitter { return &Emitter{} }

// EncodeJSON renders c as the JSON structured document from §4.7.
func (e *Emitter) EncodeJSON(c *condition.Condition) ([]byte, error) {
	if c == nil || c.Root == nil {
		return json.Marshal(document{})
	}
	return json.Marshal(groupToDocument(c.Root))
}

// EncodeXML renders c as the XML structured document from §6.
func (e *Emitter) EncodeXML(c *condition.Condition) ([]byte, error) {
	if c == nil || c.Root == nil {
		return xml.Marshal(xmlCondition{})
	}
	root := groupToXML(c.Root)
	return xml.Marshal(xmlCondition{Logical: root.Logical, Fields: root.Fields, Groups: root.Groups})
}

func groupToDocument(g *condition.ValuesGroup) document {
	doc := document{Logical: string(g.GetLogical())}
	if fields := g.Fields(); len(fields) > 0 {
		doc.Fields = make(map[string]valueGroup, len(fields))
		for _, fe := range fields {
			doc.Fields[fe.Name] = bagToValueGroup(fe.Bag)
		}
	}
	for _, child := range g.Groups() {
		doc.Groups = append(doc.Groups, groupToDocument(child))
	}
	return doc
}

func bagToValueGroup(bag *condition.ValuesBag) valueGroup {
	var vg valueGroup
	for _, v := range bag.Singles() {
		vg.SingleValues = append(vg.SingleValues, v.Raw)
	}
	for _, v := range bag.ExcludedSingles() {
		vg.ExcludedValues = append(vg.ExcludedValues, v.Raw)
	}
	for _, r := range bag.Ranges() {
		vg.Ranges = append(vg.Ranges, rangeDocFrom(r))
	}
	for _, r := range bag.ExcludedRanges() {
		vg.ExcludedRanges = append(vg.ExcludedRanges, rangeDocFrom(r))
	}
	for _, c := range bag.Comparisons() {
		vg.Comparisons = append(vg.Comparisons, comparisonDoc{Value: c.Operand.Raw, Operator: string(c.Operator)})
	}
	for _, p := range bag.PatternMatches() {
		vg.PatternMatchers = append(vg.PatternMatchers, patternDoc{
			Value: p.Pattern.Raw, Type: string(p.Kind), CaseInsensitive: p.CaseInsensitive,
		})
	}
	return vg
}

func rangeDocFrom(r condition.Range) rangeDoc {
	rd := rangeDoc{Lower: r.Lower.Raw, Upper: r.Upper.Raw}
	if !r.LowerInclusive {
		rd.InclusiveLower = boolPtr(false)
	}
	if !r.UpperInclusive {
		rd.InclusiveUpper = boolPtr(false)
	}
	return rd
}

func groupToXML(g *condition.ValuesGroup) xmlGroup {
	xg := xmlGroup{Logical: string(g.GetLogical())}
	for _, fe := range g.Fields() {
		xg.Fields = append(xg.Fields, fieldToXML(fe))
	}
	for _, child := range g.Groups() {
		xg.Groups = append(xg.Groups, groupToXML(child))
	}
	return xg
}

func fieldToXML(fe condition.FieldEntry) xmlField {
	xf := xmlField{Name: fe.Name}
	bag := fe.Bag
	for _, v := range bag.Singles() {
		xf.SingleValues = append(xf.SingleValues, v.Raw)
	}
	for _, v := range bag.ExcludedSingles() {
		xf.ExcludedValues = append(xf.ExcludedValues, v.Raw)
	}
	for _, r := range bag.Ranges() {
		xf.Ranges = append(xf.Ranges, xmlRangeFrom(r))
	}
	for _, r := range bag.ExcludedRanges() {
		xf.ExcludedRanges = append(xf.ExcludedRanges, xmlRangeFrom(r))
	}
	for _, c := range bag.Comparisons() {
		xf.Comparisons = append(xf.Comparisons, xmlComparison{Operator: string(c.Operator), Value: c.Operand.Raw})
	}
	for _, p := range bag.PatternMatches() {
		xf.PatternMatchers = append(xf.PatternMatchers, xmlPattern{
			Type: string(p.Kind), CaseInsensitive: xmlBoolAttr(p.CaseInsensitive), Value: p.Pattern.Raw,
		})
	}
	return xf
}

func xmlRangeFrom(r condition.Range) xmlRange {
	return xmlRange{
		Lower: xmlBound{Inclusive: xmlBoolAttr(r.LowerInclusive), Value: r.Lower.Raw},
		Upper: xmlBound{Inclusive: xmlBoolAttr(r.UpperInclusive), Value: r.Upper.Raw},
	}
}
