// Package docfilter implements the structured codec (C8): a JSON and an
// XML encoding of a condition tree as an attribute-keyed document,
// symmetric with the FilterQuery grammar. Ingest enforces the same
// acceptance, limit, and required-field invariants as the FilterQuery
// parser; Emit produces a deterministic rendering.
package docfilter

import "encoding/json"

// document is the JSON wire shape of one group level.
type document struct {
	Logical string                `json:"logical,omitempty"`
	Fields  map[string]valueGroup `json:"fields,omitempty"`
	Groups  []document            `json:"groups,omitempty"`
}

// valueGroup is the JSON wire shape of one field's bag. Field order
// mirrors the bag order from the exporter: singles, excluded singles,
// ranges, excluded ranges, comparisons, pattern matches.
type valueGroup struct {
	SingleValues    []string        `json:"single-values,omitempty"`
	ExcludedValues  []string        `json:"excluded-values,omitempty"`
	Ranges          []rangeDoc      `json:"ranges,omitempty"`
	ExcludedRanges  []rangeDoc      `json:"excluded-ranges,omitempty"`
	Comparisons     []comparisonDoc `json:"comparisons,omitempty"`
	PatternMatchers []patternDoc    `json:"pattern-matchers,omitempty"`
}

type rangeDoc struct {
	Lower          string `json:"lower"`
	Upper          string `json:"upper"`
	InclusiveLower *bool  `json:"inclusive-lower,omitempty"`
	InclusiveUpper *bool  `json:"inclusive-upper,omitempty"`
}

type comparisonDoc struct {
	Value    string `json:"value"`
	Operator string `json:"operator"`
}

type patternDoc struct {
	Value           string `json:"value"`
	Type            string `json:"type"`
	CaseInsensitive bool   `json:"case-insensitive,omitempty"`
}

func boolPtr(b bool) *bool { return &b }

func boolOrDefault(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

func decodeJSONDocument(data []byte) (*document, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *document) toRaw() rawGroup {
	rg := rawGroup{logical: d.Logical}
	for name, vg := range d.Fields {
		rg.fields = append(rg.fields, vg.toRawField(name))
	}
	for _, child := range d.Groups {
		rg.groups = append(rg.groups, child.toRaw())
	}
	return rg
}

func (vg *valueGroup) toRawField(name string) rawField {
	rf := rawField{name: name}
	rf.singles = append(rf.singles, vg.SingleValues...)
	rf.excludedSingles = append(rf.excludedSingles, vg.ExcludedValues...)
	for _, r := range vg.Ranges {
		rf.ranges = append(rf.ranges, rawRange{
			lower: r.Lower, upper: r.Upper,
			lowerInclusive: boolOrDefault(r.InclusiveLower, true),
			upperInclusive: boolOrDefault(r.InclusiveUpper, true),
		})
	}
	for _, r := range vg.ExcludedRanges {
		rf.excludedRanges = append(rf.excludedRanges, rawRange{
			lower: r.Lower, upper: r.Upper,
			lowerInclusive: boolOrDefault(r.InclusiveLower, true),
			upperInclusive: boolOrDefault(r.InclusiveUpper, true),
		})
	}
	for _, c := range vg.Comparisons {
		rf.comparisons = append(rf.comparisons, rawComparison{value: c.Value, operator: c.Operator})
	}
	for _, p := range vg.PatternMatchers {
		rf.patternMatchers = append(rf.patternMatchers, rawPattern{
			value: p.Value, kind: p.Type, caseInsensitive: p.CaseInsensitive,
		})
	}
	return rf
}
