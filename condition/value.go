// Package condition defines the condition-tree data model: value variants
// (C1), the per-field values bag (C2), the values group (C3), and the
// top-level Condition that pairs a group tree with a field set.
package condition

import "strings"

// SingleValue holds a value's original textual representation alongside
// its normalized form. Parsers populate only Raw; the normalization
// pipeline's transform pass fills in Normalized. ValueComparison compares
// the normalized form, never Raw.
type SingleValue struct {
	Raw        string
	Normalized any
}

// NewSingleValue creates a SingleValue from its raw textual form.
func NewSingleValue(raw string) SingleValue {
	return SingleValue{Raw: raw}
}

// Range is a lower/upper bound pair over two single values. Both bounds
// default to inclusive.
type Range struct {
	Lower          SingleValue
	Upper          SingleValue
	LowerInclusive bool
	UpperInclusive bool
}

// NewRange creates an inclusive-both-bounds Range.
func NewRange(lower, upper SingleValue) Range {
	return Range{Lower: lower, Upper: upper, LowerInclusive: true, UpperInclusive: true}
}

// CompareOperator is one of the five relational operators a Comparison
// value may carry.
type CompareOperator string

const (
	OpLess           CompareOperator = "<"
	OpLessOrEqual    CompareOperator = "<="
	OpNotEqual       CompareOperator = "<>"
	OpGreater        CompareOperator = ">"
	OpGreaterOrEqual CompareOperator = ">="
)

// Comparison is a relational test against a single operand, e.g. "<= 10".
type Comparison struct {
	Operand  SingleValue
	Operator CompareOperator
}

// PatternKind selects the containment/prefix/suffix/regex family a
// PatternMatch tests, with an optional NOT_ prefix carrying negation.
type PatternKind string

const (
	PatternContains       PatternKind = "CONTAINS"
	PatternStartsWith     PatternKind = "STARTS_WITH"
	PatternEndsWith       PatternKind = "ENDS_WITH"
	PatternRegex          PatternKind = "REGEX"
	PatternNotContains    PatternKind = "NOT_CONTAINS"
	PatternNotStartsWith  PatternKind = "NOT_STARTS_WITH"
	PatternNotEndsWith    PatternKind = "NOT_ENDS_WITH"
	PatternNotRegex       PatternKind = "NOT_REGEX"
)

// Exclusive reports whether the kind carries a NOT_ prefix. This is the
// single source of truth for pattern-match negation; there is no separate
// exclusive flag on PatternMatch.
func (k PatternKind) Exclusive() bool {
	return strings.HasPrefix(string(k), "NOT_")
}

// baseKind strips a NOT_ prefix, returning the underlying symbol family.
func (k PatternKind) baseKind() PatternKind {
	if k.Exclusive() {
		return PatternKind(strings.TrimPrefix(string(k), "NOT_"))
	}
	return k
}

// Negated returns the NOT_ counterpart of a positive kind (or itself if
// already negated).
func (k PatternKind) Negated() PatternKind {
	if k.Exclusive() {
		return k
	}
	return PatternKind("NOT_" + string(k))
}

// PatternMatch is a pattern test against a field's value: containment,
// prefix, suffix, or regular expression, optionally case-insensitive and
// optionally negated (via Kind).
type PatternMatch struct {
	Pattern         SingleValue
	Kind            PatternKind
	CaseInsensitive bool
}
