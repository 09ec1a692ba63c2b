package condbuild

import (
	"github.com/hugr-lab/condql/conderr"
	"github.com/hugr-lab/condql/condition"
)

// ValuesBuilder adds values to one field's bag. Every add-method mirrors
// a ValuesBag add-method, but first checks the field's acceptance rules
// (AcceptRanges, AcceptCompares, AcceptPatternMatch) the way the
// FilterQuery parser and structured-document ingester do, so a builder
// never adds a value kind the field rejects. Value, group and depth limits
// and required fields are not checked.
type ValuesBuilder struct {
	parent    *ConditionBuilder
	fieldName string
	cfg       fieldsetLike
	bag       *condition.ValuesBag
}

// fieldsetLike narrows the FieldConfig methods this file needs, avoiding
// a direct fieldset import cycle concern; it is satisfied by
// fieldset.FieldConfig.
type fieldsetLike interface {
	AcceptRanges() bool
	AcceptCompares() bool
	AcceptPatternMatch() bool
}

func (v *ValuesBuilder) fail(err error) *ValuesBuilder {
	if v.parent.err == nil {
		v.parent.err = err
	}
	return v
}

// Single adds a single value.
func (v *ValuesBuilder) Single(raw string) *ValuesBuilder {
	if v.parent.err != nil || v.bag == nil {
		return v
	}
	v.bag.AddSingle(condition.NewSingleValue(raw))
	return v
}

// ExcludedSingle adds a negated single value.
func (v *ValuesBuilder) ExcludedSingle(raw string) *ValuesBuilder {
	if v.parent.err != nil || v.bag == nil {
		return v
	}
	v.bag.AddExcludedSingle(condition.NewSingleValue(raw))
	return v
}

// Range adds an inclusive-both-bounds range, failing the builder if the
// field does not accept ranges.
func (v *ValuesBuilder) Range(lower, upper string) *ValuesBuilder {
	return v.RangeWithInclusivity(lower, upper, true, true)
}

// RangeWithInclusivity adds a range with explicit bound inclusivity.
func (v *ValuesBuilder) RangeWithInclusivity(lower, upper string, lowerInclusive, upperInclusive bool) *ValuesBuilder {
	if v.parent.err != nil || v.bag == nil {
		return v
	}
	if !v.cfg.AcceptRanges() {
		return v.fail(&conderr.UnsupportedValueTypeError{FieldName: v.fieldName, ValueType: "range"})
	}
	v.bag.AddRange(condition.Range{
		Lower: condition.NewSingleValue(lower), Upper: condition.NewSingleValue(upper),
		LowerInclusive: lowerInclusive, UpperInclusive: upperInclusive,
	})
	return v
}

// ExcludedRange adds an inclusive-both-bounds excluded range.
func (v *ValuesBuilder) ExcludedRange(lower, upper string) *ValuesBuilder {
	if v.parent.err != nil || v.bag == nil {
		return v
	}
	if !v.cfg.AcceptRanges() {
		return v.fail(&conderr.UnsupportedValueTypeError{FieldName: v.fieldName, ValueType: "range"})
	}
	v.bag.AddExcludedRange(condition.NewRange(condition.NewSingleValue(lower), condition.NewSingleValue(upper)))
	return v
}

// Comparison adds a relational test, failing the builder if the field
// does not accept comparisons.
func (v *ValuesBuilder) Comparison(operator condition.CompareOperator, operand string) *ValuesBuilder {
	if v.parent.err != nil || v.bag == nil {
		return v
	}
	if !v.cfg.AcceptCompares() {
		return v.fail(&conderr.UnsupportedValueTypeError{FieldName: v.fieldName, ValueType: "comparison"})
	}
	v.bag.AddComparison(condition.Comparison{Operand: condition.NewSingleValue(operand), Operator: operator})
	return v
}

// PatternMatch adds a pattern test, failing the builder if the field does
// not accept pattern matches.
func (v *ValuesBuilder) PatternMatch(kind condition.PatternKind, pattern string, caseInsensitive bool) *ValuesBuilder {
	if v.parent.err != nil || v.bag == nil {
		return v
	}
	if !v.cfg.AcceptPatternMatch() {
		return v.fail(&conderr.UnsupportedValueTypeError{FieldName: v.fieldName, ValueType: "pattern-match"})
	}
	v.bag.AddPatternMatch(condition.PatternMatch{
		Pattern: condition.NewSingleValue(pattern), Kind: kind, CaseInsensitive: caseInsensitive,
	})
	return v
}

// End returns to the condition builder that opened this field.
func (v *ValuesBuilder) End() *ConditionBuilder {
	return v.parent
}
