package normalize

import (
	"github.com/hugr-lab/condql/condition"
	"github.com/hugr-lab/condql/fieldset"
)

// dedupeBag removes later duplicates within a single bag using the
// field's ValueComparison, or the package default (== / string fallback)
// when the field supplies none. Comparison happens per member kind, never
// across kinds or across subgroups; the first occurrence always survives.
func dedupeBag(fieldName string, cfg fieldset.FieldConfig, bag *condition.ValuesBag) {
	cmp := cfg.ValueComparison()
	if cmp == nil {
		cmp = fieldset.DefaultComparison()
	}
	options := cfg.Options()

	// isEqual compares two SingleValues by their normalized form. Neither
	// value has been transformed when the field has no Transformer chain
	// configured (fieldset/yamlfields fields never do), so both Normalized
	// are nil and cmp.IsEqual would report every pair equal regardless of
	// their actual text; fall back to comparing Raw in that case instead of
	// letting "both untransformed" collapse into "equal".
	isEqual := func(a, b condition.SingleValue) (bool, error) {
		if a.Normalized == nil && b.Normalized == nil {
			return a.Raw == b.Raw, nil
		}
		var eq bool
		err := runProtected(fieldName, "dedupe", func() error {
			eq = cmp.IsEqual(a.Normalized, b.Normalized, options)
			return nil
		})
		return eq, err
	}

	singles := bag.Singles()
	for i := 1; i < len(singles); i++ {
		for j := 0; j < i; j++ {
			eq, err := isEqual(singles[i], singles[j])
			if err != nil {
				bag.AddError(err)
				return
			}
			if eq {
				bag.RemoveSingle(i)
				break
			}
		}
	}

	excluded := bag.ExcludedSingles()
	for i := 1; i < len(excluded); i++ {
		for j := 0; j < i; j++ {
			eq, err := isEqual(excluded[i], excluded[j])
			if err != nil {
				bag.AddError(err)
				return
			}
			if eq {
				bag.RemoveExcludedSingle(i)
				break
			}
		}
	}

	rangeEqual := func(a, b condition.Range) (bool, error) {
		lo, err := isEqual(a.Lower, b.Lower)
		if err != nil || !lo {
			return false, err
		}
		hi, err := isEqual(a.Upper, b.Upper)
		if err != nil || !hi {
			return false, err
		}
		return a.LowerInclusive == b.LowerInclusive && a.UpperInclusive == b.UpperInclusive, nil
	}

	ranges := bag.Ranges()
	for i := 1; i < len(ranges); i++ {
		for j := 0; j < i; j++ {
			eq, err := rangeEqual(ranges[i], ranges[j])
			if err != nil {
				bag.AddError(err)
				return
			}
			if eq {
				bag.RemoveRange(i)
				break
			}
		}
	}

	excludedRanges := bag.ExcludedRanges()
	for i := 1; i < len(excludedRanges); i++ {
		for j := 0; j < i; j++ {
			eq, err := rangeEqual(excludedRanges[i], excludedRanges[j])
			if err != nil {
				bag.AddError(err)
				return
			}
			if eq {
				bag.RemoveExcludedRange(i)
				break
			}
		}
	}

	comparisons := bag.Comparisons()
	for i := 1; i < len(comparisons); i++ {
		for j := 0; j < i; j++ {
			if comparisons[i].Operator != comparisons[j].Operator {
				continue
			}
			eq, err := isEqual(comparisons[i].Operand, comparisons[j].Operand)
			if err != nil {
				bag.AddError(err)
				return
			}
			if eq {
				bag.RemoveComparison(i)
				break
			}
		}
	}

	patterns := bag.PatternMatches()
	for i := 1; i < len(patterns); i++ {
		for j := 0; j < i; j++ {
			if patterns[i].Kind != patterns[j].Kind || patterns[i].CaseInsensitive != patterns[j].CaseInsensitive {
				continue
			}
			eq, err := isEqual(patterns[i].Pattern, patterns[j].Pattern)
			if err != nil {
				bag.AddError(err)
				return
			}
			if eq {
				bag.RemovePatternMatch(i)
				break
			}
		}
	}
}
