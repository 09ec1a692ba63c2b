package normalize

import (
	"github.com/hugr-lab/condql/condition"
	"github.com/hugr-lab/condql/fieldset"
)

// transformBag applies a field's view-transformer chain to every value in
// the bag (single, range bounds, comparison operand, pattern-match
// pattern), filling in each SingleValue's Normalized form. The chain runs
// left to right, feeding one transformer's output into the next; the raw
// string is the chain's initial input.
func transformBag(fieldName string, cfg fieldset.FieldConfig, bag *condition.ValuesBag) {
	chain := cfg.Transformers()
	if len(chain) == 0 {
		return
	}

	apply := func(raw string) (any, error) {
		var val any = raw
		for _, t := range chain {
			var err error
			val, err = t.Transform(val)
			if err != nil {
				return nil, err
			}
		}
		return val, nil
	}

	normalize := func(raw string) (any, bool) {
		var out any
		if err := runProtected(fieldName, "transform", func() error {
			var err error
			out, err = apply(raw)
			return err
		}); err != nil {
			bag.AddError(err)
			return nil, false
		}
		return out, true
	}

	for i, v := range bag.Singles() {
		norm, ok := normalize(v.Raw)
		if !ok {
			return
		}
		v.Normalized = norm
		bag.SetSingleAt(i, v)
	}
	for i, v := range bag.ExcludedSingles() {
		norm, ok := normalize(v.Raw)
		if !ok {
			return
		}
		v.Normalized = norm
		bag.SetExcludedSingleAt(i, v)
	}
	for i, r := range bag.Ranges() {
		lo, ok := normalize(r.Lower.Raw)
		if !ok {
			return
		}
		hi, ok := normalize(r.Upper.Raw)
		if !ok {
			return
		}
		r.Lower.Normalized = lo
		r.Upper.Normalized = hi
		bag.SetRangeAt(i, r)
	}
	for i, r := range bag.ExcludedRanges() {
		lo, ok := normalize(r.Lower.Raw)
		if !ok {
			return
		}
		hi, ok := normalize(r.Upper.Raw)
		if !ok {
			return
		}
		r.Lower.Normalized = lo
		r.Upper.Normalized = hi
		bag.SetExcludedRangeAt(i, r)
	}
	for i, c := range bag.Comparisons() {
		v, ok := normalize(c.Operand.Raw)
		if !ok {
			return
		}
		c.Operand.Normalized = v
		bag.SetComparisonAt(i, c)
	}
	for i, pm := range bag.PatternMatches() {
		v, ok := normalize(pm.Pattern.Raw)
		if !ok {
			return
		}
		pm.Pattern.Normalized = v
		bag.SetPatternMatchAt(i, pm)
	}
}
