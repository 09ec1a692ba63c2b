package normalize

import (
	"github.com/hugr-lab/condql/condition"
	"github.com/hugr-lab/condql/fieldset"
)

// validateBag runs a field's optional Validator against every normalized
// value in the bag, when the FieldConfig implements ValidatorProvider.
// Fields that never supply a validator are left untouched.
func validateBag(_ string, cfg fieldset.FieldConfig, bag *condition.ValuesBag) {
	provider, ok := cfg.(fieldset.ValidatorProvider)
	if !ok {
		return
	}
	validator := provider.Validator()
	if validator == nil {
		return
	}
	options := cfg.Options()

	// Validate is not one of the two panic-recovery boundaries (§5): only
	// Transform and the duplicate remover are protected. A panicking
	// validator is treated the same as a panicking lexer bug.
	check := func(value any) bool {
		if err := validator.Validate(value, options); err != nil {
			bag.AddError(err)
			return false
		}
		return true
	}

	for _, v := range bag.Singles() {
		if !check(v.Normalized) {
			return
		}
	}
	for _, v := range bag.ExcludedSingles() {
		if !check(v.Normalized) {
			return
		}
	}
	for _, r := range bag.Ranges() {
		if !check(r.Lower.Normalized) || !check(r.Upper.Normalized) {
			return
		}
	}
	for _, r := range bag.ExcludedRanges() {
		if !check(r.Lower.Normalized) || !check(r.Upper.Normalized) {
			return
		}
	}
	for _, c := range bag.Comparisons() {
		if !check(c.Operand.Normalized) {
			return
		}
	}
	for _, pm := range bag.PatternMatches() {
		if !check(pm.Pattern.Normalized) {
			return
		}
	}
}
