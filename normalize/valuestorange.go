package normalize

import (
	"github.com/hugr-lab/condql/condition"
	"github.com/hugr-lab/condql/fieldset"
)

// valuesToRangeBag coalesces runs of single values that form a contiguous
// sequence — per the field's Successor — into ranges. Fields whose
// FieldConfig does not implement SuccessorProvider are left untouched, as
// are singles that never chain with any other single in the bag.
func valuesToRangeBag(_ string, cfg fieldset.FieldConfig, bag *condition.ValuesBag) {
	provider, ok := cfg.(fieldset.SuccessorProvider)
	if !ok {
		return
	}
	successor := provider.Successor()
	if successor == nil {
		return
	}
	cmp := cfg.ValueComparison()
	if cmp == nil {
		cmp = fieldset.DefaultComparison()
	}
	options := cfg.Options()

	singles := bag.Singles()
	if len(singles) < 2 {
		return
	}

	used := make([]bool, len(singles))
	hasPred := make([]bool, len(singles))
	var (
		remaining []condition.SingleValue
		newRanges []condition.Range
	)

	isEqual := func(a, b any) bool {
		return cmp.IsEqual(a, b, options)
	}

	// A value with a predecessor elsewhere in the bag is never a valid
	// chain start: starting there would strand its predecessor mid-run and
	// undercount the coalesced range regardless of insertion order.
	for i := range singles {
		for j := range singles {
			if i == j {
				continue
			}
			next, ok := successor.Next(singles[j].Normalized)
			if !ok {
				continue
			}
			if isEqual(next, singles[i].Normalized) {
				hasPred[i] = true
				break
			}
		}
	}

	for i := range singles {
		if used[i] || hasPred[i] {
			continue
		}
		chain := []int{i}
		used[i] = true
		tail := singles[i]
		for {
			next, ok := successor.Next(tail.Normalized)
			if !ok {
				break
			}
			found := -1
			for j := range singles {
				if used[j] {
					continue
				}
				if isEqual(singles[j].Normalized, next) {
					found = j
					break
				}
			}
			if found < 0 {
				break
			}
			used[found] = true
			chain = append(chain, found)
			tail = singles[found]
		}
		if len(chain) >= 2 {
			newRanges = append(newRanges, condition.Range{
				Lower:          singles[chain[0]],
				Upper:          tail,
				LowerInclusive: true,
				UpperInclusive: true,
			})
		} else {
			remaining = append(remaining, singles[i])
		}
	}

	for i := range singles {
		if !used[i] {
			remaining = append(remaining, singles[i])
		}
	}

	if len(newRanges) == 0 {
		return
	}
	bag.ReplaceSingles(remaining)
	for _, r := range newRanges {
		bag.AddRange(r)
	}
}
