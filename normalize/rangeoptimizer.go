package normalize

import (
	"sort"
	"strconv"

	"github.com/hugr-lab/condql/condition"
	"github.com/hugr-lab/condql/fieldset"
)

// rangeKey extracts a numeric ordering key for a bound, preferring its
// normalized form (when a Transformer already produced an int/int64/
// float64) and falling back to parsing the raw literal. Fields whose
// values are not numeric (no transformer, non-numeric raw text) report
// ok=false and the optimizer leaves their ranges untouched — merging
// requires an ordering the core has no general way to obtain from a field
// that never exposed one.
func rangeKey(v condition.SingleValue) (float64, bool) {
	switch n := v.Normalized.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	if f, err := strconv.ParseFloat(v.Raw, 64); err == nil {
		return f, true
	}
	return 0, false
}

type orderedRange struct {
	r        condition.Range
	lo, hi   float64
	original int
}

// rangeOptimizeBag merges overlapping/adjacent ranges, drops ranges wholly
// contained in another, and drops excluded-ranges that never intersect
// the surviving included ranges (excluding a region the included set
// never admitted in the first place is a no-op). Ties in merge order
// favor the earliest-inserted range as survivor via a stable sort.
func rangeOptimizeBag(_ string, _ fieldset.FieldConfig, bag *condition.ValuesBag) {
	included := toOrdered(bag.Ranges())
	if len(included) >= 2 {
		merged := mergeOrdered(included)
		out := make([]condition.Range, len(merged))
		for i, m := range merged {
			out[i] = m.r
		}
		bag.ReplaceRanges(out)
		included = merged
	}

	excluded := bag.ExcludedRanges()
	if len(excluded) == 0 || len(included) == 0 {
		return
	}
	var survivors []condition.Range
	for _, e := range excluded {
		elo, ok1 := rangeKey(e.Lower)
		ehi, ok2 := rangeKey(e.Upper)
		if !ok1 || !ok2 {
			survivors = append(survivors, e)
			continue
		}
		intersects := false
		for _, inc := range included {
			if rangesTouch(elo, ehi, e.LowerInclusive, e.UpperInclusive, inc.lo, inc.hi, inc.r.LowerInclusive, inc.r.UpperInclusive) {
				intersects = true
				break
			}
		}
		if intersects {
			survivors = append(survivors, e)
		}
	}
	bag.ReplaceExcludedRanges(survivors)
}

func toOrdered(ranges []condition.Range) []orderedRange {
	out := make([]orderedRange, 0, len(ranges))
	for i, r := range ranges {
		lo, ok1 := rangeKey(r.Lower)
		hi, ok2 := rangeKey(r.Upper)
		if !ok1 || !ok2 {
			return nil
		}
		out = append(out, orderedRange{r: r, lo: lo, hi: hi, original: i})
	}
	return out
}

func mergeOrdered(ranges []orderedRange) []orderedRange {
	sort.SliceStable(ranges, func(i, j int) bool {
		if ranges[i].lo != ranges[j].lo {
			return ranges[i].lo < ranges[j].lo
		}
		return ranges[i].original < ranges[j].original
	})

	var merged []orderedRange
	for _, cur := range ranges {
		if len(merged) == 0 {
			merged = append(merged, cur)
			continue
		}
		last := &merged[len(merged)-1]
		if rangesTouch(last.lo, last.hi, last.r.LowerInclusive, last.r.UpperInclusive,
			cur.lo, cur.hi, cur.r.LowerInclusive, cur.r.UpperInclusive) {
			if cur.hi > last.hi || (cur.hi == last.hi && cur.r.UpperInclusive && !last.r.UpperInclusive) {
				last.hi = cur.hi
				last.r.Upper = cur.r.Upper
				last.r.UpperInclusive = cur.r.UpperInclusive
			}
			continue
		}
		merged = append(merged, cur)
	}
	return merged
}

// rangesTouch reports whether [aLo,aHi] and [bLo,bHi] overlap, are nested,
// or share a boundary point that at least one side admits as inclusive.
func rangesTouch(aLo, aHi float64, aLoInc, aHiInc bool, bLo, bHi float64, bLoInc, bHiInc bool) bool {
	if aHi < bLo || bHi < aLo {
		return false
	}
	if aHi == bLo && !aHiInc && !bLoInc {
		return false
	}
	if bHi == aLo && !bHiInc && !aLoInc {
		return false
	}
	return true
}
