package condwire

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/hugr-lab/condql/condition"
)

// Encode serializes a condition's tree to MessagePack. The field set is
// never serialized — it is a borrowed, read-only collaborator at runtime
// and Decode requires the caller to supply one, exactly as the in-memory
// Condition already does.
func Encode(c *condition.Condition) ([]byte, error) {
	var wg wireGroup
	if c != nil && c.Root != nil {
		wg = groupToWire(c.Root)
	} else {
		wg = wireGroup{Logical: string(condition.LogicalAnd)}
	}
	data, err := msgpack.Marshal(wg)
	if err != nil {
		return nil, fmt.Errorf("condwire: failed to encode condition: %w", err)
	}
	return data, nil
}

func groupToWire(g *condition.ValuesGroup) wireGroup {
	wg := wireGroup{Logical: string(g.GetLogical())}
	for _, fe := range g.Fields() {
		wg.Fields = append(wg.Fields, fieldToWire(fe))
	}
	for _, child := range g.Groups() {
		wg.Groups = append(wg.Groups, groupToWire(child))
	}
	return wg
}

func fieldToWire(fe condition.FieldEntry) wireField {
	wf := wireField{Name: fe.Name}
	bag := fe.Bag
	for _, v := range bag.Singles() {
		wf.Singles = append(wf.Singles, v.Raw)
	}
	for _, v := range bag.ExcludedSingles() {
		wf.ExcludedSingles = append(wf.ExcludedSingles, v.Raw)
	}
	for _, r := range bag.Ranges() {
		wf.Ranges = append(wf.Ranges, rangeToWire(r))
	}
	for _, r := range bag.ExcludedRanges() {
		wf.ExcludedRanges = append(wf.ExcludedRanges, rangeToWire(r))
	}
	for _, c := range bag.Comparisons() {
		wf.Comparisons = append(wf.Comparisons, wireComparison{Value: c.Operand.Raw, Operator: string(c.Operator)})
	}
	for _, p := range bag.PatternMatches() {
		wf.PatternMatchers = append(wf.PatternMatchers, wirePattern{
			Value: p.Pattern.Raw, Kind: string(p.Kind), CaseInsensitive: p.CaseInsensitive,
		})
	}
	return wf
}

func rangeToWire(r condition.Range) wireRange {
	return wireRange{
		Lower: r.Lower.Raw, Upper: r.Upper.Raw,
		LowerInclusive: r.LowerInclusive, UpperInclusive: r.UpperInclusive,
	}
}
