package condwire

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/hugr-lab/condql/conderr"
	"github.com/hugr-lab/condql/condition"
	"github.com/hugr-lab/condql/fieldset"
)

// Option configures Decode's limits, mirroring fquery.Option and
// docfilter.IngestOption.
type Option func(*decodeState)

// WithMaxValues sets the per-bag value count limit (default 100).
func WithMaxValues(n int) Option { return func(s *decodeState) { s.maxValues = n } }

// WithMaxGroups sets the per-group direct-subgroup count limit (default 100).
func WithMaxGroups(n int) Option { return func(s *decodeState) { s.maxGroups = n } }

// WithMaxDepth sets the maximum group nesting depth (default 100).
func WithMaxDepth(n int) Option { return func(s *decodeState) { s.maxDepth = n } }

// Decode deserializes MessagePack data produced by Encode back into a
// Condition, checked against fs with the same acceptance, overflow, and
// required-field invariants as the FilterQuery parser and the structured
// codec's Ingest — a decoded condition is never invalid.
func Decode(data []byte, fs fieldset.FieldSet, opts ...Option) (*condition.Condition, error) {
	var wg wireGroup
	if err := msgpack.Unmarshal(data, &wg); err != nil {
		return nil, &conderr.InputProcessorError{Message: "invalid MessagePack condition", Err: err}
	}

	st := &decodeState{fs: fs, maxValues: 100, maxGroups: 100, maxDepth: 100, groupSeq: 1}
	for _, opt := range opts {
		opt(st)
	}

	group, err := st.buildGroup(&wg, 0, 0)
	if err != nil {
		return nil, err
	}
	return &condition.Condition{FieldSet: fs, Root: group}, nil
}

type decodeState struct {
	fs        fieldset.FieldSet
	maxValues int
	maxGroups int
	maxDepth  int
	groupSeq  int
}

func (s *decodeState) buildGroup(w *wireGroup, level, groupIdx int) (*condition.ValuesGroup, error) {
	logical := condition.LogicalAnd
	if w.Logical == string(condition.LogicalOr) {
		logical = condition.LogicalOr
	}
	group := condition.NewValuesGroup(logical)

	for _, wf := range w.Fields {
		if err := s.applyField(group, wf, groupIdx, level); err != nil {
			return nil, err
		}
	}

	for i := range w.Groups {
		gidx := s.groupSeq
		s.groupSeq++
		newLevel := level + 1
		if newLevel > s.maxDepth {
			return nil, &conderr.GroupsNestingError{Max: s.maxDepth, GroupIdx: gidx, Level: newLevel}
		}
		child, err := s.buildGroup(&w.Groups[i], newLevel, gidx)
		if err != nil {
			return nil, err
		}
		group.AddGroup(child)
		if len(group.Groups()) > s.maxGroups {
			return nil, &conderr.GroupsOverflowError{Max: s.maxGroups, Current: len(group.Groups()), GroupIdx: groupIdx, Level: level}
		}
	}

	if len(group.Fields()) > 0 || len(group.Groups()) > 0 {
		for _, cfg := range s.fs.All() {
			if cfg.IsRequired() && !group.HasField(cfg.Name()) {
				return nil, &conderr.FieldRequiredError{FieldName: cfg.Name(), GroupIdx: groupIdx, Level: level}
			}
		}
	}

	return group, nil
}

func (s *decodeState) applyField(group *condition.ValuesGroup, wf wireField, groupIdx, level int) error {
	if !s.fs.Has(wf.Name) {
		return &conderr.UnknownFieldError{FieldName: wf.Name}
	}
	cfg, _ := s.fs.Get(wf.Name)

	bag, exists := group.GetField(wf.Name)
	if !exists {
		bag = condition.NewValuesBag()
		group.AddField(wf.Name, bag)
	}

	for _, v := range wf.Singles {
		bag.AddSingle(condition.NewSingleValue(v))
		if err := s.checkOverflow(bag, wf.Name, groupIdx, level); err != nil {
			return err
		}
	}
	for _, v := range wf.ExcludedSingles {
		bag.AddExcludedSingle(condition.NewSingleValue(v))
		if err := s.checkOverflow(bag, wf.Name, groupIdx, level); err != nil {
			return err
		}
	}

	if len(wf.Ranges) > 0 || len(wf.ExcludedRanges) > 0 {
		if !cfg.AcceptRanges() {
			return &conderr.UnsupportedValueTypeError{FieldName: wf.Name, ValueType: "range"}
		}
	}
	for _, r := range wf.Ranges {
		bag.AddRange(wireRangeToRange(r))
		if err := s.checkOverflow(bag, wf.Name, groupIdx, level); err != nil {
			return err
		}
	}
	for _, r := range wf.ExcludedRanges {
		bag.AddExcludedRange(wireRangeToRange(r))
		if err := s.checkOverflow(bag, wf.Name, groupIdx, level); err != nil {
			return err
		}
	}

	if len(wf.Comparisons) > 0 && !cfg.AcceptCompares() {
		return &conderr.UnsupportedValueTypeError{FieldName: wf.Name, ValueType: "comparison"}
	}
	for _, c := range wf.Comparisons {
		op, err := parseWireOperator(c.Operator)
		if err != nil {
			return &conderr.InputProcessorError{Message: fmt.Sprintf("field %q has an invalid comparison operator", wf.Name), Err: err}
		}
		bag.AddComparison(condition.Comparison{Operand: condition.NewSingleValue(c.Value), Operator: op})
		if err := s.checkOverflow(bag, wf.Name, groupIdx, level); err != nil {
			return err
		}
	}

	if len(wf.PatternMatchers) > 0 && !cfg.AcceptPatternMatch() {
		return &conderr.UnsupportedValueTypeError{FieldName: wf.Name, ValueType: "pattern-match"}
	}
	for _, p := range wf.PatternMatchers {
		kind, err := parseWirePatternKind(p.Kind)
		if err != nil {
			return &conderr.InputProcessorError{Message: fmt.Sprintf("field %q has an invalid pattern-match type", wf.Name), Err: err}
		}
		bag.AddPatternMatch(condition.PatternMatch{
			Pattern: condition.NewSingleValue(p.Value), Kind: kind, CaseInsensitive: p.CaseInsensitive,
		})
		if err := s.checkOverflow(bag, wf.Name, groupIdx, level); err != nil {
			return err
		}
	}

	return nil
}

func wireRangeToRange(r wireRange) condition.Range {
	return condition.Range{
		Lower: condition.NewSingleValue(r.Lower), Upper: condition.NewSingleValue(r.Upper),
		LowerInclusive: r.LowerInclusive, UpperInclusive: r.UpperInclusive,
	}
}

func (s *decodeState) checkOverflow(bag *condition.ValuesBag, fieldName string, groupIdx, level int) error {
	if bag.Count() > s.maxValues {
		return &conderr.ValuesOverflowError{FieldName: fieldName, Max: s.maxValues, Current: bag.Count(), GroupIdx: groupIdx, Level: level}
	}
	return nil
}
