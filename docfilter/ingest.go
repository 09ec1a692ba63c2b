package docfilter

import (
	"github.com/hugr-lab/condql/conderr"
	"github.com/hugr-lab/condql/condition"
	"github.com/hugr-lab/condql/fieldset"
)

// IngestOption configures an Ingester's limits.
type IngestOption func(*Ingester)

// WithMaxValues sets the per-bag value count limit (default 100).
func WithMaxValues(n int) IngestOption { return func(i *Ingester) { i.maxValues = n } }

// WithMaxGroups sets the per-group direct-subgroup count limit (default 100).
func WithMaxGroups(n int) IngestOption { return func(i *Ingester) { i.maxGroups = n } }

// WithMaxDepth sets the maximum group nesting depth (default 100).
func WithMaxDepth(n int) IngestOption { return func(i *Ingester) { i.maxDepth = n } }

// Ingester decodes a structured document into a Condition, applying the
// same acceptance, limit, and required-field invariants as the
// FilterQuery parser.
type Ingester struct {
	fs        fieldset.FieldSet
	maxValues int
	maxGroups int
	maxDepth  int
}

// NewIngester creates an Ingester bound to fs.
func NewIngester(fs fieldset.FieldSet, opts ...IngestOption) *Ingester {
	in := &Ingester{fs: fs, maxValues: 100, maxGroups: 100, maxDepth: 100}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// DecodeJSON parses a JSON structured document (§4.7) into a Condition.
func (in *Ingester) DecodeJSON(data []byte) (*condition.Condition, error) {
	doc, err := decodeJSONDocument(data)
	if err != nil {
		return nil, &conderr.InputProcessorError{Message: "invalid JSON document", Err: err}
	}
	raw := doc.toRaw()
	return in.build(&raw)
}

// DecodeXML parses an XML structured document (§6) into a Condition.
func (in *Ingester) DecodeXML(data []byte) (*condition.Condition, error) {
	doc, err := decodeXMLDocument(data)
	if err != nil {
		return nil, &conderr.InputProcessorError{Message: "invalid XML document", Err: err}
	}
	raw := doc.toRaw()
	return in.build(&raw)
}

func (in *Ingester) build(root *rawGroup) (*condition.Condition, error) {
	st := &ingestState{fs: in.fs, maxValues: in.maxValues, maxGroups: in.maxGroups, maxDepth: in.maxDepth, groupSeq: 1}
	group, err := st.buildGroup(root, 0, 0)
	if err != nil {
		return nil, err
	}
	return &condition.Condition{FieldSet: in.fs, Root: group}, nil
}

type ingestState struct {
	fs        fieldset.FieldSet
	maxValues int
	maxGroups int
	maxDepth  int
	groupSeq  int
}

func (s *ingestState) buildGroup(raw *rawGroup, level, groupIdx int) (*condition.ValuesGroup, error) {
	logical := condition.LogicalAnd
	if raw.logical == string(condition.LogicalOr) {
		logical = condition.LogicalOr
	}
	group := condition.NewValuesGroup(logical)

	for _, rf := range raw.fields {
		if err := s.applyField(group, rf, groupIdx, level); err != nil {
			return nil, err
		}
	}

	for i := range raw.groups {
		gidx := s.groupSeq
		s.groupSeq++
		newLevel := level + 1
		if newLevel > s.maxDepth {
			return nil, &conderr.GroupsNestingError{Max: s.maxDepth, GroupIdx: gidx, Level: newLevel}
		}
		child, err := s.buildGroup(&raw.groups[i], newLevel, gidx)
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

func (s *ingestState) applyField(group *condition.ValuesGroup, rf rawField, groupIdx, level int) error {
	if !s.fs.Has(rf.name) {
		return &conderr.UnknownFieldError{FieldName: rf.name}
	}
	cfg, _ := s.fs.Get(rf.name)

	bag, exists := group.GetField(rf.name)
	if !exists {
		bag = condition.NewValuesBag()
		group.AddField(rf.name, bag)
	}

	for _, v := range rf.singles {
		bag.AddSingle(condition.NewSingleValue(v))
		if err := s.checkOverflow(bag, rf.name, groupIdx, level); err != nil {
			return err
		}
	}
	for _, v := range rf.excludedSingles {
		bag.AddExcludedSingle(condition.NewSingleValue(v))
		if err := s.checkOverflow(bag, rf.name, groupIdx, level); err != nil {
			return err
		}
	}

	if len(rf.ranges) > 0 || len(rf.excludedRanges) > 0 {
		if !cfg.AcceptRanges() {
			return &conderr.UnsupportedValueTypeError{FieldName: rf.name, ValueType: "range"}
		}
	}
	for _, r := range rf.ranges {
		bag.AddRange(rawRangeToRange(r))
		if err := s.checkOverflow(bag, rf.name, groupIdx, level); err != nil {
			return err
		}
	}
	for _, r := range rf.excludedRanges {
		bag.AddExcludedRange(rawRangeToRange(r))
		if err := s.checkOverflow(bag, rf.name, groupIdx, level); err != nil {
			return err
		}
	}

	if len(rf.comparisons) > 0 && !cfg.AcceptCompares() {
		return &conderr.UnsupportedValueTypeError{FieldName: rf.name, ValueType: "comparison"}
	}
	for _, c := range rf.comparisons {
		op, err := parseOperator(c.operator)
		if err != nil {
			return &conderr.InputProcessorError{Message: "field " + rf.name + " has an invalid comparison operator", Err: err}
		}
		bag.AddComparison(condition.Comparison{Operand: condition.NewSingleValue(c.value), Operator: op})
		if err := s.checkOverflow(bag, rf.name, groupIdx, level); err != nil {
			return err
		}
	}

	if len(rf.patternMatchers) > 0 && !cfg.AcceptPatternMatch() {
		return &conderr.UnsupportedValueTypeError{FieldName: rf.name, ValueType: "pattern-match"}
	}
	for _, p := range rf.patternMatchers {
		kind, err := parsePatternKind(p.kind)
		if err != nil {
			return &conderr.InputProcessorError{Message: "field " + rf.name + " has an invalid pattern-match type", Err: err}
		}
		bag.AddPatternMatch(condition.PatternMatch{
			Pattern: condition.NewSingleValue(p.value), Kind: kind, CaseInsensitive: p.caseInsensitive,
		})
		if err := s.checkOverflow(bag, rf.name, groupIdx, level); err != nil {
			return err
		}
	}

	return nil
}

func rawRangeToRange(r rawRange) condition.Range {
	return condition.Range{
		Lower:          condition.NewSingleValue(r.lower),
		Upper:          condition.NewSingleValue(r.upper),
		LowerInclusive: r.lowerInclusive,
		UpperInclusive: r.upperInclusive,
	}
}

func (s *ingestState) checkOverflow(bag *condition.ValuesBag, fieldName string, groupIdx, level int) error {
	if bag.Count() > s.maxValues {
		return &conderr.ValuesOverflowError{FieldName: fieldName, Max: s.maxValues, Current: bag.Count(), GroupIdx: groupIdx, Level: level}
	}
	return nil
}
