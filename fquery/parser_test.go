package fquery

import (
	"errors"
	"testing"

	"github.com/hugr-lab/condql/conderr"
	"github.com/hugr-lab/condql/condition"
	"github.com/hugr-lab/condql/fieldset"
)

func testFieldSet() fieldset.FieldSet {
	return fieldset.NewStatic(
		fieldset.NewFieldBuilder("field1").
			AcceptRanges().AcceptCompares().AcceptPatternMatch().Build(),
		fieldset.NewFieldBuilder("field2").Build(),
	)
}

func testFieldSetWithRequired() fieldset.FieldSet {
	return fieldset.NewStatic(
		fieldset.NewFieldBuilder("field1").
			AcceptRanges().AcceptCompares().AcceptPatternMatch().Build(),
		fieldset.NewFieldBuilder("field2").Build(),
		fieldset.NewFieldBuilder("required1").Required().Build(),
	)
}

func mustParse(t *testing.T, input string, opts ...Option) *condition.Condition {
	t.Helper()
	c, err := NewParser(testFieldSet(), opts...).Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", input, err)
	}
	return c
}

func TestParse_EmptyInputReturnsNilCondition(t *testing.T) {
	c, err := NewParser(testFieldSet()).Parse("   ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != nil {
		t.Fatalf("condition = %v, want nil", c)
	}
}

func TestParse_SimpleValues(t *testing.T) {
	c := mustParse(t, "field1: value, value2;")
	bag, ok := c.Root.GetField("field1")
	if !ok {
		t.Fatal("field1 not present")
	}
	singles := bag.Singles()
	if len(singles) != 2 || singles[0].Raw != "value" || singles[1].Raw != "value2" {
		t.Fatalf("singles = %+v", singles)
	}
}

func TestParse_RangesAndExcludedRanges(t *testing.T) {
	c := mustParse(t, "field1: ]1 - 10[, !15 - 30;")
	bag, _ := c.Root.GetField("field1")

	ranges := bag.Ranges()
	if len(ranges) != 1 {
		t.Fatalf("ranges = %+v", ranges)
	}
	r := ranges[0]
	if r.Lower.Raw != "1" || r.Upper.Raw != "10" || r.LowerInclusive || r.UpperInclusive {
		t.Fatalf("range = %+v, want exclusive both ends 1-10", r)
	}

	excluded := bag.ExcludedRanges()
	if len(excluded) != 1 {
		t.Fatalf("excluded ranges = %+v", excluded)
	}
	er := excluded[0]
	if er.Lower.Raw != "15" || er.Upper.Raw != "30" || !er.LowerInclusive || !er.UpperInclusive {
		t.Fatalf("excluded range = %+v, want inclusive both ends 15-30", er)
	}
}

func TestParse_PatternMatchCaseInsensitiveNegatedContains(t *testing.T) {
	c := mustParse(t, "field1: ~i!*bla")
	bag, _ := c.Root.GetField("field1")
	pms := bag.PatternMatches()
	if len(pms) != 1 {
		t.Fatalf("pattern matches = %+v", pms)
	}
	pm := pms[0]
	if !pm.CaseInsensitive {
		t.Fatal("expected case-insensitive")
	}
	if pm.Kind != condition.PatternNotContains {
		t.Fatalf("kind = %v, want NOT_CONTAINS", pm.Kind)
	}
	if pm.Pattern.Raw != "bla" {
		t.Fatalf("pattern = %q, want bla", pm.Pattern.Raw)
	}
}

func TestParse_PatternMatchRegexQuoted(t *testing.T) {
	c := mustParse(t, `field1: ~?"(\w+|\d+)"`)
	bag, _ := c.Root.GetField("field1")
	pms := bag.PatternMatches()
	if len(pms) != 1 || pms[0].Kind != condition.PatternRegex {
		t.Fatalf("pattern matches = %+v", pms)
	}
	if pms[0].Pattern.Raw != `(\w+|\d+)` {
		t.Fatalf("pattern raw = %q", pms[0].Pattern.Raw)
	}
}

func TestParse_ComparisonOperators(t *testing.T) {
	c := mustParse(t, "field1: <=5, <>7, >=9, <1, >2;")
	bag, _ := c.Root.GetField("field1")
	comps := bag.Comparisons()
	want := []condition.CompareOperator{
		condition.OpLessOrEqual, condition.OpNotEqual, condition.OpGreaterOrEqual,
		condition.OpLess, condition.OpGreater,
	}
	if len(comps) != len(want) {
		t.Fatalf("comparisons = %+v", comps)
	}
	for i, op := range want {
		if comps[i].Operator != op {
			t.Fatalf("comparison %d operator = %v, want %v", i, comps[i].Operator, op)
		}
	}
}

func TestParse_NestedGroupKeepsSeparateFieldBag(t *testing.T) {
	c := mustParse(t, "field1: value; (field1: v3, v4);")

	rootBag, _ := c.Root.GetField("field1")
	if len(rootBag.Singles()) != 1 {
		t.Fatalf("root field1 singles = %+v", rootBag.Singles())
	}

	groups := c.Root.Groups()
	if len(groups) != 1 {
		t.Fatalf("root groups = %+v", groups)
	}
	childBag, ok := groups[0].GetField("field1")
	if !ok {
		t.Fatal("child group missing field1")
	}
	singles := childBag.Singles()
	if len(singles) != 2 || singles[0].Raw != "v3" || singles[1].Raw != "v4" {
		t.Fatalf("child field1 singles = %+v", singles)
	}
	if c.Root.GetLogical() != condition.LogicalAnd || groups[0].GetLogical() != condition.LogicalAnd {
		t.Fatal("expected AND logical mode on root and child")
	}
}

func TestParse_FieldMergeWithinSameGroup(t *testing.T) {
	c := mustParse(t, "field1: v1; field1: v2;")
	bag, _ := c.Root.GetField("field1")
	singles := bag.Singles()
	if len(singles) != 2 || singles[0].Raw != "v1" || singles[1].Raw != "v2" {
		t.Fatalf("merged singles = %+v", singles)
	}
}

func TestParse_TopLevelOrGroup(t *testing.T) {
	// A "*(...)​;" spanning the whole input promotes the group's own
	// logical mode onto the root, rather than nesting it one level deeper
	// under an implicit AND root — see the comment in Parser.Parse.
	c := mustParse(t, "*(field1: value, value2);")
	if c.Root.GetLogical() != condition.LogicalOr {
		t.Fatalf("root logical = %v, want OR", c.Root.GetLogical())
	}
	if len(c.Root.Groups()) != 0 {
		t.Fatalf("root groups = %+v, want none", c.Root.Groups())
	}
	bag, ok := c.Root.GetField("field1")
	if !ok || len(bag.Singles()) != 2 {
		t.Fatalf("root field1 bag = %+v", bag)
	}
}

func TestParse_WrappedAndGroupPromotedToRoot(t *testing.T) {
	// A plain "(...)​;" wrapping the whole input behaves the same way for
	// AND, even though it is indistinguishable from an unwrapped input:
	// the parenthesized group becomes the root rather than a subgroup.
	c := mustParse(t, "(field1: value);")
	if c.Root.GetLogical() != condition.LogicalAnd {
		t.Fatalf("root logical = %v, want AND", c.Root.GetLogical())
	}
	if len(c.Root.Groups()) != 0 {
		t.Fatalf("root groups = %+v, want none", c.Root.Groups())
	}
	if _, ok := c.Root.GetField("field1"); !ok {
		t.Fatal("root missing field1")
	}
}

func TestParse_NestingDepthExceeded(t *testing.T) {
	_, err := NewParser(testFieldSet(), WithMaxDepth(1)).Parse("((field1: v))")
	var nestErr *conderr.GroupsNestingError
	if !errors.As(err, &nestErr) {
		t.Fatalf("error = %v, want *conderr.GroupsNestingError", err)
	}
	if nestErr.Max != 1 || nestErr.Level != 2 {
		t.Fatalf("nestErr = %+v, want Max=1 Level=2", nestErr)
	}
}

func TestParse_ValuesOverflow(t *testing.T) {
	_, err := NewParser(testFieldSet(), WithMaxValues(2)).Parse("field1: a, b, c;")
	var overflow *conderr.ValuesOverflowError
	if !errors.As(err, &overflow) {
		t.Fatalf("error = %v, want *conderr.ValuesOverflowError", err)
	}
	if overflow.FieldName != "field1" || overflow.Max != 2 || overflow.Current != 3 {
		t.Fatalf("overflow = %+v", overflow)
	}
}

func TestParse_GroupsOverflow(t *testing.T) {
	_, err := NewParser(testFieldSet(), WithMaxGroups(1)).Parse("(field1: a); (field1: b);")
	var overflow *conderr.GroupsOverflowError
	if !errors.As(err, &overflow) {
		t.Fatalf("error = %v, want *conderr.GroupsOverflowError", err)
	}
	if overflow.Max != 1 || overflow.Current != 2 {
		t.Fatalf("overflow = %+v", overflow)
	}
}

func TestParse_UnknownField(t *testing.T) {
	_, err := NewParser(testFieldSet()).Parse("nope: value;")
	var unknown *conderr.UnknownFieldError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %v, want *conderr.UnknownFieldError", err)
	}
	if unknown.FieldName != "nope" {
		t.Fatalf("unknown.FieldName = %q, want nope", unknown.FieldName)
	}
}

func TestParse_UnsupportedValueType(t *testing.T) {
	_, err := NewParser(testFieldSet()).Parse("field2: ]1-10[;")
	var unsupported *conderr.UnsupportedValueTypeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("error = %v, want *conderr.UnsupportedValueTypeError", err)
	}
	if unsupported.FieldName != "field2" || unsupported.ValueType != "range" {
		t.Fatalf("unsupported = %+v", unsupported)
	}
}

func TestParse_RequiredFieldMissing(t *testing.T) {
	_, err := NewParser(testFieldSetWithRequired()).Parse("field1: value;")
	var required *conderr.FieldRequiredError
	if !errors.As(err, &required) {
		t.Fatalf("error = %v, want *conderr.FieldRequiredError", err)
	}
	if required.FieldName != "required1" {
		t.Fatalf("required.FieldName = %q, want required1", required.FieldName)
	}
}

func TestParse_SyntaxErrorMessageFormat(t *testing.T) {
	_, err := NewParser(fieldset.NewStatic(
		fieldset.NewFieldBuilder("field1").Build(),
	)).Parse("field1: ;")
	var syn *conderr.SyntaxError
	if !errors.As(err, &syn) {
		t.Fatalf("error = %v, want *conderr.SyntaxError", err)
	}
	want := "line 0, col 8: Error: Expected 'value', got ';'"
	if syn.Error() != want {
		t.Fatalf("syntax error = %q, want %q", syn.Error(), want)
	}
}
