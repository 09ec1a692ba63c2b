package condbuild

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

func TestBuilder_SinglesAndRange(t *testing.T) {
	c, err := Create(testFieldSet()).
		Field("field1").Single("a").Single("b").Range("1", "10").End().
		GetCondition()
	if err != nil {
		t.Fatalf("GetCondition error = %v", err)
	}
	bag, ok := c.Root.GetField("field1")
	if !ok {
		t.Fatal("field1 missing")
	}
	if singles := bag.Singles(); len(singles) != 2 {
		t.Fatalf("singles = %+v", singles)
	}
	if ranges := bag.Ranges(); len(ranges) != 1 || ranges[0].Lower.Raw != "1" || ranges[0].Upper.Raw != "10" {
		t.Fatalf("ranges = %+v", ranges)
	}
}

func TestBuilder_RepeatedFieldMerges(t *testing.T) {
	c, err := Create(testFieldSet()).
		Field("field1").Single("a").End().
		Field("field1").Single("b").End().
		GetCondition()
	if err != nil {
		t.Fatalf("GetCondition error = %v", err)
	}
	bag, _ := c.Root.GetField("field1")
	if singles := bag.Singles(); len(singles) != 2 {
		t.Fatalf("singles = %+v, want merge of both calls", singles)
	}
}

func TestBuilder_ForceNewDiscardsExisting(t *testing.T) {
	c, err := Create(testFieldSet()).
		Field("field1").Single("a").End().
		Field("field1", true).Single("b").End().
		GetCondition()
	if err != nil {
		t.Fatalf("GetCondition error = %v", err)
	}
	bag, _ := c.Root.GetField("field1")
	if singles := bag.Singles(); len(singles) != 1 || singles[0].Raw != "b" {
		t.Fatalf("singles = %+v, want only b", singles)
	}
}

func TestBuilder_NestedGroup(t *testing.T) {
	c, err := Create(testFieldSet()).
		Field("field1").Single("v").End().
		Group(condition.LogicalOr).
		Field("field2").Single("x").End().
		End().
		GetCondition()
	if err != nil {
		t.Fatalf("GetCondition error = %v", err)
	}
	groups := c.Root.Groups()
	if len(groups) != 1 || groups[0].GetLogical() != condition.LogicalOr {
		t.Fatalf("groups = %+v", groups)
	}
	childBag, ok := groups[0].GetField("field2")
	if !ok || len(childBag.Singles()) != 1 {
		t.Fatalf("child field2 bag = %+v", childBag)
	}
}

func TestBuilder_UnknownFieldFailsGetCondition(t *testing.T) {
	_, err := Create(testFieldSet()).
		Field("nope").Single("v").End().
		GetCondition()
	var unknown *conderr.UnknownFieldError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %v, want *conderr.UnknownFieldError", err)
	}
}

func TestBuilder_UnsupportedRangeFailsGetCondition(t *testing.T) {
	_, err := Create(testFieldSet()).
		Field("field2").Range("1", "10").End().
		GetCondition()
	var unsupported *conderr.UnsupportedValueTypeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("error = %v, want *conderr.UnsupportedValueTypeError", err)
	}
}

func TestBuilder_EndAtRootIsNoop(t *testing.T) {
	c, err := Create(testFieldSet()).End().
		Field("field1").Single("v").End().
		GetCondition()
	if err != nil {
		t.Fatalf("GetCondition error = %v", err)
	}
	if _, ok := c.Root.GetField("field1"); !ok {
		t.Fatal("field1 missing after no-op End at root")
	}
}
