package condition

import "testing"

func TestValuesGroup_AddFieldPreservesInsertionOrder(t *testing.T) {
	g := NewValuesGroup(LogicalAnd)
	g.AddField("b", NewValuesBag())
	g.AddField("a", NewValuesBag())
	g.AddField("b", NewValuesBag())

	entries := g.Fields()
	if len(entries) != 2 {
		t.Fatalf("Fields() = %+v, want 2 entries (b re-added, not duplicated)", entries)
	}
	if entries[0].Name != "b" || entries[1].Name != "a" {
		t.Fatalf("Fields() order = %+v, want [b a] (first-seen order)", entries)
	}
}

func TestValuesGroup_GetFieldAndHasField(t *testing.T) {
	g := NewValuesGroup(LogicalAnd)
	if g.HasField("x") {
		t.Fatal("empty group should not have field x")
	}
	bag := NewValuesBag()
	g.AddField("x", bag)
	got, ok := g.GetField("x")
	if !ok || got != bag {
		t.Fatalf("GetField(x) = %+v, %v", got, ok)
	}
}

func TestValuesGroup_GroupsReturnsCopy(t *testing.T) {
	g := NewValuesGroup(LogicalAnd)
	child := NewValuesGroup(LogicalOr)
	g.AddGroup(child)

	got := g.Groups()
	got[0] = NewValuesGroup(LogicalAnd)
	if g.Groups()[0] != child {
		t.Fatal("mutating the returned slice should not affect the group's own subgroups")
	}
}

func TestValuesGroup_HasErrorsChecksFieldsAndSubgroups(t *testing.T) {
	root := NewValuesGroup(LogicalAnd)
	if root.HasErrors() {
		t.Fatal("empty group should not have errors")
	}

	child := NewValuesGroup(LogicalOr)
	childBag := NewValuesBag()
	childBag.AddError(errString("bad"))
	child.AddField("f", childBag)
	root.AddGroup(child)

	if !root.HasErrors() {
		t.Fatal("HasErrors should recurse into subgroups")
	}
}

func TestValuesGroup_SetAndGetLogical(t *testing.T) {
	g := NewValuesGroup(LogicalAnd)
	if g.GetLogical() != LogicalAnd {
		t.Fatalf("GetLogical() = %v, want AND", g.GetLogical())
	}
	g.SetLogical(LogicalOr)
	if g.GetLogical() != LogicalOr {
		t.Fatalf("GetLogical() = %v, want OR", g.GetLogical())
	}
}
