package condition

import "testing"

func TestValuesBag_AddAndRetrieve(t *testing.T) {
	bag := NewValuesBag()
	bag.AddSingle(SingleValue{Raw: "a"})
	bag.AddSingle(SingleValue{Raw: "b"})
	bag.AddRange(Range{Lower: SingleValue{Raw: "1"}, Upper: SingleValue{Raw: "10"}})

	if got := bag.Singles(); len(got) != 2 || got[0].Raw != "a" || got[1].Raw != "b" {
		t.Fatalf("Singles() = %+v", got)
	}
	if got := bag.Ranges(); len(got) != 1 {
		t.Fatalf("Ranges() = %+v", got)
	}
	if bag.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", bag.Count())
	}
}

func TestValuesBag_RemoveAtKeepsSiblingIndicesStable(t *testing.T) {
	bag := NewValuesBag()
	bag.AddSingle(SingleValue{Raw: "a"})
	bag.AddSingle(SingleValue{Raw: "b"})
	bag.AddSingle(SingleValue{Raw: "c"})

	bag.RemoveSingle(1)
	if v, ok := bag.SingleAt(0); !ok || v.Raw != "a" {
		t.Fatalf("SingleAt(0) = %+v, %v", v, ok)
	}
	if _, ok := bag.SingleAt(1); ok {
		t.Fatal("SingleAt(1) should be removed")
	}
	if v, ok := bag.SingleAt(2); !ok || v.Raw != "c" {
		t.Fatalf("SingleAt(2) = %+v, %v, want c to survive at index 2", v, ok)
	}
	if got := bag.Singles(); len(got) != 2 || got[0].Raw != "a" || got[1].Raw != "c" {
		t.Fatalf("Singles() = %+v", got)
	}
}

func TestValuesBag_CompactRenumbersSurvivors(t *testing.T) {
	bag := NewValuesBag()
	bag.AddSingle(SingleValue{Raw: "a"})
	bag.AddSingle(SingleValue{Raw: "b"})
	bag.AddSingle(SingleValue{Raw: "c"})
	bag.RemoveSingle(0)
	bag.Compact()

	if v, ok := bag.SingleAt(0); !ok || v.Raw != "b" {
		t.Fatalf("after compact, SingleAt(0) = %+v, %v, want b", v, ok)
	}
	if v, ok := bag.SingleAt(1); !ok || v.Raw != "c" {
		t.Fatalf("after compact, SingleAt(1) = %+v, %v, want c", v, ok)
	}
}

func TestValuesBag_ReplaceSinglesSwapsWholeSequence(t *testing.T) {
	bag := NewValuesBag()
	bag.AddSingle(SingleValue{Raw: "a"})
	bag.AddSingle(SingleValue{Raw: "b"})
	bag.ReplaceSingles([]SingleValue{{Raw: "x"}})

	got := bag.Singles()
	if len(got) != 1 || got[0].Raw != "x" {
		t.Fatalf("Singles() = %+v", got)
	}
}

func TestValuesBag_ErrorsAccumulate(t *testing.T) {
	bag := NewValuesBag()
	if bag.HasErrors() {
		t.Fatal("new bag should not have errors")
	}
	bag.AddError(errString("boom"))
	if !bag.HasErrors() || len(bag.Errors()) != 1 {
		t.Fatalf("HasErrors/Errors after AddError: %v, %v", bag.HasErrors(), bag.Errors())
	}
}

type errString string

func (e errString) Error() string { return string(e) }
