package fquery

import (
	"testing"

	"github.com/hugr-lab/condql/condition"
	"github.com/hugr-lab/condql/docfilter"
)

func TestExport_QuotingRules(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"value", "value"},
		{"value2", "value2"},
		{"123", "123"},
		{"3.14", "3.14"},
		{"-5", `"-5"`},
		{"has space", `"has space"`},
		{"a,b", `"a,b"`},
		{"3,14", `"3,14"`},
		{"already\"quoted", `"already""quoted"`},
		{"", `""`},
		{"محقل", "محقل"},
		{"١٢٣", "١٢٣"},
	}
	for _, tc := range cases {
		got := renderSimpleValue(tc.raw)
		if got != tc.want {
			t.Errorf("renderSimpleValue(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestExport_RoundTripSimpleValues(t *testing.T) {
	fs := testFieldSet()
	input := "field1: value, value2;"
	c := mustParse(t, input)
	got := NewExporter().Export(c)
	want := "field1: value, value2;"
	if got != want {
		t.Fatalf("Export() = %q, want %q", got, want)
	}

	// Re-parsing the exported text must reproduce an equivalent tree.
	c2, err := NewParser(fs).Parse(got)
	if err != nil {
		t.Fatalf("re-parse error: %v", err)
	}
	bag, _ := c2.Root.GetField("field1")
	if len(bag.Singles()) != 2 {
		t.Fatalf("re-parsed singles = %+v", bag.Singles())
	}
}

func TestExport_RangeBracketRendering(t *testing.T) {
	c := mustParse(t, "field1: ]1 - 10[, !15 - 30;")
	got := NewExporter().Export(c)
	want := "field1: ]1-10[, !15-30;"
	if got != want {
		t.Fatalf("Export() = %q, want %q", got, want)
	}
}

func TestExport_PatternMatchRendering(t *testing.T) {
	c := mustParse(t, "field1: ~i!*bla")
	got := NewExporter().Export(c)
	want := "field1: ~i!*bla;"
	if got != want {
		t.Fatalf("Export() = %q, want %q", got, want)
	}
}

func TestExport_NestedOrGroup(t *testing.T) {
	c := mustParse(t, "field1: value; *(field1: v3, v4);")
	got := NewExporter().Export(c)
	want := "field1: value;*(field1: v3, v4;);"
	if got != want {
		t.Fatalf("Export() = %q, want %q", got, want)
	}
}

func TestExport_RootOrGroupRoundTrip(t *testing.T) {
	fs := testFieldSet()
	c := condition.New(fs)
	c.Root.SetLogical(condition.LogicalOr)
	bag := condition.NewValuesBag()
	bag.AddSingle(condition.NewSingleValue("value"))
	bag.AddSingle(condition.NewSingleValue("value2"))
	c.Root.AddField("field1", bag)

	got := NewExporter().Export(c)
	want := "*(field1: value, value2;);"
	if got != want {
		t.Fatalf("Export() = %q, want %q", got, want)
	}

	c2, err := NewParser(fs).Parse(got)
	if err != nil {
		t.Fatalf("re-parse error: %v", err)
	}
	if c2.Root.GetLogical() != condition.LogicalOr {
		t.Fatalf("re-parsed root logical = %v, want OR", c2.Root.GetLogical())
	}
	if len(c2.Root.Groups()) != 0 {
		t.Fatalf("re-parsed root groups = %+v, want none", c2.Root.Groups())
	}
	rebag, ok := c2.Root.GetField("field1")
	if !ok || len(rebag.Singles()) != 2 {
		t.Fatalf("re-parsed field1 bag = %+v", rebag)
	}
}

// TestExport_CrossCodecRootOrRoundTrip ingests a document whose root logical
// mode is OR, exports it to FilterQuery text, and re-parses that text — the
// root must still be OR on the far side. docfilter/docfilter_test.go and
// condwire/condwire_test.go only ever exercise OR at subgroup level; this is
// the analogous check for the root itself.
func TestExport_CrossCodecRootOrRoundTrip(t *testing.T) {
	fs := testFieldSet()
	doc := `{
		"logical": "OR",
		"fields": {"field1": {"single-values": ["x", "y"]}}
	}`
	c, err := docfilter.NewIngester(fs).DecodeJSON([]byte(doc))
	if err != nil {
		t.Fatalf("DecodeJSON error = %v", err)
	}
	if c.Root.GetLogical() != condition.LogicalOr {
		t.Fatalf("ingested root logical = %v, want OR", c.Root.GetLogical())
	}

	fq := NewExporter().Export(c)

	c2, err := NewParser(fs).Parse(fq)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", fq, err)
	}
	if c2.Root.GetLogical() != condition.LogicalOr {
		t.Fatalf("re-parsed root logical = %v, want OR (fq = %q)", c2.Root.GetLogical(), fq)
	}
	bag, ok := c2.Root.GetField("field1")
	if !ok || len(bag.Singles()) != 2 || bag.Singles()[0].Raw != "x" || bag.Singles()[1].Raw != "y" {
		t.Fatalf("re-parsed field1 bag = %+v", bag)
	}
}

func TestExport_LabelResolver(t *testing.T) {
	c := mustParse(t, "field1: value;")
	exp := NewExporter(WithLabelResolver(func(field string) string {
		if field == "field1" {
			return "Field One"
		}
		return ""
	}))
	got := exp.Export(c)
	want := "Field One: value;"
	if got != want {
		t.Fatalf("Export() = %q, want %q", got, want)
	}
}

func TestExport_NilConditionIsEmptyString(t *testing.T) {
	if got := NewExporter().Export(nil); got != "" {
		t.Fatalf("Export(nil) = %q, want empty", got)
	}
	empty := &condition.Condition{}
	if got := NewExporter().Export(empty); got != "" {
		t.Fatalf("Export(empty) = %q, want empty", got)
	}
}
