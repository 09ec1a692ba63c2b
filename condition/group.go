package condition

// LogicalMode is the boolean combinator a ValuesGroup applies across its
// fields and subgroups.
type LogicalMode string

const (
	LogicalAnd LogicalMode = "AND"
	LogicalOr  LogicalMode = "OR"
)

// FieldEntry pairs a field name with its bag, in the order Fields()
// reports them.
type FieldEntry struct {
	Name string
	Bag  *ValuesBag
}

// ValuesGroup is a condition-tree node (C3): a field-name-to-bag mapping,
// an ordered sequence of subgroups, and a logical mode. A group owns its
// bags and subgroups exclusively.
type ValuesGroup struct {
	fieldOrder []string
	fields     map[string]*ValuesBag
	subgroups  []*ValuesGroup
	logical    LogicalMode
}

// NewValuesGroup creates an empty group with the given logical mode.
func NewValuesGroup(logical LogicalMode) *ValuesGroup {
	return &ValuesGroup{
		fields:  make(map[string]*ValuesBag),
		logical: logical,
	}
}

// AddField installs bag under name, replacing any bag previously installed
// under the same name. Callers that want a merge (as the parser does when a
// field repeats within a group) must read the existing bag with GetField,
// mutate it, and write it back — AddField itself never merges.
func (g *ValuesGroup) AddField(name string, bag *ValuesBag) {
	if _, exists := g.fields[name]; !exists {
		g.fieldOrder = append(g.fieldOrder, name)
	}
	g.fields[name] = bag
}

// GetField returns the bag installed under name, if any.
func (g *ValuesGroup) GetField(name string) (*ValuesBag, bool) {
	b, ok := g.fields[name]
	return b, ok
}

// HasField reports whether a bag is installed under name.
func (g *ValuesGroup) HasField(name string) bool {
	_, ok := g.fields[name]
	return ok
}

// Fields returns the group's fields in insertion order.
func (g *ValuesGroup) Fields() []FieldEntry {
	out := make([]FieldEntry, 0, len(g.fieldOrder))
	for _, name := range g.fieldOrder {
		out = append(out, FieldEntry{Name: name, Bag: g.fields[name]})
	}
	return out
}

// AddGroup appends child to the group's ordered subgroup sequence.
func (g *ValuesGroup) AddGroup(child *ValuesGroup) {
	g.subgroups = append(g.subgroups, child)
}

// Groups returns the group's subgroups in insertion order.
func (g *ValuesGroup) Groups() []*ValuesGroup {
	out := make([]*ValuesGroup, len(g.subgroups))
	copy(out, g.subgroups)
	return out
}

// SetLogical sets the group's logical combinator.
func (g *ValuesGroup) SetLogical(mode LogicalMode) { g.logical = mode }

// GetLogical returns the group's logical combinator.
func (g *ValuesGroup) GetLogical() LogicalMode { return g.logical }

// HasErrors reports whether this group or any descendant subgroup has an
// error on one of its bags.
func (g *ValuesGroup) HasErrors() bool {
	for _, name := range g.fieldOrder {
		if g.fields[name].HasErrors() {
			return true
		}
	}
	for _, sub := range g.subgroups {
		if sub.HasErrors() {
			return true
		}
	}
	return false
}
