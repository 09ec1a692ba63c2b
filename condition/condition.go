package condition

import "github.com/hugr-lab/condql/fieldset"

// Condition is the triple (field set, root group). The field set is a
// borrowed, read-only collaborator: the Condition never mutates it and
// callers must not mutate it for the Condition's lifetime. The root group
// tree is owned by the Condition.
type Condition struct {
	FieldSet fieldset.FieldSet
	Root     *ValuesGroup
}

// New creates a Condition with an empty AND root group over fs.
func New(fs fieldset.FieldSet) *Condition {
	return &Condition{FieldSet: fs, Root: NewValuesGroup(LogicalAnd)}
}

// HasErrors reports whether the condition's tree carries any accumulated
// bag error.
func (c *Condition) HasErrors() bool {
	if c.Root == nil {
		return false
	}
	return c.Root.HasErrors()
}
