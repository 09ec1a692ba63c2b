// Package condbuild is a fluent, programmatic alternative to parsing
// FilterQuery text or a structured document: a caller who already has
// values in hand (from a web form, a saved search, generated code) builds
// a condition tree directly. Unlike the FilterQuery parser and the
// structured-document ingester, the builder trusts its caller — it still
// enforces the field set's acceptance rules (unknown field, unsupported
// value kind) but has no lexer/limits to enforce, since there is no
// surface syntax to bound.
package condbuild

import (
	"github.com/hugr-lab/condql/conderr"
	"github.com/hugr-lab/condql/condition"
	"github.com/hugr-lab/condql/fieldset"
)

// ConditionBuilder builds a condition tree one field or nested group at a
// time. It holds an explicit stack of in-progress groups rather than a
// parent back-pointer on each frame: create pushes the root, group()
// pushes a child, and end() pops — the stack is the single source of
// truth for "what group is currently being built", so a builder can be
// walked or reset without chasing pointers through completed frames.
type ConditionBuilder struct {
	fs    fieldset.FieldSet
	stack []*condition.ValuesGroup
	err   error
}

// Create starts building a condition over fs, with an empty AND root
// group.
func Create(fs fieldset.FieldSet) *ConditionBuilder {
	root := condition.NewValuesGroup(condition.LogicalAnd)
	return &ConditionBuilder{fs: fs, stack: []*condition.ValuesGroup{root}}
}

func (b *ConditionBuilder) current() *condition.ValuesGroup {
	return b.stack[len(b.stack)-1]
}

// SetLogical sets the logical combinator of the group currently being
// built.
func (b *ConditionBuilder) SetLogical(mode condition.LogicalMode) *ConditionBuilder {
	b.current().SetLogical(mode)
	return b
}

// Field starts (or resumes) building values for name in the current
// group. By default, a repeated call to Field with the same name resumes
// the existing bag, merging further values into it — the same merge
// behavior the FilterQuery parser applies to a repeated field within one
// group. Pass forceNew=true to instead discard any existing bag and start
// a fresh one.
func (b *ConditionBuilder) Field(name string, forceNew ...bool) *ValuesBuilder {
	if b.err != nil {
		return &ValuesBuilder{parent: b, fieldName: name}
	}
	if !b.fs.Has(name) {
		b.err = &conderr.UnknownFieldError{FieldName: name}
		return &ValuesBuilder{parent: b, fieldName: name}
	}
	cfg, _ := b.fs.Get(name)

	group := b.current()
	fresh := len(forceNew) > 0 && forceNew[0]
	bag, exists := group.GetField(name)
	if !exists || fresh {
		bag = condition.NewValuesBag()
		group.AddField(name, bag)
	}

	return &ValuesBuilder{parent: b, fieldName: name, cfg: cfg, bag: bag}
}

// Group starts a nested subgroup of the current group with the given
// logical mode (AND when omitted), returning a builder scoped to it. Call
// End on the returned builder to return to this outer builder.
func (b *ConditionBuilder) Group(logical ...condition.LogicalMode) *ConditionBuilder {
	mode := condition.LogicalAnd
	if len(logical) > 0 {
		mode = logical[0]
	}
	child := condition.NewValuesGroup(mode)
	if b.err == nil {
		b.current().AddGroup(child)
	}
	return &ConditionBuilder{fs: b.fs, stack: append(append([]*condition.ValuesGroup{}, b.stack...), child), err: b.err}
}

// End pops the current group and returns the outer builder that opened it
// via Group. Calling End on the root builder is a no-op that returns the
// same builder, mirroring getCondition()'s tolerance of an unbalanced
// caller.
func (b *ConditionBuilder) End() *ConditionBuilder {
	if len(b.stack) <= 1 {
		return b
	}
	return &ConditionBuilder{fs: b.fs, stack: b.stack[:len(b.stack)-1], err: b.err}
}

// GetCondition finalizes the builder into a Condition rooted at the
// bottom of the stack, regardless of how deep the caller's cursor
// currently is. It returns any UnknownFieldError/UnsupportedValueTypeError
// recorded during building.
func (b *ConditionBuilder) GetCondition() (*condition.Condition, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &condition.Condition{FieldSet: b.fs, Root: b.stack[0]}, nil
}
