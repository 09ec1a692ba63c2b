package normalize

import (
	"github.com/hugr-lab/condql/condition"
	"github.com/hugr-lab/condql/fieldset"
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithValuesToRange enables the optional values-to-range coalescing pass.
// It is off by default: coalescing is only meaningful for fields whose
// FieldConfig implements fieldset.SuccessorProvider, and applying it
// unconditionally would surprise fields that never asked for it.
func WithValuesToRange() Option {
	return func(p *Pipeline) { p.valuesToRange = true }
}

// Pipeline runs the fixed normalization chain over a condition tree.
type Pipeline struct {
	valuesToRange bool
}

// New builds a Pipeline with the given options.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the pipeline's passes in order against c, short-circuiting
// as soon as the tree accumulates an error. Passes never reorder fields or
// subgroups; they only mutate bags in place (or replace singles with
// ranges, in the values-to-range pass).
func (p *Pipeline) Run(c *condition.Condition) {
	if c == nil || c.Root == nil {
		return
	}

	walkBags(c.Root, c.FieldSet, transformBag)
	if c.Root.HasErrors() {
		return
	}

	walkBags(c.Root, c.FieldSet, validateBag)
	if c.Root.HasErrors() {
		return
	}

	walkBags(c.Root, c.FieldSet, dedupeBag)
	if c.Root.HasErrors() {
		return
	}

	if p.valuesToRange {
		walkBags(c.Root, c.FieldSet, valuesToRangeBag)
		if c.Root.HasErrors() {
			return
		}
	}

	walkBags(c.Root, c.FieldSet, rangeOptimizeBag)
}

// bagPass is one normalization pass applied to a single field's bag.
type bagPass func(fieldName string, cfg fieldset.FieldConfig, bag *condition.ValuesBag)

// walkBags applies pass to every field bag in the tree, depth-first, then
// compacts each visited bag so the next pass sees dense indices.
func walkBags(g *condition.ValuesGroup, fs fieldset.FieldSet, pass bagPass) {
	for _, fe := range g.Fields() {
		cfg, ok := fs.Get(fe.Name)
		if !ok {
			continue
		}
		pass(fe.Name, cfg, fe.Bag)
		fe.Bag.Compact()
	}
	for _, child := range g.Groups() {
		walkBags(child, fs, pass)
	}
}
