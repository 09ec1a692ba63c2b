package fieldset

// staticFieldSet is an immutable, in-memory FieldSet built from a slice of
// FieldConfig. It is the one concrete implementation the core ships,
// mirroring the way the rest of the pack always pairs an externally
// described interface with a minimal in-memory implementation for tests
// and examples.
type staticFieldSet struct {
	order  []string
	fields map[string]FieldConfig
}

// NewStatic builds a FieldSet from an ordered list of field configs.
// Later entries with a duplicate name replace earlier ones but keep the
// earlier position in All().
func NewStatic(fields ...FieldConfig) FieldSet {
	fs := &staticFieldSet{fields: make(map[string]FieldConfig, len(fields))}
	for _, f := range fields {
		name := f.Name()
		if _, exists := fs.fields[name]; !exists {
			fs.order = append(fs.order, name)
		}
		fs.fields[name] = f
	}
	return fs
}

func (fs *staticFieldSet) Has(name string) bool {
	_, ok := fs.fields[name]
	return ok
}

func (fs *staticFieldSet) Get(name string) (FieldConfig, bool) {
	f, ok := fs.fields[name]
	return f, ok
}

func (fs *staticFieldSet) All() []FieldConfig {
	out := make([]FieldConfig, 0, len(fs.order))
	for _, name := range fs.order {
		out = append(out, fs.fields[name])
	}
	return out
}

// StaticFieldConfig is a plain-data FieldConfig, built directly or via
// NewFieldBuilder. It is immutable once handed to NewStatic — there is no
// runtime "locked" flag, unlike the source pattern this generalizes: the
// immutable form is simply never exposed until it is fully built.
type StaticFieldConfig struct {
	FieldName           string
	Required            bool
	Ranges              bool
	Compares            bool
	PatternMatch        bool
	Comparison          ValueComparison
	TransformChain      []Transformer
	FieldOptions        any
	FieldSuccessor      Successor
	FieldValidator      Validator
}

func (f *StaticFieldConfig) Name() string                   { return f.FieldName }
func (f *StaticFieldConfig) IsRequired() bool                { return f.Required }
func (f *StaticFieldConfig) AcceptRanges() bool              { return f.Ranges }
func (f *StaticFieldConfig) AcceptCompares() bool            { return f.Compares }
func (f *StaticFieldConfig) AcceptPatternMatch() bool        { return f.PatternMatch }
func (f *StaticFieldConfig) ValueComparison() ValueComparison { return f.Comparison }
func (f *StaticFieldConfig) Transformers() []Transformer      { return f.TransformChain }
func (f *StaticFieldConfig) Options() any                     { return f.FieldOptions }

// Successor implements SuccessorProvider; it returns nil when
// FieldSuccessor is not set.
func (f *StaticFieldConfig) Successor() Successor { return f.FieldSuccessor }

// Validator implements ValidatorProvider; it returns nil when
// FieldValidator is not set.
func (f *StaticFieldConfig) Validator() Validator { return f.FieldValidator }

// FieldBuilder builds an immutable StaticFieldConfig fluently, replacing
// the source's mutable-then-locked field pattern (Design Notes): there is
// no lock because the immutable value is only ever returned by Build.
type FieldBuilder struct {
	cfg StaticFieldConfig
}

// NewFieldBuilder starts building a field configuration named name.
func NewFieldBuilder(name string) *FieldBuilder {
	return &FieldBuilder{cfg: StaticFieldConfig{FieldName: name}}
}

func (b *FieldBuilder) Required() *FieldBuilder            { b.cfg.Required = true; return b }
func (b *FieldBuilder) AcceptRanges() *FieldBuilder         { b.cfg.Ranges = true; return b }
func (b *FieldBuilder) AcceptCompares() *FieldBuilder       { b.cfg.Compares = true; return b }
func (b *FieldBuilder) AcceptPatternMatch() *FieldBuilder   { b.cfg.PatternMatch = true; return b }
func (b *FieldBuilder) WithComparison(c ValueComparison) *FieldBuilder {
	b.cfg.Comparison = c
	return b
}
func (b *FieldBuilder) WithTransformers(ts ...Transformer) *FieldBuilder {
	b.cfg.TransformChain = append(b.cfg.TransformChain, ts...)
	return b
}
func (b *FieldBuilder) WithOptions(o any) *FieldBuilder { b.cfg.FieldOptions = o; return b }
func (b *FieldBuilder) WithSuccessor(s Successor) *FieldBuilder {
	b.cfg.FieldSuccessor = s
	return b
}
func (b *FieldBuilder) WithValidator(v Validator) *FieldBuilder {
	b.cfg.FieldValidator = v
	return b
}

// Build finalizes the field configuration.
func (b *FieldBuilder) Build() *StaticFieldConfig {
	cfg := b.cfg
	return &cfg
}
