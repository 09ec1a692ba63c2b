package fquery

import (
	"strings"
	"unicode"

	"github.com/hugr-lab/condql/condition"
)

// LabelResolver substitutes a display label for a field's internal name
// during export. It returns "" to fall back to the internal name.
type LabelResolver func(field string) string

// ExportOption configures an Exporter.
type ExportOption func(*Exporter)

// WithLabelResolver installs a LabelResolver used to render field names.
func WithLabelResolver(r LabelResolver) ExportOption {
	return func(e *Exporter) { e.labelResolver = r }
}

// Exporter renders a Condition back to canonical FilterQuery text. Export
// is deterministic: the same tree always renders to the same string,
// following bag order (singles, excluded singles, ranges, excluded
// ranges, comparisons, pattern matches) and field insertion order.
type Exporter struct {
	labelResolver LabelResolver
}

// NewExporter creates an Exporter, optionally configured with a
// LabelResolver.
func NewExporter(opts ...ExportOption) *Exporter {
	e := &Exporter{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export renders c to canonical FilterQuery text. A nil Condition or a
// Condition with a nil root renders to "". The root is written without a
// surrounding [*](...); wrapper when it is an AND group; an OR root is
// wrapped like any other group, since FilterQuery text has no other way to
// carry the root's logical mode. Parse reverses this by promoting the sole
// top-level group of an input that has no top-level field pairs into the
// root, so the wrap round-trips.
func (e *Exporter) Export(c *condition.Condition) string {
	if c == nil || c.Root == nil {
		return ""
	}
	var sb strings.Builder
	root := c.Root
	if root.GetLogical() == condition.LogicalOr {
		e.writeGroup(&sb, root)
	} else {
		e.writeGroupBody(&sb, root)
	}
	return sb.String()
}

func (e *Exporter) writeGroupBody(sb *strings.Builder, g *condition.ValuesGroup) {
	for _, fe := range g.Fields() {
		e.writeFieldPair(sb, fe)
	}
	for _, child := range g.Groups() {
		e.writeGroup(sb, child)
	}
}

func (e *Exporter) writeGroup(sb *strings.Builder, g *condition.ValuesGroup) {
	if g.GetLogical() == condition.LogicalOr {
		sb.WriteByte('*')
	}
	sb.WriteByte('(')
	e.writeGroupBody(sb, g)
	sb.WriteByte(')')
	sb.WriteByte(';')
}

func (e *Exporter) writeFieldPair(sb *strings.Builder, fe condition.FieldEntry) {
	name := fe.Name
	if e.labelResolver != nil {
		if label := e.labelResolver(name); label != "" {
			name = label
		}
	}

	sb.WriteString(name)
	sb.WriteString(": ")

	var parts []string
	bag := fe.Bag
	for _, v := range bag.Singles() {
		parts = append(parts, renderSimpleValue(v.Raw))
	}
	for _, v := range bag.ExcludedSingles() {
		parts = append(parts, "!"+renderSimpleValue(v.Raw))
	}
	for _, r := range bag.Ranges() {
		parts = append(parts, renderRange(r))
	}
	for _, r := range bag.ExcludedRanges() {
		parts = append(parts, "!"+renderRange(r))
	}
	for _, c := range bag.Comparisons() {
		parts = append(parts, renderComparison(c))
	}
	for _, p := range bag.PatternMatches() {
		parts = append(parts, renderPatternMatch(p))
	}

	sb.WriteString(strings.Join(parts, ", "))
	sb.WriteByte(';')
}

func renderRange(r condition.Range) string {
	var sb strings.Builder
	if !r.LowerInclusive {
		sb.WriteByte(']')
	}
	sb.WriteString(renderSimpleValue(r.Lower.Raw))
	sb.WriteByte('-')
	sb.WriteString(renderSimpleValue(r.Upper.Raw))
	if !r.UpperInclusive {
		sb.WriteByte('[')
	}
	return sb.String()
}

func renderComparison(c condition.Comparison) string {
	return string(c.Operator) + renderSimpleValue(c.Operand.Raw)
}

func renderPatternMatch(p condition.PatternMatch) string {
	var sb strings.Builder
	sb.WriteByte('~')
	if p.CaseInsensitive {
		sb.WriteByte('i')
	}

	base := p.Kind
	if p.Kind.Exclusive() {
		base = condition.PatternKind(strings.TrimPrefix(string(p.Kind), "NOT_"))
		sb.WriteByte('!')
	}

	switch base {
	case condition.PatternContains:
		sb.WriteByte('*')
	case condition.PatternStartsWith:
		sb.WriteByte('>')
	case condition.PatternEndsWith:
		sb.WriteByte('<')
	case condition.PatternRegex:
		sb.WriteByte('?')
	}

	sb.WriteString(renderSimpleValue(p.Pattern.Raw))
	return sb.String()
}

// renderSimpleValue quotes raw unless it is already unambiguous under the
// FilterQuery SimpleValue grammar (a bareword letters-then-digits run, a
// plain digit run, or a '.'-separated digit run).
func renderSimpleValue(raw string) string {
	if needsQuoting(raw) {
		return quoteValue(raw)
	}
	return raw
}

func needsQuoting(raw string) bool {
	if raw == "" {
		return true
	}
	return !(isBareword(raw) || isDigitRun(raw) || isSimpleFloat(raw))
}

func isBareword(s string) bool {
	runes := []rune(s)
	i := 0
	for i < len(runes) && unicode.IsLetter(runes[i]) {
		i++
	}
	if i == 0 {
		return false
	}
	for i < len(runes) && unicode.IsDigit(runes[i]) {
		i++
	}
	return i == len(runes)
}

func isDigitRun(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isSimpleFloat(s string) bool {
	whole, frac, ok := strings.Cut(s, ".")
	if !ok {
		return false
	}
	return isDigitRun(whole) && isDigitRun(frac)
}

func quoteValue(raw string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range raw {
		if r == '"' {
			sb.WriteString(`""`)
		} else {
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
