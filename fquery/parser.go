// Package fquery implements the FilterQuery mini-language: a
// recursive-descent parser (C6) producing a condition tree, and the
// reverse exporter (C7) rendering a tree back to canonical text.
package fquery

import (
	"strings"

	"github.com/hugr-lab/condql/conderr"
	"github.com/hugr-lab/condql/condition"
	"github.com/hugr-lab/condql/fieldset"
	"github.com/hugr-lab/condql/fquery/lexer"
)

// Option configures a Parser's limits.
type Option func(*Parser)

// WithMaxValues sets the per-bag value count limit (default 100).
func WithMaxValues(n int) Option { return func(p *Parser) { p.maxValues = n } }

// WithMaxGroups sets the per-group direct-subgroup count limit (default 100).
func WithMaxGroups(n int) Option { return func(p *Parser) { p.maxGroups = n } }

// WithMaxDepth sets the maximum group nesting depth (default 100).
func WithMaxDepth(n int) Option { return func(p *Parser) { p.maxDepth = n } }

// Parser parses FilterQuery text against a FieldSet.
type Parser struct {
	fs        fieldset.FieldSet
	maxValues int
	maxGroups int
	maxDepth  int
}

// NewParser creates a Parser bound to fs, with default limits of 100 for
// maxValues, maxGroups, and maxDepth, overridable via Option.
func NewParser(fs fieldset.FieldSet, opts ...Option) *Parser {
	p := &Parser{fs: fs, maxValues: 100, maxGroups: 100, maxDepth: 100}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse compiles input into a Condition. Empty or whitespace-only input
// returns (nil, nil). A grammar violation returns a *conderr.SyntaxError; a
// limit breach returns the corresponding typed error from §7.
func (p *Parser) Parse(input string) (*condition.Condition, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil
	}

	st := &parseState{
		tokens:    lexer.Tokenize(input),
		fs:        p.fs,
		maxValues: p.maxValues,
		maxGroups: p.maxGroups,
		maxDepth:  p.maxDepth,
		groupSeq:  1,
	}

	root := condition.NewValuesGroup(condition.LogicalAnd)
	if err := st.parseGroupBody(root, 0, 0); err != nil {
		return nil, err
	}
	if st.cur().Type != lexer.EOF {
		return nil, st.syntaxError("end of input")
	}

	// When the input is a single group with no field pairs beside it, that
	// group is the root, not a subgroup of an implicit AND root — this is
	// what lets a "*(...)​;" produced by Export for an OR root read back as
	// an OR root instead of gaining a spurious layer of AND nesting.
	if len(root.Fields()) == 0 && len(root.Groups()) == 1 {
		root = root.Groups()[0]
	}

	return &condition.Condition{FieldSet: p.fs, Root: root}, nil
}

// parseState is the mutable cursor over a token array shared by every
// recursive-descent helper for one Parse call.
type parseState struct {
	tokens    []lexer.Token
	pos       int
	fs        fieldset.FieldSet
	maxValues int
	maxGroups int
	maxDepth  int
	groupSeq  int
}

func (s *parseState) cur() lexer.Token {
	return s.tokens[s.pos]
}

// glimpse peeks at the next token without advancing.
func (s *parseState) glimpse() lexer.Token {
	if s.pos+1 < len(s.tokens) {
		return s.tokens[s.pos+1]
	}
	return s.tokens[len(s.tokens)-1]
}

func (s *parseState) advance() {
	if s.pos < len(s.tokens)-1 {
		s.pos++
	}
}

// resetTo rewinds the cursor to a previously observed position, used by
// backtracking call sites (none in the current grammar need it, but the
// primitive mirrors the lexer's own reset-to-position contract).
func (s *parseState) resetTo(pos int) {
	s.pos = pos
}

func tokenDisplay(t lexer.Token) string {
	if t.Literal != "" {
		return t.Literal
	}
	return t.Type.String()
}

func (s *parseState) syntaxError(expected string) error {
	return &conderr.SyntaxError{Pos: s.cur().Position, Expected: expected, Got: tokenDisplay(s.cur())}
}

func (s *parseState) syntaxErrorOneOf(options []string) error {
	return s.syntaxError(strings.Join(options, "' or '"))
}

// parseGroupBody parses the { FieldPair | Group } sequence that makes up
// either the top-level Input or the inside of a Group's parentheses, then
// applies the required-field check for groupIdx/level.
func (s *parseState) parseGroupBody(group *condition.ValuesGroup, level, groupIdx int) error {
	for {
		t := s.cur()
		if t.Type == lexer.EOF || t.Type == lexer.RPAREN {
			break
		}
		switch t.Type {
		case lexer.STAR, lexer.LPAREN:
			if err := s.parseNestedGroup(group, level, groupIdx); err != nil {
				return err
			}
		case lexer.IDENTIFIER:
			if err := s.parseFieldPair(group, level, groupIdx); err != nil {
				return err
			}
		default:
			return s.syntaxErrorOneOf([]string{"identifier", "(", "*("})
		}
	}

	if len(group.Fields()) > 0 || len(group.Groups()) > 0 {
		for _, cfg := range s.fs.All() {
			if cfg.IsRequired() && !group.HasField(cfg.Name()) {
				return &conderr.FieldRequiredError{FieldName: cfg.Name(), GroupIdx: groupIdx, Level: level}
			}
		}
	}

	return nil
}

// parseNestedGroup parses ["*"] "(" body ")" [";"] and appends the result
// to parent, applying the depth and subgroup-count limits.
func (s *parseState) parseNestedGroup(parent *condition.ValuesGroup, parentLevel, parentGroupIdx int) error {
	logical := condition.LogicalAnd
	if s.cur().Type == lexer.STAR {
		logical = condition.LogicalOr
		s.advance()
	}
	if s.cur().Type != lexer.LPAREN {
		return s.syntaxError("(")
	}
	s.advance()

	gidx := s.groupSeq
	s.groupSeq++

	newLevel := parentLevel + 1
	if newLevel > s.maxDepth {
		return &conderr.GroupsNestingError{Max: s.maxDepth, GroupIdx: gidx, Level: newLevel}
	}

	child := condition.NewValuesGroup(logical)
	if err := s.parseGroupBody(child, newLevel, gidx); err != nil {
		return err
	}

	if s.cur().Type != lexer.RPAREN {
		return s.syntaxError(")")
	}
	s.advance()

	parent.AddGroup(child)
	if len(parent.Groups()) > s.maxGroups {
		return &conderr.GroupsOverflowError{Max: s.maxGroups, Current: len(parent.Groups()), GroupIdx: parentGroupIdx, Level: parentLevel}
	}

	if s.cur().Type == lexer.SEMI {
		s.advance()
	}

	return nil
}

// parseFieldPair parses IDENTIFIER ":" Values [";"], merging into an
// existing bag if the field already appears in group.
func (s *parseState) parseFieldPair(group *condition.ValuesGroup, level, groupIdx int) error {
	idTok := s.cur()
	fieldName := idTok.Literal

	if !s.fs.Has(fieldName) {
		return &conderr.UnknownFieldError{FieldName: fieldName}
	}
	cfg, _ := s.fs.Get(fieldName)
	s.advance()

	bag, exists := group.GetField(fieldName)
	if !exists {
		bag = condition.NewValuesBag()
		group.AddField(fieldName, bag)
	}

	for {
		if err := s.parseValueInto(bag, cfg, fieldName, groupIdx, level); err != nil {
			return err
		}
		if s.cur().Type == lexer.COMMA {
			s.advance()
			continue
		}
		break
	}

	switch s.cur().Type {
	case lexer.SEMI:
		s.advance()
	case lexer.RPAREN, lexer.EOF:
		// implicit end of pair
	default:
		return s.syntaxErrorOneOf([]string{";", ")", "end of input"})
	}

	return nil
}

// parseValueInto parses one Value production and appends it to bag,
// enforcing kind acceptance and the per-bag value limit.
func (s *parseState) parseValueInto(bag *condition.ValuesBag, cfg fieldset.FieldConfig, fieldName string, groupIdx, level int) error {
	switch s.cur().Type {
	case lexer.TILDE:
		return s.parsePatternMatchInto(bag, cfg, fieldName, groupIdx, level)
	case lexer.LT:
		return s.parseComparisonInto(bag, cfg, fieldName, groupIdx, level, lexer.LT)
	case lexer.GT:
		return s.parseComparisonInto(bag, cfg, fieldName, groupIdx, level, lexer.GT)
	case lexer.BANG:
		s.advance()
		return s.parseExcludableInto(bag, cfg, fieldName, groupIdx, level, true)
	case lexer.LBRACKET, lexer.RBRACKET:
		return s.parseRangeInto(bag, cfg, fieldName, groupIdx, level, false)
	default:
		return s.parseExcludableInto(bag, cfg, fieldName, groupIdx, level, false)
	}
}

// parseExcludableInto handles the ["!"] (SimpleValue | Range) alternative,
// with excluded indicating a leading "!" was already consumed.
func (s *parseState) parseExcludableInto(bag *condition.ValuesBag, cfg fieldset.FieldConfig, fieldName string, groupIdx, level int, excluded bool) error {
	if s.cur().Type == lexer.LBRACKET || s.cur().Type == lexer.RBRACKET {
		return s.parseRangeInto(bag, cfg, fieldName, groupIdx, level, excluded)
	}

	sv, err := s.parseSimpleValue()
	if err != nil {
		return err
	}

	if s.cur().Type == lexer.MINUS {
		s.advance()
		return s.finishRangeInto(bag, cfg, fieldName, groupIdx, level, excluded, sv, true)
	}

	if excluded {
		bag.AddExcludedSingle(sv)
	} else {
		bag.AddSingle(sv)
	}
	return s.checkOverflow(bag, fieldName, groupIdx, level)
}

// parseRangeInto handles a Range that begins with an explicit leading
// bracket (its absence is handled by parseExcludableInto instead).
func (s *parseState) parseRangeInto(bag *condition.ValuesBag, cfg fieldset.FieldConfig, fieldName string, groupIdx, level int, excluded bool) error {
	lowerInclusive := true
	switch s.cur().Type {
	case lexer.RBRACKET:
		lowerInclusive = false
		s.advance()
	case lexer.LBRACKET:
		lowerInclusive = true
		s.advance()
	}

	lower, err := s.parseSimpleValue()
	if err != nil {
		return err
	}
	if s.cur().Type != lexer.MINUS {
		return s.syntaxError("-")
	}
	s.advance()

	return s.finishRangeInto(bag, cfg, fieldName, groupIdx, level, excluded, lower, lowerInclusive)
}

// finishRangeInto parses the upper bound and optional trailing bracket of
// a Range whose lower bound and inclusivity are already known.
func (s *parseState) finishRangeInto(bag *condition.ValuesBag, cfg fieldset.FieldConfig, fieldName string, groupIdx, level int, excluded bool, lower condition.SingleValue, lowerInclusive bool) error {
	if !cfg.AcceptRanges() {
		return &conderr.UnsupportedValueTypeError{FieldName: fieldName, ValueType: "range"}
	}

	upper, err := s.parseSimpleValue()
	if err != nil {
		return err
	}

	upperInclusive := true
	if s.cur().Type == lexer.RBRACKET || s.cur().Type == lexer.LBRACKET {
		upperInclusive = false
		s.advance()
	}

	r := condition.Range{Lower: lower, Upper: upper, LowerInclusive: lowerInclusive, UpperInclusive: upperInclusive}
	if excluded {
		bag.AddExcludedRange(r)
	} else {
		bag.AddRange(r)
	}
	return s.checkOverflow(bag, fieldName, groupIdx, level)
}

// parseComparisonInto handles ("<" ["="] | "<>" | ">" ["="]) SimpleValue,
// startTok being the LT or GT token already observed by the caller.
func (s *parseState) parseComparisonInto(bag *condition.ValuesBag, cfg fieldset.FieldConfig, fieldName string, groupIdx, level int, startTok lexer.TokenType) error {
	if !cfg.AcceptCompares() {
		return &conderr.UnsupportedValueTypeError{FieldName: fieldName, ValueType: "comparison"}
	}

	s.advance()

	var op condition.CompareOperator
	switch startTok {
	case lexer.LT:
		switch s.cur().Type {
		case lexer.EQUAL:
			op = condition.OpLessOrEqual
			s.advance()
		case lexer.GT:
			op = condition.OpNotEqual
			s.advance()
		default:
			op = condition.OpLess
		}
	case lexer.GT:
		if s.cur().Type == lexer.EQUAL {
			op = condition.OpGreaterOrEqual
			s.advance()
		} else {
			op = condition.OpGreater
		}
	}

	operand, err := s.parseSimpleValue()
	if err != nil {
		return err
	}
	bag.AddComparison(condition.Comparison{Operand: operand, Operator: op})
	return s.checkOverflow(bag, fieldName, groupIdx, level)
}

// parsePatternMatchInto handles "~" ["i"] ["!"] ("*"|">"|"<"|"?") SimpleValue.
func (s *parseState) parsePatternMatchInto(bag *condition.ValuesBag, cfg fieldset.FieldConfig, fieldName string, groupIdx, level int) error {
	if !cfg.AcceptPatternMatch() {
		return &conderr.UnsupportedValueTypeError{FieldName: fieldName, ValueType: "pattern-match"}
	}

	s.advance() // consume '~'

	caseInsensitive := false
	if s.cur().Type == lexer.STRING && s.cur().Literal == "i" {
		caseInsensitive = true
		s.advance()
	}

	negated := false
	if s.cur().Type == lexer.BANG {
		negated = true
		s.advance()
	}

	var kind condition.PatternKind
	switch s.cur().Type {
	case lexer.STAR:
		kind = condition.PatternContains
	case lexer.GT:
		kind = condition.PatternStartsWith
	case lexer.LT:
		kind = condition.PatternEndsWith
	case lexer.QUESTION:
		kind = condition.PatternRegex
	default:
		return s.syntaxErrorOneOf([]string{"*", ">", "<", "?"})
	}
	s.advance()

	if negated {
		kind = kind.Negated()
	}

	pattern, err := s.parseSimpleValue()
	if err != nil {
		return err
	}
	bag.AddPatternMatch(condition.PatternMatch{Pattern: pattern, Kind: kind, CaseInsensitive: caseInsensitive})
	return s.checkOverflow(bag, fieldName, groupIdx, level)
}

// parseSimpleValue parses STRING | QSTRING | INTEGER | FLOAT.
func (s *parseState) parseSimpleValue() (condition.SingleValue, error) {
	tok := s.cur()
	switch tok.Type {
	case lexer.STRING, lexer.QSTRING, lexer.INTEGER, lexer.FLOAT:
		s.advance()
		return condition.NewSingleValue(tok.Literal), nil
	default:
		return condition.SingleValue{}, s.syntaxError("value")
	}
}

func (s *parseState) checkOverflow(bag *condition.ValuesBag, fieldName string, groupIdx, level int) error {
	if bag.Count() > s.maxValues {
		return &conderr.ValuesOverflowError{FieldName: fieldName, Max: s.maxValues, Current: bag.Count(), GroupIdx: groupIdx, Level: level}
	}
	return nil
}
