// Package conderr defines the typed error kinds surfaced by the condition
// core: lexing/parsing, structured-document ingest, and normalization.
//
// Every kind is a distinct exported struct implementing error. Callers use
// errors.As to recover the typed fields instead of matching on strings.
package conderr

import "fmt"

// SyntaxError reports a lexer/parser mismatch at a byte offset in the
// original FilterQuery input. The line is always 0: FilterQuery is a
// single-line surface syntax, so there is no line tracking to do.
type SyntaxError struct {
	Pos      int
	Expected string
	Got      string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line 0, col %d: Error: Expected '%s', got '%s'", e.Pos, e.Expected, e.Got)
}

// UnknownFieldError reports a field name that is not present in the
// FieldSet consulted by the parser or structured-document ingester.
type UnknownFieldError struct {
	FieldName string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown field %q", e.FieldName)
}

// UnsupportedValueTypeError reports a value kind (range, comparison,
// pattern-match) that a field's configuration does not accept.
type UnsupportedValueTypeError struct {
	FieldName string
	ValueType string
}

func (e *UnsupportedValueTypeError) Error() string {
	return fmt.Sprintf("field %q does not accept %s values", e.FieldName, e.ValueType)
}

// FieldRequiredError reports a field marked required by the FieldSet that
// is absent from a group containing at least one other field or subgroup.
type FieldRequiredError struct {
	FieldName string
	GroupIdx  int
	Level     int
}

func (e *FieldRequiredError) Error() string {
	return fmt.Sprintf("field %q is required in group %d at level %d", e.FieldName, e.GroupIdx, e.Level)
}

// ValuesOverflowError reports a bag whose cumulative value count exceeds
// the configured maxValues limit.
type ValuesOverflowError struct {
	FieldName string
	Max       int
	Current   int
	GroupIdx  int
	Level     int
}

func (e *ValuesOverflowError) Error() string {
	return fmt.Sprintf("field %q exceeds max values %d (has %d) in group %d at level %d",
		e.FieldName, e.Max, e.Current, e.GroupIdx, e.Level)
}

// GroupsOverflowError reports a group whose direct subgroup count exceeds
// the configured maxGroups limit.
type GroupsOverflowError struct {
	Max      int
	Current  int
	GroupIdx int
	Level    int
}

func (e *GroupsOverflowError) Error() string {
	return fmt.Sprintf("group %d at level %d exceeds max subgroups %d (has %d)",
		e.GroupIdx, e.Level, e.Max, e.Current)
}

// GroupsNestingError reports a group nested deeper than the configured
// maxDepth limit. Level is the depth at which the limit was breached.
type GroupsNestingError struct {
	Max      int
	GroupIdx int
	Level    int
}

func (e *GroupsNestingError) Error() string {
	return fmt.Sprintf("group %d exceeds max nesting depth %d at level %d", e.GroupIdx, e.Max, e.Level)
}

// InputProcessorError reports a malformed structured document (invalid
// JSON or XML) that could not be decoded into the intermediate wire shape.
// It wraps the underlying decode error.
type InputProcessorError struct {
	Message string
	Err     error
}

func (e *InputProcessorError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *InputProcessorError) Unwrap() error {
	return e.Err
}

// HookPanicError reports a panic recovered from a caller-supplied
// Transformer or ValueComparison hook while running the Transform or
// duplicate-remover normalization pass. It is attached as a bag error and short-circuits
// the remainder of the normalization chain.
type HookPanicError struct {
	FieldName string
	Pass      string
	Recovered any
}

func (e *HookPanicError) Error() string {
	return fmt.Sprintf("pass %q panicked on field %q: %v", e.Pass, e.FieldName, e.Recovered)
}
