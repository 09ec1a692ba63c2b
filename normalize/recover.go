// Package normalize implements the condition-tree normalization pipeline
// (C9): a fixed chain of passes that transform, validate, deduplicate, and
// optimize a condition's bags in place.
package normalize

import (
	"log/slog"

	"github.com/hugr-lab/condql/conderr"
)

// runProtected invokes fn, recovering any panic it raises and turning it
// into a HookPanicError attached to the caller's bag. This is the only
// panic-recovery boundary in the condition core: it exists because
// Transform and the duplicate remover call into field-supplied collaborators
// the core does not control. Validate calls a field-supplied Validator too,
// but is deliberately left unprotected — see validate.go. The lexer and
// parser never recover — a panic there is a bug in the core itself, not a
// hook.
func runProtected(fieldName, pass string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("normalization hook panicked", "pass", pass, "field", fieldName, "recovered", r)
			err = &conderr.HookPanicError{FieldName: fieldName, Pass: pass, Recovered: r}
		}
	}()
	return fn()
}
