package docfilter

import (
	"errors"

	"github.com/hugr-lab/condql/condition"
)

func parseOperator(s string) (condition.CompareOperator, error) {
	switch condition.CompareOperator(s) {
	case condition.OpLess, condition.OpLessOrEqual, condition.OpNotEqual, condition.OpGreater, condition.OpGreaterOrEqual:
		return condition.CompareOperator(s), nil
	default:
		return "", errors.New("unrecognized comparison operator")
	}
}

func parsePatternKind(s string) (condition.PatternKind, error) {
	switch condition.PatternKind(s) {
	case condition.PatternContains, condition.PatternStartsWith, condition.PatternEndsWith, condition.PatternRegex,
		condition.PatternNotContains, condition.PatternNotStartsWith, condition.PatternNotEndsWith, condition.PatternNotRegex:
		return condition.PatternKind(s), nil
	default:
		return "", errors.New("unrecognized pattern-match type")
	}
}
