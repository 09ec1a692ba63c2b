package docfilter

// rawGroup is the format-agnostic intermediate a decoded JSON or XML
// document is converted to before invariant checking, so the ingest logic
// itself never needs to know which wire format produced it.
type rawGroup struct {
	logical string
	fields  []rawField
	groups  []rawGroup
}

type rawField struct {
	name            string
	singles         []string
	excludedSingles []string
	ranges          []rawRange
	excludedRanges  []rawRange
	comparisons     []rawComparison
	patternMatchers []rawPattern
}

type rawRange struct {
	lower, upper                   string
	lowerInclusive, upperInclusive bool
}

type rawComparison struct {
	value    string
	operator string
}

type rawPattern struct {
	value           string
	kind            string
	caseInsensitive bool
}
