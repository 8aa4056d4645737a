package parser

import "regexp"

// Field extraction is driven by ordered fallback chains: each candidate is a
// (pattern, validator) pair tried in priority order, most specific first.
// The first candidate whose captured value passes its validator wins; chain
// exhaustion leaves the field at its sentinel default. Layout revisions and
// OCR noise make single-pattern matching too brittle, but precedence must
// stay deterministic, so new layout variants are added by appending a table
// entry rather than editing control flow.

// textCandidate captures a string field.
type textCandidate struct {
	re    *regexp.Regexp
	group int
	// clean post-processes the captured value; optional.
	clean func(string) string
	// valid rejects a captured value; optional (any non-empty value passes).
	valid func(string) bool
}

// textChain evaluates candidates in order and returns the first valid
// capture, or the sentinel fallback.
func textChain(text, fallback string, candidates []textCandidate) string {
	for _, c := range candidates {
		m := c.re.FindStringSubmatch(text)
		if m == nil || c.group >= len(m) {
			continue
		}
		v := m[c.group]
		if c.clean != nil {
			v = c.clean(v)
		}
		if v == "" {
			continue
		}
		if c.valid != nil && !c.valid(v) {
			continue
		}
		return v
	}
	return fallback
}

// amountCandidate captures a currency field.
type amountCandidate struct {
	re    *regexp.Regexp
	group int
	// valid rejects a parsed value; optional (any parseable value passes).
	valid func(float64) bool
}

// amountChain evaluates candidates in order and returns the first capture
// that both parses as a number and passes its validator. A capture that
// fails numeric conversion is discarded, never propagated as a wrong value.
func amountChain(text string, candidates []amountCandidate) float64 {
	for _, c := range candidates {
		m := c.re.FindStringSubmatch(text)
		if m == nil || c.group >= len(m) {
			continue
		}
		v, err := parseAmount(m[c.group])
		if err != nil {
			continue
		}
		if c.valid != nil && !c.valid(v) {
			continue
		}
		return v
	}
	return 0
}
