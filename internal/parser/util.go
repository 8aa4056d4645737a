package parser

import (
	"regexp"
	"strconv"
	"strings"
)

// parseAmount converts a locale-formatted currency string like "1,234.56",
// "₹ 1,234.56" or "`12,345" to a float64. Thousands separators and currency
// glyphs are stripped before conversion. Statements render the rupee glyph
// inconsistently (₹, the backtick used by some print engines, or a bare "r"
// from OCR), so all of them are removed.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "₹", "")
	s = strings.ReplaceAll(s, "`", "")
	s = strings.ReplaceAll(s, "Rs.", "")
	s = strings.ReplaceAll(s, "Rs", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.TrimPrefix(s, "r")

	if s == "" || s == "-" {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseFloat(s, 64)
}

// cleanAmount is the tolerant variant used where the captured substring may
// carry stray spaces inside the number (OCR artifacts). Anything that is not
// a digit, dot or minus is dropped. Returns 0 when nothing numeric remains.
var nonNumericPattern = regexp.MustCompile(`[^\d.\-]`)

func cleanAmount(s string) float64 {
	if s == "" {
		return 0
	}
	cleaned := nonNumericPattern.ReplaceAllString(s, "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// collapseSpaces normalizes runs of whitespace to a single space.
var multiSpacePattern = regexp.MustCompile(`\s+`)

func collapseSpaces(s string) string {
	return strings.TrimSpace(multiSpacePattern.ReplaceAllString(s, " "))
}

// containsAnyFold reports whether text contains any of the needles,
// case-insensitively.
func containsAnyFold(text string, needles []string) bool {
	upper := strings.ToUpper(text)
	for _, n := range needles {
		if strings.Contains(upper, strings.ToUpper(n)) {
			return true
		}
	}
	return false
}

// sectionBetween returns the substring starting at the first match of start
// and ending just before the first subsequent match of end (or the end of
// text when the end marker never appears). ok is false when the start marker
// is absent. This bounds transaction scans to the statement's transaction
// table so currency-like substrings in summary or reward sections are not
// picked up.
func sectionBetween(text string, start, end *regexp.Regexp) (string, bool) {
	loc := start.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	rest := text[loc[0]:]
	if end != nil {
		if endLoc := end.FindStringIndex(rest[loc[1]-loc[0]:]); endLoc != nil {
			return rest[:loc[1]-loc[0]+endLoc[0]], true
		}
	}
	return rest, true
}

// txnKey is the composite dedup key for transactions. The description is
// truncated so a line re-matched by two candidate patterns with slightly
// different trailing capture still collapses to one entry.
func txnKey(date, description string, amount float64) string {
	desc := description
	if len(desc) > 30 {
		desc = desc[:30]
	}
	return date + "|" + desc + "|" + strconv.FormatFloat(amount, 'f', 2, 64)
}
