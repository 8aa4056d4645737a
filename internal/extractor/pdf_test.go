package extractor

import (
	"strings"
	"testing"
)

func TestTextQuality(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		min   float64
		max   float64
	}{
		{"empty", nil, 0, 0},
		{"clean ascii", []string{"Credit Card Statement for March 2024"}, 0.99, 1.0},
		{"numbers and punctuation", []string{"Total: 1,234.56 (due 02/04/2024)"}, 0.99, 1.0},
		{"identity-encoded garbage", []string{strings.Repeat("þÿ", 50)}, 0, 0.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := textQuality(tt.pages)
			if q < tt.min || q > tt.max {
				t.Errorf("quality = %.3f, want within [%.2f, %.2f]", q, tt.min, tt.max)
			}
		})
	}
}

func TestIsReadableText(t *testing.T) {
	readable := []string{
		"HDFC Bank Credit Card Statement\n" +
			"Total Amount Due 45,230.50 Minimum Amount Due 2,260.00",
	}
	if !isReadableText(readable) {
		t.Error("statement text should be readable")
	}

	tests := []struct {
		name  string
		pages []string
	}{
		{"too short", []string{"Credit card"}},
		{"no statement vocabulary", []string{strings.Repeat("lorem ipsum dolor sit ", 10)}},
		{"binary garbage", []string{strings.Repeat("\x01\x02\x03\x04", 100)}},
		{"empty", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if isReadableText(tt.pages) {
				t.Error("should not be readable")
			}
		})
	}
}

func TestContainsCommonWords(t *testing.T) {
	if !containsCommonWords([]string{"STATEMENT OF ACCOUNT"}) {
		t.Error("match should be case-insensitive")
	}
	if containsCommonWords([]string{"wholly unrelated prose"}) {
		t.Error("no statement vocabulary present")
	}
}

func TestExtractTextMissingFile(t *testing.T) {
	if _, err := ExtractText("/nonexistent/statement.pdf"); err == nil {
		t.Error("expected error for missing file")
	}
}
