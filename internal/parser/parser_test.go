package parser

import (
	"testing"

	"github.com/hap4114/credit-card-statement-parser/internal/models"
)

func TestIdentify(t *testing.T) {
	tests := []struct {
		name string
		text string
		want models.BankTag
	}{
		{"hdfc", "HDFC Bank Credit Card Statement", models.BankHDFC},
		{"hdfc cobrand", "Your Paytm HDFC card statement", models.BankHDFC},
		{"icici", "ICICI Bank Limited", models.BankICICI},
		{"axis", "Flipkart Axis Bank Credit Card", models.BankAxis},
		{"idfc", "IDFC FIRST Bank statement", models.BankIDFC},
		{"indian bank", "Indian Bank Global Credit Card", models.BankIndian},
		{"indian bank product code", "Statement for IBGCC account", models.BankIndian},
		{"case insensitive", "hdfc bank", models.BankHDFC},
		{"unknown", "Some Other Bank plc", models.BankUnknown},
		{"empty", "", models.BankUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Identify(tt.text); got != tt.want {
				t.Errorf("Identify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewDispatch(t *testing.T) {
	tests := []struct {
		tag  models.BankTag
		want models.BankTag
	}{
		{models.BankHDFC, models.BankHDFC},
		{models.BankICICI, models.BankICICI},
		{models.BankAxis, models.BankAxis},
		{models.BankIDFC, models.BankIDFC},
		{models.BankIndian, models.BankIndian},
		{models.BankUnknown, models.BankUnknown},
		{"no-such-bank", models.BankUnknown},
	}

	for _, tt := range tests {
		t.Run(string(tt.tag), func(t *testing.T) {
			if got := New(tt.tag).Bank(); got != tt.want {
				t.Errorf("New(%q).Bank() = %q, want %q", tt.tag, got, tt.want)
			}
		})
	}
}

func TestParseUnknownBank(t *testing.T) {
	rec := Parse("Monthly statement from Some Other Bank\n01/01/2024 COFFEE 4.50")
	if rec.Bank != models.BankUnknown {
		t.Errorf("bank = %q, want UNKNOWN", rec.Bank)
	}
	if len(rec.Transactions) != 0 {
		t.Errorf("generic engine must not extract transactions, got %d", len(rec.Transactions))
	}
	if rec.CardholderName != models.NotFound {
		t.Errorf("cardholder = %q, want sentinel", rec.CardholderName)
	}
	if rec.Transactions == nil {
		t.Error("transactions must be non-nil")
	}
}

// Running an engine twice over the same text must produce identical records:
// the pattern tables are read-only and engines hold no state.
func TestParseIdempotent(t *testing.T) {
	first := Parse(hdfcSampleText)
	second := Parse(hdfcSampleText)

	if first.Bank != second.Bank ||
		first.CardholderName != second.CardholderName ||
		first.TotalAmountDue != second.TotalAmountDue ||
		len(first.Transactions) != len(second.Transactions) {
		t.Errorf("repeated parse differed:\nfirst:  %+v\nsecond: %+v", first, second)
	}
	for i := range first.Transactions {
		if first.Transactions[i] != second.Transactions[i] {
			t.Errorf("transaction %d differed: %+v vs %+v",
				i, first.Transactions[i], second.Transactions[i])
		}
	}
}
