package render

import (
	"strings"
	"testing"

	"github.com/hap4114/credit-card-statement-parser/internal/models"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "₹0.00"},
		{999.5, "₹999.50"},
		{1234.56, "₹1,234.56"},
		{45230.5, "₹45,230.50"},
		{300000, "₹3,00,000.00"},
		{12345678.9, "₹1,23,45,678.90"},
		{-5000, "-₹5,000.00"},
	}
	for _, tt := range tests {
		if got := formatAmount(tt.in); got != tt.want {
			t.Errorf("formatAmount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteSummary(t *testing.T) {
	rec := models.NewRecord(models.BankHDFC)
	rec.CardholderName = "RAHUL SHARMA"
	rec.CardLast4 = "9876"
	rec.TotalAmountDue = 45230.50
	rec.Transactions = []models.Transaction{
		{Date: "05/04/2024", Description: "AMAZON PURCHASE", Amount: 1234.56},
		{Date: "07/04/2024", Description: "PAYMENT RECEIVED", Amount: -5000},
	}

	var buf strings.Builder
	WriteSummary(&buf, rec)
	out := buf.String()

	for _, want := range []string{
		"Bank: HDFC",
		"Cardholder: RAHUL SHARMA",
		"**** **** **** 9876",
		"Total Amount Due: ₹45,230.50",
		"Transactions Count: 2",
		"AMAZON PURCHASE",
		"-₹5,000.00",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q\n%s", want, out)
		}
	}
}

func TestWriteSummaryNoTransactions(t *testing.T) {
	var buf strings.Builder
	WriteSummary(&buf, models.NewRecord(models.BankUnknown))
	if !strings.Contains(buf.String(), "No transactions found") {
		t.Error("empty-statement notice missing")
	}
}
