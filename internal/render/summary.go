// Package render formats a parsed statement for terminal output.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/hap4114/credit-card-statement-parser/internal/models"
)

// WriteSummary prints the statement header fields followed by an aligned
// transaction table. Credits are rendered with a leading minus so the sign
// convention stays visible.
func WriteSummary(w io.Writer, rec *models.StatementRecord) {
	line := strings.Repeat("=", 60)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "CREDIT CARD STATEMENT SUMMARY")
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "Bank: %s\n", rec.Bank)
	fmt.Fprintf(w, "Cardholder: %s\n", rec.CardholderName)
	fmt.Fprintf(w, "Card Ending: **** **** **** %s\n", rec.CardLast4)
	fmt.Fprintf(w, "Statement Date: %s\n", rec.StatementDate)
	fmt.Fprintf(w, "Payment Due Date: %s\n", rec.PaymentDueDate)
	fmt.Fprintf(w, "Total Amount Due: %s\n", formatAmount(rec.TotalAmountDue))
	fmt.Fprintf(w, "Minimum Amount Due: %s\n", formatAmount(rec.MinimumAmountDue))
	fmt.Fprintf(w, "Credit Limit: %s\n", formatAmount(rec.CreditLimit))
	fmt.Fprintf(w, "Available Credit: %s\n", formatAmount(rec.AvailableCredit))
	fmt.Fprintf(w, "Transactions Count: %d\n", len(rec.Transactions))
	fmt.Fprintln(w, line)

	if len(rec.Transactions) == 0 {
		fmt.Fprintln(w, "(No transactions found in this statement.)")
		return
	}

	dateW, descW, amtW := len("Date"), len("Description"), len("Amount")
	amounts := make([]string, len(rec.Transactions))
	for i, tx := range rec.Transactions {
		amounts[i] = formatAmount(tx.Amount)
		if len(tx.Date) > dateW {
			dateW = len(tx.Date)
		}
		if len(tx.Description) > descW {
			descW = len(tx.Description)
		}
		if len(amounts[i]) > amtW {
			amtW = len(amounts[i])
		}
	}

	fmt.Fprintf(w, "%-*s  %-*s  %*s\n", dateW, "Date", descW, "Description", amtW, "Amount")
	fmt.Fprintln(w, strings.Repeat("-", dateW+descW+amtW+4))
	for i, tx := range rec.Transactions {
		fmt.Fprintf(w, "%-*s  %-*s  %*s\n", dateW, tx.Date, descW, tx.Description, amtW, amounts[i])
	}
}

// formatAmount renders a currency value with thousands separators in the
// Indian digit-grouping style used on the statements themselves.
func formatAmount(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.2f", v)
	intPart, fracPart, _ := strings.Cut(s, ".")

	grouped := groupIndian(intPart)
	out := "₹" + grouped + "." + fracPart
	if neg {
		out = "-" + out
	}
	return out
}

// groupIndian inserts separators in the 1,23,45,678 pattern: the last three
// digits form one group, the rest pair off.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}
