package parser

import (
	"regexp"
	"strings"

	"github.com/hap4114/credit-card-statement-parser/internal/models"
)

// ICICIEngine handles ICICI Bank credit card statements.
//
// Dates are rendered as "Month D, YYYY" and transaction lines carry a serial
// number between the date and the description:
//
//	15/03/2024  2  AMAZON RETAIL IN  2,499.00
//	18/03/2024  3  PAYMENT RECEIVED  5,000.00 CR
//
// Amounts may be prefixed with the rupee glyph or the backtick some ICICI
// print engines emit in its place.
type ICICIEngine struct{}

func (e *ICICIEngine) Bank() models.BankTag {
	return models.BankICICI
}

var (
	iciciName = regexp.MustCompile(`((?:MR|MS|MRS|DR)\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)\s*\n\s*(?:AT/PO|FLAT|HOUSE|[A-Z\s,/]+\n)`)
	iciciCard = regexp.MustCompile(`\d{4}X+(\d{4})`)

	iciciStatementDate = regexp.MustCompile(`(?is)STATEMENT DATE.*?([A-Z][a-z]+\s+\d{1,2},\s+\d{4})`)
	iciciPeriodEnd     = regexp.MustCompile(`Statement period\s*:\s*[A-Za-z]+\s+\d{1,2},\s+\d{4}\s+to\s+([A-Z][a-z]+\s+\d{1,2},\s+\d{4})`)
	iciciDueDate       = regexp.MustCompile(`(?is)PAYMENT DUE DATE.*?([A-Z][a-z]+\s+\d{1,2},\s+\d{4})`)
	iciciLongDate      = regexp.MustCompile(`([A-Z][a-z]+\s+\d{1,2},\s+\d{4})`)

	iciciTotalDue = regexp.MustCompile("(?i)Total Amount due\\s+[`₹]?\\s*([\\d,]+\\.?\\d*)")

	iciciMinDueChain = []*regexp.Regexp{
		regexp.MustCompile("(?i)Minimum\\s+Amount\\s+due\\s*[:\\-]?\\s*[`₹]?\\s*([\\d,]+\\.?\\d*)"),
		regexp.MustCompile("(?i)Minimum\\s+Amount\\s*[:\\-]?\\s*[`₹]?\\s*([\\d,]+\\.?\\d*)"),
		regexp.MustCompile("(?i)Minimum\\s+Amount\\s+Payable\\s*[:\\-]?\\s*[`₹]?\\s*([\\d,]+\\.?\\d*)"),
		regexp.MustCompile("(?i)Amount\\s+Due\\s+\\(Minimum\\)\\s*[`₹]?\\s*([\\d,]+\\.?\\d*)"),
	}
	iciciMinDueLabel = regexp.MustCompile(`(?i)Minimum\s+Amount\s+due`)
	iciciBareAmount  = regexp.MustCompile("[`₹]?\\s*([\\d,]+\\.?\\d*)")

	iciciCreditLimit = regexp.MustCompile("(?is)Credit Limit \\(Including cash\\)\\s+Available Credit.*?[`₹]\\s*([\\d,]+\\.?\\d*)")
	iciciAvailCredit = regexp.MustCompile("(?is)Credit Limit \\(Including cash\\)\\s+Available Credit \\(Including cash\\).*?[`₹]\\s*[\\d,]+\\.?\\d*\\s+[`₹]\\s*([\\d,]+\\.?\\d*)")

	iciciTxnLine = regexp.MustCompile(`(?m)(\d{2}/\d{2}/\d{4})\s+(\d+)\s+(.+?)\s+(?:IN\s+)?([\d,]+\.?\d*)\s*(CR)?\s*$`)
)

func (e *ICICIEngine) Parse(text string) *models.StatementRecord {
	rec := models.NewRecord(models.BankICICI)

	rec.CardholderName = textChain(text, models.NotFound, []textCandidate{
		{re: iciciName, group: 1, clean: strings.TrimSpace},
	})
	rec.CardLast4 = textChain(text, models.NotFound, []textCandidate{
		{re: iciciCard, group: 1},
	})
	rec.StatementDate = textChain(text, models.NotFound, []textCandidate{
		{re: iciciStatementDate, group: 1},
		{re: iciciPeriodEnd, group: 1},
	})
	rec.PaymentDueDate = e.extractDueDate(text)

	rec.TotalAmountDue = amountChain(text, []amountCandidate{
		{re: iciciTotalDue, group: 1},
	})
	rec.MinimumAmountDue = e.extractMinimumDue(text, rec.TotalAmountDue)

	rec.CreditLimit = amountChain(text, []amountCandidate{
		{re: iciciCreditLimit, group: 1},
	})
	rec.AvailableCredit = amountChain(text, []amountCandidate{
		{re: iciciAvailCredit, group: 1},
	})

	rec.Transactions = e.extractTransactions(text)
	return rec
}

func (e *ICICIEngine) extractDueDate(text string) string {
	if m := iciciDueDate.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	// The summary box is at the top of the statement; its second long-form
	// date is the due date.
	head := text
	if len(head) > 1000 {
		head = head[:1000]
	}
	dates := iciciLongDate.FindAllString(head, -1)
	if len(dates) >= 2 {
		return dates[1]
	}
	return models.NotFound
}

// extractMinimumDue resolves the minimum amount due through a progressively
// looser search: label-adjacent patterns, then the lines directly below the
// label, then a character window around the anchor bounded above by the
// already-found total due, then any line mentioning MINIMUM. The window and
// offset constants are empirically tuned against real statements; their
// precedence order is what matters.
func (e *ICICIEngine) extractMinimumDue(text string, totalDue float64) float64 {
	for _, re := range iciciMinDueChain {
		if m := re.FindStringSubmatch(text); m != nil {
			if v, err := parseAmount(m[1]); err == nil {
				return v
			}
		}
	}

	// Stacked layouts put the value a few lines below the label.
	if loc := iciciMinDueLabel.FindStringIndex(text); loc != nil {
		lines := strings.Split(text, "\n")
		labelLine := -1
		pos := 0
		for i, ln := range lines {
			if pos <= loc[0] && loc[0] < pos+len(ln)+1 {
				labelLine = i
				break
			}
			pos += len(ln) + 1
		}
		if labelLine >= 0 {
			for offset := 0; offset < 4 && labelLine+offset < len(lines); offset++ {
				if v := firstPositiveAmount(lines[labelLine+offset], 0); v > 0 {
					return v
				}
			}
		}
	}

	// Window heuristic: scan around the label (or the total-due match when
	// the label is absent) and accept the first positive value that does not
	// exceed the total due.
	anchor := -1
	if loc := iciciMinDueLabel.FindStringIndex(text); loc != nil {
		anchor = loc[1]
	} else if loc := iciciTotalDue.FindStringIndex(text); loc != nil {
		anchor = loc[1]
	}
	if anchor >= 0 {
		start := anchor - 200
		if start < 0 {
			start = 0
		}
		end := anchor + 400
		if end > len(text) {
			end = len(text)
		}
		for _, m := range iciciBareAmount.FindAllStringSubmatch(text[start:end], -1) {
			v, err := parseAmount(m[1])
			if err != nil || v <= 0 {
				continue
			}
			if totalDue == 0 || v <= totalDue {
				return v
			}
		}
	}

	for _, line := range strings.Split(text, "\n") {
		upper := strings.ToUpper(line)
		if strings.Contains(upper, "MINIMUM") || strings.Contains(upper, "MIN DUE") {
			if v := firstPositiveAmount(line, 0); v > 0 {
				return v
			}
		}
	}
	return 0
}

// firstPositiveAmount returns the first amount on the line above the floor,
// or 0 when none parses.
func firstPositiveAmount(line string, floor float64) float64 {
	for _, m := range iciciBareAmount.FindAllStringSubmatch(line, -1) {
		if v, err := parseAmount(m[1]); err == nil && v > floor {
			return v
		}
	}
	return 0
}

func (e *ICICIEngine) extractTransactions(text string) []models.Transaction {
	txns := []models.Transaction{}
	seen := map[string]struct{}{}
	for _, m := range iciciTxnLine.FindAllStringSubmatch(text, -1) {
		desc := collapseSpaces(m[3])
		if containsAnyFold(desc, []string{"TRANSACTION DETAILS", "DATE", "SERNO", "AMOUNT", "INTL", "STATEMENT"}) {
			continue
		}
		amount, err := parseAmount(m[4])
		if err != nil {
			continue
		}
		if m[5] != "" {
			amount = -amount
		}
		tx := models.Transaction{Date: m[1], Description: desc, Amount: amount}
		key := txnKey(tx.Date, tx.Description, tx.Amount)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		txns = append(txns, tx)
	}
	return txns
}
