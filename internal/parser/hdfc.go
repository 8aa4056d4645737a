package parser

import (
	"regexp"
	"strings"

	"github.com/hap4114/credit-card-statement-parser/internal/models"
)

// HDFCEngine handles HDFC Bank credit card statements (including the Paytm
// HDFC co-branded layout).
//
// The summary block is a label row followed by a value row:
//
//	Payment Due Date   Total Dues   Minimum Amount Due
//	04/05/2024         12,345.67    620.00
//
// Transactions sit in a "Domestic Transactions" section terminated by
// "Reward Points". Date format: DD/MM/YYYY. A trailing " Cr" marks credits.
type HDFCEngine struct{}

func (e *HDFCEngine) Bank() models.BankTag {
	return models.BankHDFC
}

var (
	hdfcNameLabel    = regexp.MustCompile(`(?i)Name\s*:\s*([A-Z][A-Za-z\s]+?)(?:\n|Email)`)
	hdfcNameNumbered = regexp.MustCompile(`Name\s*:\s*([A-Z\s]+)\s*\n\s*000`)
	// Some layouts print the cardholder name as the first all-caps line of
	// the transaction table instead of a labelled field.
	hdfcNameInTable = regexp.MustCompile(`(?s)Domestic Transactions\s+Date\s+Transaction Description\s+Amount.*?\n\s*([A-Z][A-Z\s]+[A-Z])\s*\n\s*\d{2}/\d{2}/\d{4}`)

	hdfcCardMasked = regexp.MustCompile(`Card No:\s*\d{4}\s*\d{2}XX\s*XXXX\s*(\d{4})`)
	hdfcCardLoose  = regexp.MustCompile(`\d{4}\s+\d{2}X+\s+X+\s+(\d{4})`)

	hdfcStatementDate = regexp.MustCompile(`Statement Date:\s*(\d{2}/\d{2}/\d{4})`)
	hdfcDueDateHeader = regexp.MustCompile(`(?s)Payment Due Date\s+Total Dues.*?\n(\d{2}/\d{2}/\d{4})`)
	// date followed by two amounts: the summary value row
	hdfcSummaryRow = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})\s+([\d,]+\.\d{2})\s+([\d,]+\.\d{2})`)

	hdfcTotalDuesLabel = regexp.MustCompile(`Total Dues[^\d]+([\d,]+\.\d{2})`)
	hdfcMinDueLabel    = regexp.MustCompile(`Minimum Amount Due[^\d]+([\d,]+\.\d{2})`)

	hdfcLimitsHeader = regexp.MustCompile(`(?i)Credit Limit\s+Available Credit Limit\s+Available Cash Limit\s*\n\s*([\d,]+)`)
	hdfcLimitPiped   = regexp.MustCompile(`(?i)Credit Limit\s*\|\s*([\d,]+)`)
	hdfcLimitLoose   = regexp.MustCompile(`(?i)Credit Limit[^\d\n]*([\d,]+)`)

	hdfcAvailHeader = regexp.MustCompile(`(?i)Credit Limit\s+Available Credit Limit\s+Available Cash Limit\s*\n\s*([\d,]+)(?:\.\d+)?\s+([\d,]+\.\d+)`)
	hdfcAvailSpread = regexp.MustCompile(`(?is)Credit Limit\s+Available Credit Limit.*?\n\s*[\d,]+(?:\.\d+)?\s+([\d,]+\.\d+)`)
	hdfcAvailPiped  = regexp.MustCompile(`(?i)Available Credit Limit\s*\|\s*([\d,]+\.?\d*)`)

	hdfcTxnSectionStart = regexp.MustCompile(`Domestic Transactions\s+Date\s+Transaction Description\s+Amount`)
	hdfcTxnSectionEnd   = regexp.MustCompile(`Reward Points`)
	hdfcTxnLine         = regexp.MustCompile(`^(\d{2}/\d{2}/\d{4})\s+(.+?)\s+([\d,]+\.\d{2})(\s+Cr)?$`)
	hdfcNameLine        = regexp.MustCompile(`^[A-Z][A-Za-z\s]+[A-Z]$`)
)

// cleanHDFCName strips trailing punctuation/digits that the label capture
// can pick up from adjacent columns.
var trailingNonLetters = regexp.MustCompile(`[^A-Za-z\s]+$`)

func cleanHDFCName(s string) string {
	return strings.TrimSpace(trailingNonLetters.ReplaceAllString(strings.TrimSpace(s), ""))
}

func (e *HDFCEngine) Parse(text string) *models.StatementRecord {
	rec := models.NewRecord(models.BankHDFC)

	rec.CardholderName = textChain(text, models.NotFound, []textCandidate{
		{re: hdfcNameLabel, group: 1, clean: cleanHDFCName, valid: func(s string) bool { return len(s) > 2 }},
		{re: hdfcNameNumbered, group: 1, clean: cleanHDFCName, valid: func(s string) bool { return len(s) > 2 }},
		{re: hdfcNameInTable, group: 1, clean: strings.TrimSpace, valid: func(s string) bool {
			if len(strings.Fields(s)) < 2 {
				return false
			}
			return !containsAnyFold(s, []string{"PAYTM", "TRANSACTION", "AMOUNT", "DATE", "NOIDA", "DELHI"})
		}},
	})

	rec.CardLast4 = textChain(text, models.NotFound, []textCandidate{
		{re: hdfcCardMasked, group: 1},
		{re: hdfcCardLoose, group: 1},
	})

	rec.StatementDate = textChain(text, models.NotFound, []textCandidate{
		{re: hdfcStatementDate, group: 1},
	})

	rec.PaymentDueDate = textChain(text, models.NotFound, []textCandidate{
		{re: hdfcDueDateHeader, group: 1},
		{re: hdfcSummaryRow, group: 1},
	})

	rec.TotalAmountDue = amountChain(text, []amountCandidate{
		{re: hdfcSummaryRow, group: 2},
		{re: hdfcTotalDuesLabel, group: 1},
	})

	rec.MinimumAmountDue = amountChain(text, []amountCandidate{
		{re: hdfcSummaryRow, group: 3},
		{re: hdfcMinDueLabel, group: 1},
	})

	rec.CreditLimit = amountChain(text, []amountCandidate{
		{re: hdfcLimitsHeader, group: 1},
		{re: hdfcLimitPiped, group: 1},
		// most tolerant candidate gets a sanity range so it cannot latch
		// onto an unrelated number
		{re: hdfcLimitLoose, group: 1, valid: func(v float64) bool { return v >= 1000 && v <= 1e9 }},
	})

	rec.AvailableCredit = amountChain(text, []amountCandidate{
		{re: hdfcAvailHeader, group: 2},
		{re: hdfcAvailSpread, group: 1},
		{re: hdfcAvailPiped, group: 1},
	})

	rec.Transactions = e.extractTransactions(text)
	return rec
}

func (e *HDFCEngine) extractTransactions(text string) []models.Transaction {
	txns := []models.Transaction{}
	section, ok := sectionBetween(text, hdfcTxnSectionStart, hdfcTxnSectionEnd)
	if !ok {
		return txns
	}

	headerWords := []string{"Domestic Transactions", "Date", "Transaction Description", "Amount"}
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		skip := false
		for _, w := range headerWords {
			if strings.Contains(line, w) {
				skip = true
				break
			}
		}
		if skip || hdfcNameLine.MatchString(line) {
			continue
		}

		m := hdfcTxnLine.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		amount, err := parseAmount(m[3])
		if err != nil {
			continue
		}
		if m[4] != "" {
			amount = -amount
		}
		txns = append(txns, models.Transaction{
			Date:        m[1],
			Description: strings.TrimSpace(m[2]),
			Amount:      amount,
		})
	}
	return txns
}
