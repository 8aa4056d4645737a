package parser

import (
	"regexp"
	"strings"

	"github.com/hap4114/credit-card-statement-parser/internal/models"
)

// IDFCEngine handles IDFC First Bank credit card statements.
//
// IDFC stacks labels above values:
//
//	Statement Date        Payment Due Date
//	15/03/2024            02/04/2024
//	Total Amount Due      Minimum Amount Due
//	r 18,200.00           r 910.00
//
// The rupee glyph usually survives text extraction as a bare "r".
// Transactions sit under "YOUR TRANSACTIONS", terminated by "KEY OFFERS" or
// a page footer. A trailing "CR" marks credits.
type IDFCEngine struct{}

func (e *IDFCEngine) Bank() models.BankTag {
	return models.BankIDFC
}

var (
	idfcNameAboveTitle = regexp.MustCompile(`(?m)^([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)\s*\n\s*Credit Card Statement`)
	idfcNameLabel      = regexp.MustCompile(`Customer Name\s*:\s*([A-Z][a-z]+(?:\s+[A-Z][a-z]+)+)`)
	idfcNameNearTitle  = regexp.MustCompile(`(?s)\n([A-Z][A-Za-z]+(?:\s+[A-Z][A-Za-z]+){1,3})\s*\n.*?Credit Card Statement`)
	idfcNameCardSuffix = regexp.MustCompile(`(?i)\s+Card\s+Number.*$`)

	idfcCardLabel = regexp.MustCompile(`Card Number\s*:?\s*\d+\*+(\d{4})`)

	idfcDatesStacked = regexp.MustCompile(`(?i)Statement\s+Date\s*\n\s*(\d{2}/\d{2}/\d{4})\s+(\d{2}/\d{2}/\d{4})`)
	idfcStmtDate     = regexp.MustCompile(`(?i)Statement\s+Date\s*\n\s*(\d{2}/\d{2}/\d{4})`)
	idfcDueDate      = regexp.MustCompile(`(?i)Payment\s+Due\s+Date\s*\n\s*(\d{2}/\d{2}/\d{4})`)
	idfcDatePair     = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})\s+(\d{2}/\d{2}/\d{4})`)

	idfcDuesStacked = regexp.MustCompile(`(?i)Total\s+Amount\s+Due\s+Minimum\s+Amount\s+Due\s*\n\s*r?\s*([\d,]+\.?\d*)\s+r?\s*([\d,]+\.?\d*)`)
	idfcDuesSpread  = regexp.MustCompile(`(?is)Total\s+Amount\s+Due.*?Minimum\s+Amount\s+Due.*?\n.*?[r₹]\s*([\d,]+\.?\d*).*?[r₹]\s*([\d,]+\.?\d*)`)
	idfcTotalLabel  = regexp.MustCompile(`(?i)Total\s+Amount\s+Due\s*:?\s*[r₹]?\s*([\d,]+\.?\d*)`)
	idfcMinLabel    = regexp.MustCompile(`(?i)Minimum\s+Amount\s+Due\s*:?\s*[r₹]?\s*([\d,]+\.?\d*)`)

	idfcLimitsBlock   = regexp.MustCompile(`(?is)Credit\s+Limit\s+Available\s+Credit\s+Limit.*?Cash\s+Limit`)
	idfcRupeeAmount   = regexp.MustCompile(`(?i)r\s*([\d,]+(?:\.\d+)?)`)
	idfcAnyAmount     = regexp.MustCompile(`(?:r|₹)?\s*([\d,]+(?:\.\d+)?)`)
	idfcCreditSection = regexp.MustCompile(`(?is)Credit\s+Limit.*?(?:Available|Cash|\n\n)`)
	idfcAvailSection  = regexp.MustCompile(`(?is)Available\s+Credit\s+Limit.*?(?:Cash|\n\n)`)

	idfcTxnSectionStart = regexp.MustCompile(`(?i)YOUR\s+TRANSACTIONS`)
	idfcTxnSectionEnd   = regexp.MustCompile(`(?i)KEY\s+OFFERS|Page\s+\d+`)
	idfcTxnLine         = regexp.MustCompile(`(?i)(\d{2}/\d{2}/\d{4})\s+(.+?)\s+([\d,]+\.?\d*)\s*(CR)?(?:\s*\n|\s*$)`)
)

func (e *IDFCEngine) Parse(text string) *models.StatementRecord {
	rec := models.NewRecord(models.BankIDFC)

	rec.CardholderName = textChain(text, models.NotFound, []textCandidate{
		{re: idfcNameAboveTitle, group: 1, clean: strings.TrimSpace},
		{re: idfcNameLabel, group: 1, clean: func(s string) string {
			return strings.TrimSpace(idfcNameCardSuffix.ReplaceAllString(strings.TrimSpace(s), ""))
		}},
		{re: idfcNameNearTitle, group: 1, clean: strings.TrimSpace, valid: func(s string) bool {
			return !containsAnyFold(s, []string{"ALWAYS", "FIRST", "BANK", "STATEMENT", "CARD NUMBER"})
		}},
	})

	rec.CardLast4 = extractMaskedLast4(text)
	if rec.CardLast4 == models.NotFound {
		rec.CardLast4 = textChain(text, models.NotFound, []textCandidate{
			{re: idfcCardLabel, group: 1},
		})
	}

	rec.StatementDate, rec.PaymentDueDate = e.extractDates(text)
	rec.TotalAmountDue, rec.MinimumAmountDue = e.extractDues(text)
	rec.CreditLimit, rec.AvailableCredit = e.extractLimits(text)
	rec.Transactions = e.extractTransactions(text)
	return rec
}

func (e *IDFCEngine) extractDates(text string) (string, string) {
	if m := idfcDatesStacked.FindStringSubmatch(text); m != nil {
		return m[1], m[2]
	}
	statementDate, dueDate := models.NotFound, models.NotFound
	if m := idfcStmtDate.FindStringSubmatch(text); m != nil {
		statementDate = m[1]
	}
	if m := idfcDueDate.FindStringSubmatch(text); m != nil {
		dueDate = m[1]
	}
	if statementDate != models.NotFound || dueDate != models.NotFound {
		return statementDate, dueDate
	}
	if m := idfcDatePair.FindStringSubmatch(text); m != nil {
		return m[1], m[2]
	}
	return models.NotFound, models.NotFound
}

func (e *IDFCEngine) extractDues(text string) (float64, float64) {
	for _, re := range []*regexp.Regexp{idfcDuesStacked, idfcDuesSpread} {
		if m := re.FindStringSubmatch(text); m != nil {
			total, errT := parseAmount(m[1])
			minimum, errM := parseAmount(m[2])
			if errT == nil && errM == nil {
				return total, minimum
			}
		}
	}
	var total, minimum float64
	if m := idfcTotalLabel.FindStringSubmatch(text); m != nil {
		total, _ = parseAmount(m[1])
	}
	if m := idfcMinLabel.FindStringSubmatch(text); m != nil {
		minimum, _ = parseAmount(m[1])
	}
	return total, minimum
}

// extractLimits reads credit/available limits from the limits block, then a
// line-pair scan, then per-label ranged fallback sweeps. The sanity ranges
// keep the most tolerant candidates from latching onto dates or reference
// numbers.
func (e *IDFCEngine) extractLimits(text string) (float64, float64) {
	var credit, available float64

	if m := idfcLimitsBlock.FindString(text); m != "" {
		amounts := idfcRupeeAmount.FindAllStringSubmatch(m, -1)
		if len(amounts) >= 3 {
			c, errC := parseAmount(amounts[0][1])
			a, errA := parseAmount(amounts[1][1])
			if errC == nil && errA == nil {
				return c, a
			}
		}
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.Contains(line, "Credit Limit") && strings.Contains(line, "Available Credit Limit") && i+1 < len(lines) {
			nums := idfcAnyAmount.FindAllStringSubmatch(lines[i+1], -1)
			if len(nums) >= 2 {
				c, errC := parseAmount(nums[0][1])
				a, errA := parseAmount(nums[1][1])
				if errC == nil && errA == nil {
					credit, available = c, a
				}
			}
		}
	}

	if credit == 0 {
		credit = scanSectionForAmount(text, idfcCreditSection, func(v float64) bool {
			return v >= 10000 && v <= 1e7
		})
	}
	if available == 0 {
		available = scanSectionForAmount(text, idfcAvailSection, func(v float64) bool {
			return v > 0 && v <= 1e7
		})
	}
	return credit, available
}

// scanSectionForAmount finds the section matching re and returns the first
// amount in it that passes the range check.
func scanSectionForAmount(text string, re *regexp.Regexp, inRange func(float64) bool) float64 {
	section := re.FindString(text)
	if section == "" {
		return 0
	}
	for _, m := range idfcAnyAmount.FindAllStringSubmatch(section, -1) {
		if v, err := parseAmount(m[1]); err == nil && inRange(v) {
			return v
		}
	}
	return 0
}

func (e *IDFCEngine) extractTransactions(text string) []models.Transaction {
	txns := []models.Transaction{}
	section, ok := sectionBetween(text, idfcTxnSectionStart, idfcTxnSectionEnd)
	if !ok {
		return txns
	}

	for _, m := range idfcTxnLine.FindAllStringSubmatch(section, -1) {
		desc := strings.TrimSpace(m[2])
		if containsAnyFold(desc, []string{"TRANSACTION", "DATE", "DETAILS", "AMOUNT", "CUSTOMER NAME", "CARD NUMBER"}) {
			continue
		}
		amount, err := parseAmount(m[3])
		if err != nil {
			continue
		}
		if m[4] != "" {
			amount = -amount
		}
		txns = append(txns, models.Transaction{Date: m[1], Description: desc, Amount: amount})
	}
	return dedupTransactions(txns)
}
