package parser

import (
	"regexp"
	"strings"

	"github.com/hap4114/credit-card-statement-parser/internal/models"
)

// AxisEngine handles Axis Bank credit card statements (including the
// Flipkart Axis co-brand).
//
// The payment summary is a section between "PAYMENT SUMMARY" and
// "AUTO-DEBIT" where amounts carry a Dr/Cr suffix:
//
//	12/03/2024  15/03/2024  02/04/2024
//	45,000.00 Dr   2,250.00 Dr
//
// Scanned Axis statements frequently arrive through OCR with transaction
// lines wrapped, so extraction runs the column pattern first and then a
// line-based re-scan that carries the last-seen date forward.
type AxisEngine struct{}

func (e *AxisEngine) Bank() models.BankTag {
	return models.BankAxis
}

var (
	axisNameBeforeAddr = regexp.MustCompile(`\n([A-Z][A-Z\s,.-]+)\nB/`)
	axisCardMask       = regexp.MustCompile(`(\d{6}\*{6}(\d{4}))|(\*{6}(\d{4}))`)
	axisDate           = regexp.MustCompile(`(\d{2}/\d{2}/\d{4})`)
	axisDrAmount       = regexp.MustCompile(`(?i)([\d\s,]+\.\d{2})\s*Dr`)
	axisLimitsRow      = regexp.MustCompile(`\*{4,}\d{4}\s+([\d,]+\.\d{2})\s+([\d,]+\.\d{2})`)
	axisTxnLine        = regexp.MustCompile(`(?i)(\d{2}/\d{2}/\d{4})\s+(.+?)\s+([\d\s,]+\.\d{2})\s*(Dr|Cr)\b`)
	axisLineDate       = regexp.MustCompile(`^(\d{2}/\d{2}/\d{4})`)
	axisLineAmount     = regexp.MustCompile(`(?i)([\d\s,]+\.\d{2})\s*(Dr|Cr)\b`)
	axisMultiSpace     = regexp.MustCompile(` {2,}`)
)

func (e *AxisEngine) Parse(text string) *models.StatementRecord {
	rec := models.NewRecord(models.BankAxis)

	rec.CardholderName = e.extractName(text)
	rec.CardLast4 = extractMaskedLast4(text)

	statementDate, dueDate, totalDue, minDue := e.extractPaymentSummary(text)
	rec.StatementDate = statementDate
	rec.PaymentDueDate = dueDate
	rec.TotalAmountDue = totalDue
	rec.MinimumAmountDue = minDue

	if m := axisLimitsRow.FindStringSubmatch(text); m != nil {
		rec.CreditLimit = cleanAmount(m[1])
		rec.AvailableCredit = cleanAmount(m[2])
	}

	rec.Transactions = e.extractTransactions(text)
	return rec
}

func (e *AxisEngine) extractName(text string) string {
	if m := axisNameBeforeAddr.FindStringSubmatch(text); m != nil {
		return collapseSpaces(m[1])
	}
	// Fallback: first standalone all-caps line that is not a heading.
	for _, line := range strings.Split(text, "\n") {
		ln := strings.TrimSpace(line)
		if ln == "" || len(ln) >= 60 || len(strings.Fields(ln)) < 2 {
			continue
		}
		if ln != strings.ToUpper(ln) || ln == strings.ToLower(ln) {
			continue
		}
		if containsAnyFold(ln, []string{"AXIS", "STATEMENT", "PAYMENT", "SUMMARY"}) {
			continue
		}
		return collapseSpaces(ln)
	}
	return models.NotFound
}

// extractMaskedLast4 pulls the last four digits out of a masked card number
// like "123456******7890" or "******7890". Shared with the IDFC engine,
// which uses the same masking.
func extractMaskedLast4(text string) string {
	if m := axisCardMask.FindStringSubmatch(text); m != nil {
		for _, g := range []string{m[2], m[4]} {
			if len(g) == 4 {
				return g
			}
		}
	}
	return models.NotFound
}

// extractPaymentSummary reads the statement/due dates and the due amounts
// from the payment summary section. Positional: the second date is the
// statement date, the third the due date; the first Dr amount is the total
// due and the second the minimum (defaulting to the total when absent).
func (e *AxisEngine) extractPaymentSummary(text string) (string, string, float64, float64) {
	section := text
	upper := strings.ToUpper(text)
	start := strings.Index(upper, "PAYMENT SUMMARY")
	end := strings.Index(upper, "AUTO-DEBIT")
	if start != -1 && end != -1 {
		stop := end + 300
		if stop > len(text) {
			stop = len(text)
		}
		section = text[start:stop]
	}

	statementDate, dueDate := models.NotFound, models.NotFound
	dates := axisDate.FindAllString(section, -1)
	if len(dates) >= 2 {
		statementDate = dates[1]
	}
	if len(dates) >= 3 {
		dueDate = dates[2]
	}

	var totalDue, minDue float64
	amounts := axisDrAmount.FindAllStringSubmatch(section, -1)
	if len(amounts) > 0 {
		totalDue = cleanAmount(amounts[0][1])
		if len(amounts) > 1 {
			minDue = cleanAmount(amounts[1][1])
		} else {
			minDue = totalDue
		}
	}
	return statementDate, dueDate, totalDue, minDue
}

func (e *AxisEngine) extractTransactions(text string) []models.Transaction {
	normalized := strings.ReplaceAll(text, "\r", "")
	normalized = strings.ReplaceAll(normalized, "\t", " ")
	normalized = axisMultiSpace.ReplaceAllString(normalized, " ")

	txns := []models.Transaction{}
	for _, m := range axisTxnLine.FindAllStringSubmatch(normalized, -1) {
		amount := cleanAmount(m[3])
		if strings.EqualFold(m[4], "Cr") {
			amount = -amount
		}
		txns = append(txns, models.Transaction{
			Date:        m[1],
			Description: strings.TrimSpace(m[2]),
			Amount:      amount,
		})
	}

	// Line-based re-scan for entries broken across OCR line wraps: a bare
	// date line is remembered and applied to following amount-only lines.
	var lastDate string
	for _, line := range strings.Split(normalized, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := axisLineDate.FindStringSubmatch(line); m != nil {
			lastDate = m[1]
			continue
		}
		m := axisLineAmount.FindStringSubmatch(line)
		if m == nil || lastDate == "" {
			continue
		}
		amount := cleanAmount(m[1])
		if strings.EqualFold(m[2], "Cr") {
			amount = -amount
		}
		desc := strings.TrimSpace(axisLineAmount.ReplaceAllString(line, ""))
		if desc == "" {
			continue
		}
		txns = append(txns, models.Transaction{Date: lastDate, Description: desc, Amount: amount})
	}

	return dedupTransactions(txns)
}
