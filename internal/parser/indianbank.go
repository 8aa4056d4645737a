package parser

import (
	"regexp"
	"strings"

	"github.com/hap4114/credit-card-statement-parser/internal/models"
)

// IndianBankEngine handles Indian Bank (IBGCC) credit card statements.
//
// The header row packs four short dates — statement date, period start,
// period end, due date:
//
//	15-03-24  16-02-24 - 15-03-24  02-04-24
//
// Transaction dates use DD-MMM-YY with the Cr/Dr marker *before* the amount:
//
//	18-MAR-24  POS PURCHASE GROCERY  Dr  1,240.00
type IndianBankEngine struct{}

func (e *IndianBankEngine) Bank() models.BankTag {
	return models.BankIndian
}

var (
	indianNameTitle = regexp.MustCompile(`Mr\.?\s+([A-Z][A-Za-z\s]+)`)

	indianCardMasked = regexp.MustCompile(`(\d{4})\s*\d{2}XX\s*XXXX\s*(\d{4})`)
	indianCardLoose  = regexp.MustCompile(`XXXX\s*(\d{4})`)

	indianDatesRow = regexp.MustCompile(`(\d{2}-\d{2}-\d{2})\s+(\d{2}-\d{2}-\d{2})\s*-\s*(\d{2}-\d{2}-\d{2})\s+(\d{2}-\d{2}-\d{2})`)

	indianDuesAfterCard = regexp.MustCompile(`(?s)\d{4}\s+\d{2}XX\s+XXXX\s+\d{4}.*?\s+([\d,]+\.\d{2})\s+([\d,]+\.\d{2})`)
	indianAmountPair    = regexp.MustCompile(`([\d,]+\.\d{2})\s+([\d,]+\.\d{2})`)
	indianLimitsRow     = regexp.MustCompile(`([\d,]+\.\d{2})\s+([\d,]+\.\d{2})\s+([\d,]+\.\d{2})\s+([\d,]+\.\d{2})`)

	indianTxnSectionStart = regexp.MustCompile(`(?i)Txn\.\s*Date\s*Transaction Particulars`)
	indianTxnSectionEnd   = regexp.MustCompile(`CONTACT|Mr\.|Page`)
	indianTxnLine         = regexp.MustCompile(`(?i)(\d{2}-[A-Z]{3}-\d{2})\s+(.+?)\s+(Cr|Dr)\s+([\d,]+\.\d{2})`)
)

func (e *IndianBankEngine) Parse(text string) *models.StatementRecord {
	rec := models.NewRecord(models.BankIndian)

	rec.CardholderName = e.extractName(text)
	rec.CardLast4 = textChain(text, models.NotFound, []textCandidate{
		{re: indianCardMasked, group: 2},
		{re: indianCardLoose, group: 1},
	})

	if m := indianDatesRow.FindStringSubmatch(text); m != nil {
		rec.StatementDate = m[1]
		rec.PaymentDueDate = m[4]
	}

	rec.TotalAmountDue, rec.MinimumAmountDue = e.extractDues(text)

	if m := indianLimitsRow.FindStringSubmatch(text); m != nil {
		credit, errC := parseAmount(m[1])
		available, errA := parseAmount(m[2])
		if errC == nil && errA == nil {
			rec.CreditLimit = credit
			rec.AvailableCredit = available
		}
	}

	rec.Transactions = e.extractTransactions(text)
	return rec
}

func (e *IndianBankEngine) extractName(text string) string {
	if m := indianNameTitle.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	for _, line := range strings.Split(text, "\n") {
		ln := strings.TrimSpace(line)
		if ln != "" && ln == strings.ToUpper(ln) && ln != strings.ToLower(ln) && len(strings.Fields(ln)) >= 2 {
			return ln
		}
	}
	return models.NotFound
}

// extractDues prefers the amount pair following the masked card number;
// failing that, the last amount pair in the document (the summary repeats at
// the bottom of Indian Bank statements).
func (e *IndianBankEngine) extractDues(text string) (float64, float64) {
	if m := indianDuesAfterCard.FindStringSubmatch(text); m != nil {
		total, errT := parseAmount(m[1])
		minimum, errM := parseAmount(m[2])
		if errT == nil && errM == nil {
			return total, minimum
		}
	}
	pairs := indianAmountPair.FindAllStringSubmatch(text, -1)
	if len(pairs) > 0 {
		last := pairs[len(pairs)-1]
		total, errT := parseAmount(last[1])
		minimum, errM := parseAmount(last[2])
		if errT == nil && errM == nil {
			return total, minimum
		}
	}
	return 0, 0
}

func (e *IndianBankEngine) extractTransactions(text string) []models.Transaction {
	section, ok := sectionBetween(text, indianTxnSectionStart, indianTxnSectionEnd)
	if !ok {
		// No table header (heavily OCR-degraded statement): fall back to
		// scanning the whole text for transaction-shaped lines.
		section = text
	}

	txns := []models.Transaction{}
	for _, m := range indianTxnLine.FindAllStringSubmatch(section, -1) {
		amount, err := parseAmount(m[4])
		if err != nil {
			continue
		}
		if strings.EqualFold(m[3], "Cr") {
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
