package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hap4114/credit-card-statement-parser/internal/models"
)

const indianSampleText = "INDIAN BANK\n" +
	"IBGCC Credit Card Statement\n" +
	"Mr. Suresh Babu, Chennai 600001\n" +
	"Statement Date Period Due Date\n" +
	"15-03-24 16-02-24 - 15-03-24 02-04-24\n" +
	"Card Number Total Due Min Due\n" +
	"4000 12XX XXXX 5678 12,340.00 620.00\n" +
	"Credit Limit Details\n" +
	"50,000.00 37,660.00 10,000.00 5,000.00\n" +
	"Txn. Date Transaction Particulars Cr/Dr Amount\n" +
	"18-MAR-24 POS PURCHASE GROCERY STORE Dr 1,240.00\n" +
	"20-MAR-24 NEFT PAYMENT RECEIVED Cr 5,000.00\n" +
	"CONTACT US 1800 425 00 000\n"

func TestIndianBankParse(t *testing.T) {
	rec := (&IndianBankEngine{}).Parse(indianSampleText)

	assert.Equal(t, models.BankIndian, rec.Bank)
	assert.Equal(t, "Suresh Babu", rec.CardholderName)
	assert.Equal(t, "5678", rec.CardLast4)
	assert.Equal(t, "15-03-24", rec.StatementDate)
	assert.Equal(t, "02-04-24", rec.PaymentDueDate)
	assert.Equal(t, 12340.00, rec.TotalAmountDue)
	assert.Equal(t, 620.00, rec.MinimumAmountDue)
	assert.Equal(t, 50000.0, rec.CreditLimit)
	assert.Equal(t, 37660.0, rec.AvailableCredit)

	require.Len(t, rec.Transactions, 2)
	assert.Equal(t, models.Transaction{Date: "18-MAR-24", Description: "POS PURCHASE GROCERY STORE", Amount: 1240.00}, rec.Transactions[0])
	assert.Equal(t, models.Transaction{Date: "20-MAR-24", Description: "NEFT PAYMENT RECEIVED", Amount: -5000.00}, rec.Transactions[1])
}

func TestIndianBankNameFallsBackToCapsLine(t *testing.T) {
	text := "statement of account\nSURESH BABU\ncard ending 5678\n"
	assert.Equal(t, "SURESH BABU", (&IndianBankEngine{}).extractName(text))
}

func TestIndianBankLooseCardMask(t *testing.T) {
	rec := (&IndianBankEngine{}).Parse("Card: XXXX 9912\n")
	assert.Equal(t, "9912", rec.CardLast4)
}

func TestIndianBankDuesLastPairFallback(t *testing.T) {
	// No masked card number: the last adjacent amount pair wins.
	text := "Summary\n" +
		"Opening 1,000.00 Closing 2,000.00\n" +
		"Total Due 3,500.00 175.00\n"
	total, minimum := (&IndianBankEngine{}).extractDues(text)
	assert.Equal(t, 3500.00, total)
	assert.Equal(t, 175.00, minimum)
}

func TestIndianBankTransactionsWithoutTableHeader(t *testing.T) {
	// OCR output missing the table header still yields transactions via the
	// whole-text scan.
	txns := (&IndianBankEngine{}).extractTransactions("18-MAR-24 ATM CASH WITHDRAWAL Dr 500.00\n")
	require.Len(t, txns, 1)
	assert.Equal(t, models.Transaction{Date: "18-MAR-24", Description: "ATM CASH WITHDRAWAL", Amount: 500.00}, txns[0])
}
