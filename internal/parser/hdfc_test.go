package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hap4114/credit-card-statement-parser/internal/models"
)

const hdfcSampleText = `HDFC Bank Credit Card Statement
Name: RAHUL SHARMA
Email: rahul.sharma@example.com
Card No: 4321 12XX XXXX 9876
Statement Date: 15/04/2024
Payment Due Date Total Dues Minimum Amount Due
05/05/2024 45,230.50 2,260.00
Credit Limit Available Credit Limit Available Cash Limit
2,00,000 1,54,769.50 40,000.00
Domestic Transactions Date Transaction Description Amount
RAHUL SHARMA
05/04/2024 AMAZON PURCHASE 1,234.56
08/04/2024 SWIGGY BANGALORE 567.89
10/04/2024 PAYMENT RECEIVED 5,000.00 Cr
Reward Points Summary
`

func TestHDFCParse(t *testing.T) {
	rec := (&HDFCEngine{}).Parse(hdfcSampleText)

	assert.Equal(t, models.BankHDFC, rec.Bank)
	assert.Equal(t, "RAHUL SHARMA", rec.CardholderName)
	assert.Equal(t, "9876", rec.CardLast4)
	assert.Equal(t, "15/04/2024", rec.StatementDate)
	assert.Equal(t, "05/05/2024", rec.PaymentDueDate)
	assert.Equal(t, 45230.50, rec.TotalAmountDue)
	assert.Equal(t, 2260.00, rec.MinimumAmountDue)
	assert.Equal(t, 200000.0, rec.CreditLimit)
	assert.Equal(t, 154769.50, rec.AvailableCredit)

	require.Len(t, rec.Transactions, 3)
	assert.Equal(t, models.Transaction{Date: "05/04/2024", Description: "AMAZON PURCHASE", Amount: 1234.56}, rec.Transactions[0])
	assert.Equal(t, models.Transaction{Date: "08/04/2024", Description: "SWIGGY BANGALORE", Amount: 567.89}, rec.Transactions[1])
	assert.Equal(t, models.Transaction{Date: "10/04/2024", Description: "PAYMENT RECEIVED", Amount: -5000.00}, rec.Transactions[2])
}

// The date-first transaction pattern: a debit line parses as-is and a
// trailing " Cr" marker flips the sign.
func TestHDFCTransactionSignConvention(t *testing.T) {
	t.Run("debit", func(t *testing.T) {
		txns := (&HDFCEngine{}).extractTransactions(
			"Domestic Transactions Date Transaction Description Amount\n" +
				"05/04/2024  AMAZON PURCHASE  1,234.56\n" +
				"Reward Points")
		require.Len(t, txns, 1)
		assert.Equal(t, "05/04/2024", txns[0].Date)
		assert.Equal(t, "AMAZON PURCHASE", txns[0].Description)
		assert.Equal(t, 1234.56, txns[0].Amount)
	})

	t.Run("credit marker flips sign", func(t *testing.T) {
		txns := (&HDFCEngine{}).extractTransactions(
			"Domestic Transactions Date Transaction Description Amount\n" +
				"05/04/2024  AMAZON PURCHASE  1,234.56 Cr\n" +
				"Reward Points")
		require.Len(t, txns, 1)
		assert.Equal(t, -1234.56, txns[0].Amount)
	})
}

func TestHDFCMissingSectionYieldsNoTransactions(t *testing.T) {
	rec := (&HDFCEngine{}).Parse("HDFC Bank\nName: RAHUL SHARMA\nEmail\nno transaction table here")
	assert.Empty(t, rec.Transactions)
	assert.NotNil(t, rec.Transactions)
}

func TestHDFCFieldDefaultsWhenChainsExhausted(t *testing.T) {
	rec := (&HDFCEngine{}).Parse("HDFC Bank statement with nothing recognizable")
	assert.Equal(t, models.NotFound, rec.CardholderName)
	assert.Equal(t, models.NotFound, rec.CardLast4)
	assert.Equal(t, models.NotFound, rec.StatementDate)
	assert.Equal(t, models.NotFound, rec.PaymentDueDate)
	assert.Equal(t, 0.0, rec.TotalAmountDue)
	assert.Equal(t, 0.0, rec.CreditLimit)
}

func TestHDFCDuplicateLinesDedupe(t *testing.T) {
	text := `HDFC Bank
Domestic Transactions Date Transaction Description Amount
05/04/2024 AMAZON PURCHASE 1,234.56
05/04/2024 AMAZON PURCHASE 1,234.56
Reward Points`

	rec := Assemble((&HDFCEngine{}).Parse(text))
	assert.Len(t, rec.Transactions, 1)
}
