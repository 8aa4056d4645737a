package parser

import (
	"github.com/hap4114/credit-card-statement-parser/internal/models"
)

// Assemble finalizes an engine's record: a global dedup pass over the
// transaction list (engines dedup locally, but matched text regions can
// overlap), preserving first-seen order, plus the structural invariants —
// bank tag never empty, transaction slice never nil. No derived fields are
// computed here; utilization and categorization belong to the presentation
// layer.
func Assemble(rec *models.StatementRecord) *models.StatementRecord {
	if rec == nil {
		return models.NewRecord(models.BankUnknown)
	}
	if rec.Bank == "" {
		rec.Bank = models.BankUnknown
	}
	rec.Transactions = dedupTransactions(rec.Transactions)
	return rec
}

// dedupTransactions removes entries sharing (date, description prefix,
// amount), keeping the first occurrence. Pattern chains can double-match the
// same source line under two different candidates.
func dedupTransactions(txns []models.Transaction) []models.Transaction {
	unique := make([]models.Transaction, 0, len(txns))
	seen := make(map[string]struct{}, len(txns))
	for _, tx := range txns {
		key := txnKey(tx.Date, tx.Description, tx.Amount)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, tx)
	}
	return unique
}
