package parser

import (
	"github.com/hap4114/credit-card-statement-parser/internal/models"
)

// GenericEngine handles statements from unrecognized issuers. It performs no
// extraction: without layout knowledge any pattern match would be a guess,
// so the degraded all-default record is the honest result.
type GenericEngine struct{}

func (e *GenericEngine) Bank() models.BankTag {
	return models.BankUnknown
}

func (e *GenericEngine) Parse(text string) *models.StatementRecord {
	return models.NewRecord(models.BankUnknown)
}
