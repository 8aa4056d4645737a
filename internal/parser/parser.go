package parser

import (
	"github.com/hap4114/credit-card-statement-parser/internal/models"
)

// Engine extracts one bank's statement layout into the normalized record.
// Implementations are independent because layouts are unrelated between
// banks; each resolves fields through its own fallback chains. A field whose
// chain is exhausted keeps its sentinel default — a partially-populated
// record is always preferred over a failure, so Parse never errors.
type Engine interface {
	// Parse takes recovered plain text and returns structured statement data.
	Parse(text string) *models.StatementRecord
	// Bank returns the issuer tag this engine handles.
	Bank() models.BankTag
}

// New returns the extraction engine for the given bank tag. Unknown tags
// route to the generic engine, which performs no extraction and returns an
// all-default record — an explicit degraded result, not an error.
func New(bank models.BankTag) Engine {
	switch bank {
	case models.BankHDFC:
		return &HDFCEngine{}
	case models.BankICICI:
		return &ICICIEngine{}
	case models.BankAxis:
		return &AxisEngine{}
	case models.BankIDFC:
		return &IDFCEngine{}
	case models.BankIndian:
		return &IndianBankEngine{}
	default:
		return &GenericEngine{}
	}
}

// Parse identifies the issuer from the text and runs its engine, assembling
// the final record. This is the extraction entry point used by the pipeline.
func Parse(text string) *models.StatementRecord {
	engine := New(Identify(text))
	return Assemble(engine.Parse(text))
}
