package models

// Transaction represents a single statement line item.
// Amount is signed: positive means a debit (money owed increases),
// negative means a credit (payment or refund). Every bank engine
// normalizes to this convention regardless of how the source text
// encodes credits.
type Transaction struct {
	Date        string  `json:"date"` // kept in source format, not reparsed
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// BankTag identifies which issuer's engine produced a record.
type BankTag string

const (
	BankHDFC    BankTag = "HDFC"
	BankICICI   BankTag = "ICICI"
	BankAxis    BankTag = "Axis Bank"
	BankIDFC    BankTag = "IDFC First"
	BankIndian  BankTag = "Indian Bank"
	BankUnknown BankTag = "UNKNOWN"
	BankCorrupt BankTag = "CORRUPT"
)

// Sentinel values for fields an engine could not resolve.
const (
	NotFound       = "Not Found"
	CorruptField   = "corrupt"
	AmountNotFound = 0.0
)

// StatementRecord is the normalized, bank-agnostic output of the pipeline.
// Scalar fields are best-effort: text fields default to NotFound and
// currency fields to 0.0 when no pattern in the engine's fallback chain
// matched. All currency fields are non-negative except Transaction.Amount.
type StatementRecord struct {
	Bank             BankTag       `json:"bank"`
	CardholderName   string        `json:"cardholderName"`
	CardLast4        string        `json:"cardLast4"`
	StatementDate    string        `json:"statementDate"`
	PaymentDueDate   string        `json:"paymentDueDate"`
	TotalAmountDue   float64       `json:"totalAmountDue"`
	MinimumAmountDue float64       `json:"minimumAmountDue"`
	CreditLimit      float64       `json:"creditLimit"`
	AvailableCredit  float64       `json:"availableCredit"`
	Transactions     []Transaction `json:"transactions"`
}

// NewRecord returns a record for the given bank with every field at its
// sentinel default and an empty (non-nil) transaction list.
func NewRecord(bank BankTag) *StatementRecord {
	if bank == "" {
		bank = BankUnknown
	}
	return &StatementRecord{
		Bank:           bank,
		CardholderName: NotFound,
		CardLast4:      NotFound,
		StatementDate:  NotFound,
		PaymentDueDate: NotFound,
		Transactions:   []Transaction{},
	}
}

// NewCorruptRecord is the placeholder returned for documents that cannot
// even be opened. It is a terminal result, not an error: the caller can
// render it without a separate failure path.
func NewCorruptRecord() *StatementRecord {
	return &StatementRecord{
		Bank:           BankCorrupt,
		CardholderName: CorruptField,
		CardLast4:      CorruptField,
		StatementDate:  CorruptField,
		PaymentDueDate: CorruptField,
		Transactions:   []Transaction{},
	}
}
