package parser

import (
	"strings"

	"github.com/hap4114/credit-card-statement-parser/internal/models"
)

// bankMarkers maps each supported issuer to the marker strings that appear
// in its statements. Matching is case-insensitive substring search; the
// first bank in table order with any marker present wins. No scoring and no
// ambiguity resolution.
var bankMarkers = []struct {
	bank    models.BankTag
	markers []string
}{
	{models.BankHDFC, []string{"HDFC Bank", "HDFC BANK", "Paytm HDFC"}},
	{models.BankICICI, []string{"ICICI Bank", "ICICI BANK", "ICICI CARD"}},
	{models.BankAxis, []string{"AXIS BANK", "Axis Bank", "Axis Cards", "Flipkart Axis Bank"}},
	{models.BankIDFC, []string{"IDFC FIRST", "IDFC FIRST BANK", "IDFC Bank"}},
	{models.BankIndian, []string{"Indian Bank", "INDIAN BANK", "IBGCC"}},
}

// Identify scans recovered statement text for bank marker strings and
// returns the matching issuer tag. An unrecognized statement yields
// BankUnknown, which routes to the generic engine; it is not an error.
func Identify(text string) models.BankTag {
	upper := strings.ToUpper(text)
	for _, entry := range bankMarkers {
		for _, marker := range entry.markers {
			if strings.Contains(upper, strings.ToUpper(marker)) {
				return entry.bank
			}
		}
	}
	return models.BankUnknown
}
