package types

import "github.com/shopspring/decimal"

// Monetary values cross the API as JSON numbers with 2-decimal semantics, not
// as quoted strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}
