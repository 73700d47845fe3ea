package requests

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ComputeEstimatedTotal sums price*quantity over the lines. The total exists
// only when every referenced item has a known, non-null price; otherwise the
// result is nil. No partial sums.
func ComputeEstimatedTotal(lines []LineItemInput, prices map[uuid.UUID]*decimal.Decimal) *decimal.Decimal {
	if len(lines) == 0 {
		return nil
	}

	total := decimal.Zero
	for _, line := range lines {
		price, ok := prices[line.ItemID]
		if !ok || price == nil {
			return nil
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return &total
}
