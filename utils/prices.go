package utils

import (
	"github.com/shopspring/decimal"

	"github.com/shopkart-io/shopkart-backend-go/models"
)

// ItemsPrice recomputes the items subtotal as the sum of qty*price over the
// line items, rounded half-up to two decimal places and formatted with
// exactly two digits. It is a display helper; the stored itemsPrice on the
// order remains authoritative and is never overwritten from here.
func ItemsPrice(items []models.OrderItem) string {
	sum := decimal.Zero
	for _, item := range items {
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Qty)))
		sum = sum.Add(line)
	}
	return sum.Round(2).StringFixed(2)
}

// FormatPrice renders a single amount with two decimal digits, half-up.
func FormatPrice(amount float64) string {
	return decimal.NewFromFloat(amount).Round(2).StringFixed(2)
}
