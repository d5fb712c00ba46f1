// Package pricing computes cart subtotals. It is pure: callers join cart
// lines with their catalog products and pass the result in.
package pricing

import (
	"fmt"
	"math"

	"krist-backend/models"
)

// Warning is a non-fatal data-integrity note produced while totalling, e.g.
// a cart line whose product no longer resolves to a price.
type Warning struct {
	Message string `json:"message"`
}

// Subtotal sums quantity times list price over the joined cart lines.
// Intermediate arithmetic is unrounded; apply Round2 at the display or
// submission boundary. Lines without a resolvable price contribute 0 and
// yield a warning instead of failing the whole calculation.
func Subtotal(items []models.CartItem) (float64, []Warning) {
	var total float64
	var warnings []Warning
	for _, item := range items {
		if item.Product == nil {
			warnings = append(warnings, Warning{
				Message: "cart line references a product with no resolvable price; counted as 0",
			})
			continue
		}
		total += float64(item.Quantity) * item.Product.Price.Org
	}
	return total, warnings
}

// Round2 rounds to two fraction digits.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatAmount renders a total the way it is shown and stored, with two
// fraction digits.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", Round2(v))
}
