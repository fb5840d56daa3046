package orders

import (
	"fmt"
	"time"

	"naturesbasket/models"
	"naturesbasket/utils"
)

const (
	ShippingCost    = 50.0
	PlatformFeeRate = 0.10
	TaxRate         = 0.0 // produce is untaxed; the field stays on the order
)

// ComputeTotals fills the monetary fields from the line items:
// subtotal = Σ line.Total, total = subtotal + shipping + fee + tax.
func ComputeTotals(o *models.Order) {
	subtotal := 0.0
	for _, it := range o.Items {
		subtotal += it.Total
	}
	o.Subtotal = subtotal
	o.ShippingCost = ShippingCost
	o.PlatformFee = subtotal * PlatformFeeRate
	o.Tax = subtotal * TaxRate
	o.Total = o.Subtotal + o.ShippingCost + o.PlatformFee + o.Tax
}

// NewOrderNumber generates the human-readable order number, independent of
// the internal order id.
func NewOrderNumber(now time.Time) string {
	return fmt.Sprintf("NB-%s-%s", now.Format("20060102"), utils.GenerateRandomDigitString(6))
}

// SnapshotItem freezes a cart line against the live product read at order
// time. The unit price comes from the re-read, not the cart snapshot, so the
// order reflects the price in force when it was placed.
func SnapshotItem(line models.CartLine, p models.Product) models.OrderItem {
	return models.OrderItem{
		ProductID: p.ProductID,
		FarmerID:  p.FarmerID,
		Name:      p.Name,
		Unit:      p.Unit,
		Quantity:  line.Quantity,
		UnitPrice: p.Price,
		Total:     p.Price * float64(line.Quantity),
	}
}
