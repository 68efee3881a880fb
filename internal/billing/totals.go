package billing

// Totals are the recomputed financial fields of an invoice.
type Totals struct {
	Subtotal  float64
	TaxAmount float64
	Total     float64
}

// RecalculateTotals derives subtotal, tax and total from line items. The
// discounted subtotal is deliberately not clamped at zero: a discount larger
// than the subtotal produces a negative base, mirroring how credit-style
// adjustments flow through unchanged.
func RecalculateTotals(items []LineItem, taxRate, discountAmount float64) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Quantity * item.UnitPrice
	}
	discounted := subtotal - discountAmount
	taxAmount := discounted * taxRate / 100
	return Totals{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		Total:     discounted + taxAmount,
	}
}
