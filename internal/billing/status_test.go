package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var statusNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func TestDeriveStatus(t *testing.T) {
	past := statusNow.AddDate(0, 0, -10)
	future := statusNow.AddDate(0, 0, 10)

	cases := []struct {
		name string
		inv  Invoice
		want string
	}{
		{"draft stays draft even past due", Invoice{Status: StatusDraft, Total: 100, DueDate: past}, StatusDraft},
		{"cancelled stays cancelled", Invoice{Status: StatusCancelled, Total: 100, PaidAmount: 100, DueDate: past}, StatusCancelled},
		{"fully paid wins over overdue", Invoice{Status: StatusSent, Total: 100, PaidAmount: 100, DueDate: past}, StatusPaid},
		{"overpaid resolves to paid", Invoice{Status: StatusSent, Total: 100, PaidAmount: 150, DueDate: future}, StatusPaid},
		{"past due and unpaid is overdue", Invoice{Status: StatusSent, Total: 100, PaidAmount: 0, DueDate: past}, StatusOverdue},
		{"partially paid past due is overdue", Invoice{Status: StatusSent, Total: 1650, PaidAmount: 500, DueDate: past}, StatusOverdue},
		{"sent and not yet due stays sent", Invoice{Status: StatusSent, Total: 100, PaidAmount: 50, DueDate: future}, StatusSent},
		{"zero total counts as paid", Invoice{Status: StatusSent, Total: 0, PaidAmount: 0, DueDate: past}, StatusPaid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveStatus(tc.inv, statusNow))
		})
	}
}

func TestRemainingBalance(t *testing.T) {
	assert.Equal(t, 1150.0, RemainingBalance(Invoice{Total: 1650, PaidAmount: 500}))
	assert.Equal(t, -50.0, RemainingBalance(Invoice{Total: 100, PaidAmount: 150}))
}

func TestRecalculateTotals(t *testing.T) {
	items := []LineItem{
		{Description: "Widget", Quantity: 4, UnitPrice: 250},
		{Description: "Fitting", Quantity: 2, UnitPrice: 50},
	}

	totals := RecalculateTotals(items, 10, 100)
	assert.Equal(t, 1100.0, totals.Subtotal)
	assert.InDelta(t, 100.0, totals.TaxAmount, 1e-9)
	assert.InDelta(t, 1100.0, totals.Total, 1e-9)
}

func TestRecalculateTotalsNoItems(t *testing.T) {
	totals := RecalculateTotals(nil, 20, 0)
	assert.Equal(t, 0.0, totals.Subtotal)
	assert.Equal(t, 0.0, totals.Total)
}

func TestRecalculateTotalsDiscountExceedsSubtotal(t *testing.T) {
	// Oversized discounts flow through as a negative base and negative tax.
	items := []LineItem{{Description: "Credit item", Quantity: 1, UnitPrice: 100}}
	totals := RecalculateTotals(items, 10, 150)
	assert.Equal(t, 100.0, totals.Subtotal)
	assert.InDelta(t, -5.0, totals.TaxAmount, 1e-9)
	assert.InDelta(t, -55.0, totals.Total, 1e-9)
}
