package billing

import "time"

// DeriveStatus resolves the status displayed for an invoice. Evaluated in
// strict precedence order, first match wins:
//
//  1. cancelled and draft are returned unchanged
//  2. fully paid invoices are paid, due date notwithstanding
//  3. unpaid invoices past their due date are overdue
//  4. otherwise the stored status stands (typically sent)
func DeriveStatus(inv Invoice, now time.Time) string {
	if inv.Status == StatusCancelled || inv.Status == StatusDraft {
		return inv.Status
	}
	if inv.PaidAmount >= inv.Total {
		return StatusPaid
	}
	if inv.DueDate.Before(now) {
		return StatusOverdue
	}
	return inv.Status
}

// RemainingBalance derives the open amount at read time.
func RemainingBalance(inv Invoice) float64 {
	return inv.Total - inv.PaidAmount
}
