// Package billing implements invoices: totals, payments and the derived
// financial status shown on the dashboard.
package billing

import "time"

// Invoice statuses. Draft and cancelled are stored and never auto-promoted;
// paid and overdue are derived at read time.
const (
	StatusDraft     = "draft"
	StatusSent      = "sent"
	StatusPaid      = "paid"
	StatusOverdue   = "overdue"
	StatusCancelled = "cancelled"
)

// Payment record defaults.
const (
	DefaultPaymentMethod = "Manual Entry"
	PaymentCompleted     = "completed"
)

type LineItem struct {
	Description string  `json:"description" yaml:"description"`
	Quantity    float64 `json:"quantity" yaml:"quantity"`
	UnitPrice   float64 `json:"unitPrice" yaml:"unitPrice"`
}

// Payment is an immutable entry in an invoice's payment history.
type Payment struct {
	ID        string    `json:"id" yaml:"id"`
	Amount    float64   `json:"amount" yaml:"amount"`
	Method    string    `json:"method" yaml:"method"`
	Reference string    `json:"reference,omitempty" yaml:"reference"`
	Date      time.Time `json:"date" yaml:"date"`
	Status    string    `json:"status" yaml:"status"`
}

type Invoice struct {
	ID             string     `json:"id" yaml:"id"`
	CustomerID     string     `json:"customerId" yaml:"customerId"`
	CustomerName   string     `json:"customerName" yaml:"customerName"`
	OrderID        string     `json:"orderId,omitempty" yaml:"orderId"`
	Items          []LineItem `json:"items" yaml:"items"`
	Subtotal       float64    `json:"subtotal" yaml:"subtotal"`
	DiscountAmount float64    `json:"discountAmount" yaml:"discountAmount"`
	TaxRate        float64    `json:"taxRate" yaml:"taxRate"`
	TaxAmount      float64    `json:"taxAmount" yaml:"taxAmount"`
	Total          float64    `json:"total" yaml:"total"`
	PaidAmount     float64    `json:"paidAmount" yaml:"paidAmount"`
	Payments       []Payment  `json:"payments" yaml:"payments"`
	Status         string     `json:"status" yaml:"status"`
	IssueDate      time.Time  `json:"issueDate" yaml:"issueDate"`
	DueDate        time.Time  `json:"dueDate" yaml:"dueDate"`
	Notes          string     `json:"notes,omitempty" yaml:"notes"`
	CreatedAt      time.Time  `json:"createdAt" yaml:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt" yaml:"updatedAt"`
}

// RecordID implements store.Record.
func (i Invoice) RecordID() string { return i.ID }

// InvoiceView is the read model: the stored invoice with its derived status
// and remaining balance. The balance is never stored.
type InvoiceView struct {
	Invoice
	Status           string  `json:"status"`
	RemainingBalance float64 `json:"remainingBalance"`
}
