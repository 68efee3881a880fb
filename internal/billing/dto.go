package billing

import "time"

type LineItemRequest struct {
	Description string  `json:"description" validate:"required,max=500"`
	Quantity    float64 `json:"quantity" validate:"required,gt=0"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0"`
}

type CreateInvoiceRequest struct {
	CustomerID     string            `json:"customerId" validate:"required"`
	OrderID        string            `json:"orderId" validate:"omitempty"`
	Items          []LineItemRequest `json:"items" validate:"required,min=1,dive"`
	TaxRate        float64           `json:"taxRate" validate:"gte=0"`
	DiscountAmount float64           `json:"discountAmount" validate:"gte=0"`
	IssueDate      *time.Time        `json:"issueDate,omitempty"`
	DueDate        time.Time         `json:"dueDate" validate:"required"`
	Notes          string            `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateInvoiceRequest struct {
	Items          *[]LineItemRequest `json:"items,omitempty" validate:"omitempty,min=1,dive"`
	TaxRate        *float64           `json:"taxRate,omitempty" validate:"omitempty,gte=0"`
	DiscountAmount *float64           `json:"discountAmount,omitempty" validate:"omitempty,gte=0"`
	DueDate        *time.Time         `json:"dueDate,omitempty"`
	Notes          *string            `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// AddPaymentRequest records a payment. Amount is range-checked by the
// service so the rejection carries the payment-specific error message.
type AddPaymentRequest struct {
	Amount    float64    `json:"amount"`
	Method    string     `json:"method"`
	Reference string     `json:"reference"`
	Date      *time.Time `json:"date,omitempty"`
}

type listResponse struct {
	Invoices    []InvoiceView `json:"invoices"`
	TotalCount  int           `json:"totalCount"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
	HasNextPage bool          `json:"hasNextPage"`
	HasPrevPage bool          `json:"hasPrevPage"`
}

type paymentResponse struct {
	Message string      `json:"message"`
	Payment Payment     `json:"payment"`
	Invoice InvoiceView `json:"invoice"`
}

type cancelResponse struct {
	Message string      `json:"message"`
	Invoice InvoiceView `json:"invoice"`
}
