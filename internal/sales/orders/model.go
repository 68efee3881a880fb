package orders

import "time"

// Order statuses.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

type OrderItem struct {
	ProductName string  `json:"productName" yaml:"productName"`
	Quantity    float64 `json:"quantity" yaml:"quantity"`
	UnitPrice   float64 `json:"unitPrice" yaml:"unitPrice"`
}

type Order struct {
	ID           string      `json:"id" yaml:"id"`
	CustomerID   string      `json:"customerId" yaml:"customerId"`
	CustomerName string      `json:"customerName" yaml:"customerName"`
	Items        []OrderItem `json:"items" yaml:"items"`
	Status       string      `json:"status" yaml:"status"`
	Total        float64     `json:"total" yaml:"total"`
	Notes        string      `json:"notes,omitempty" yaml:"notes"`
	CreatedAt    time.Time   `json:"createdAt" yaml:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt" yaml:"updatedAt"`
}

// RecordID implements store.Record.
func (o Order) RecordID() string { return o.ID }
