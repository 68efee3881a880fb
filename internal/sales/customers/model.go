package customers

import "time"

// Customer types.
const (
	TypeBusiness   = "business"
	TypeIndividual = "individual"
)

type Customer struct {
	ID            string    `json:"id" yaml:"id"`
	Name          string    `json:"name" yaml:"name"`
	Email         string    `json:"email" yaml:"email"`
	Phone         string    `json:"phone" yaml:"phone"`
	Company       string    `json:"company,omitempty" yaml:"company"`
	Type          string    `json:"type" yaml:"type"`
	City          string    `json:"city,omitempty" yaml:"city"`
	Country       string    `json:"country,omitempty" yaml:"country"`
	IsActive      bool      `json:"isActive" yaml:"isActive"`
	TotalOrders   int       `json:"totalOrders" yaml:"totalOrders"`
	TotalSpent    float64   `json:"totalSpent" yaml:"totalSpent"`
	LastOrderDate time.Time `json:"lastOrderDate,omitzero" yaml:"lastOrderDate"`
	CreatedAt     time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// RecordID implements store.Record.
func (c Customer) RecordID() string { return c.ID }
