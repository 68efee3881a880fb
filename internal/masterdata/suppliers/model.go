package suppliers

import "time"

// Supplier types.
const (
	TypeManufacturer = "manufacturer"
	TypeDistributor  = "distributor"
	TypeWholesaler   = "wholesaler"
)

type Supplier struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Email       string    `json:"email" yaml:"email"`
	Phone       string    `json:"phone" yaml:"phone"`
	ContactName string    `json:"contactName,omitempty" yaml:"contactName"`
	Type        string    `json:"type" yaml:"type"`
	Categories  []string  `json:"categories" yaml:"categories"`
	City        string    `json:"city,omitempty" yaml:"city"`
	Country     string    `json:"country,omitempty" yaml:"country"`
	IsPreferred bool      `json:"isPreferred" yaml:"isPreferred"`
	IsActive    bool      `json:"isActive" yaml:"isActive"`
	TotalOrders int       `json:"totalOrders" yaml:"totalOrders"`
	TotalSpent  float64   `json:"totalSpent" yaml:"totalSpent"`
	Rating      float64   `json:"rating" yaml:"rating"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// RecordID implements store.Record.
func (s Supplier) RecordID() string { return s.ID }
