package suppliers

type CreateSupplierRequest struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Email       string   `json:"email" validate:"required,email"`
	Phone       string   `json:"phone" validate:"required,max=50"`
	ContactName string   `json:"contactName" validate:"omitempty,max=200"`
	Type        string   `json:"type" validate:"required,oneof=manufacturer distributor wholesaler"`
	Categories  []string `json:"categories" validate:"omitempty,dive,max=100"`
	City        string   `json:"city" validate:"omitempty,max=100"`
	Country     string   `json:"country" validate:"omitempty,max=100"`
	IsPreferred bool     `json:"isPreferred"`
	Rating      float64  `json:"rating" validate:"gte=0,lte=5"`
}

type UpdateSupplierRequest struct {
	Name        *string   `json:"name,omitempty" validate:"omitempty,max=200"`
	Email       *string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone       *string   `json:"phone,omitempty" validate:"omitempty,max=50"`
	ContactName *string   `json:"contactName,omitempty" validate:"omitempty,max=200"`
	Type        *string   `json:"type,omitempty" validate:"omitempty,oneof=manufacturer distributor wholesaler"`
	Categories  *[]string `json:"categories,omitempty" validate:"omitempty,dive,max=100"`
	City        *string   `json:"city,omitempty" validate:"omitempty,max=100"`
	Country     *string   `json:"country,omitempty" validate:"omitempty,max=100"`
	IsPreferred *bool     `json:"isPreferred,omitempty"`
	Rating      *float64  `json:"rating,omitempty" validate:"omitempty,gte=0,lte=5"`
}

type setStatusRequest struct {
	IsActive bool `json:"isActive"`
}

type listResponse struct {
	Suppliers   []Supplier `json:"suppliers"`
	TotalCount  int        `json:"totalCount"`
	TotalPages  int        `json:"totalPages"`
	CurrentPage int        `json:"currentPage"`
	HasNextPage bool       `json:"hasNextPage"`
	HasPrevPage bool       `json:"hasPrevPage"`
}

type deleteResponse struct {
	Message  string   `json:"message"`
	Supplier Supplier `json:"supplier"`
}
