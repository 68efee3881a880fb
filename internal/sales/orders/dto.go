package orders

type OrderItemRequest struct {
	ProductName string  `json:"productName" validate:"required,max=200"`
	Quantity    float64 `json:"quantity" validate:"required,gt=0"`
	UnitPrice   float64 `json:"unitPrice" validate:"gte=0"`
}

type CreateOrderRequest struct {
	CustomerID string             `json:"customerId" validate:"required"`
	Items      []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Notes      string             `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateOrderRequest struct {
	Items *[]OrderItemRequest `json:"items,omitempty" validate:"omitempty,min=1,dive"`
	Notes *string             `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending processing shipped delivered cancelled"`
}

type listResponse struct {
	Orders      []Order `json:"orders"`
	TotalCount  int     `json:"totalCount"`
	TotalPages  int     `json:"totalPages"`
	CurrentPage int     `json:"currentPage"`
	HasNextPage bool    `json:"hasNextPage"`
	HasPrevPage bool    `json:"hasPrevPage"`
}

type deleteResponse struct {
	Message string `json:"message"`
	Order   Order  `json:"order"`
}
