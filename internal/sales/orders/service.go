package orders

import (
	"context"
	"time"

	"github.com/meridian-oms/meridian/internal/platform/httpx"
	"github.com/meridian-oms/meridian/internal/query"
)

// Errors surfaced by order operations.
var (
	ErrUnknownCustomer = httpx.E(httpx.ErrValidation, "Unknown customer")
	ErrNotDeletable    = httpx.E(httpx.ErrDependentActivity, "Cannot delete order that has been processed. Cancel instead.")
)

// CustomerDirectory resolves customer ids to display names.
type CustomerDirectory interface {
	CustomerName(ctx context.Context, id string) (string, error)
}

// ReportInvalidator bumps the cached report version after a write so the
// next dashboard read recomputes from live data.
type ReportInvalidator interface {
	Invalidate(ctx context.Context) error
}

type Service struct {
	repo      Repository
	customers CustomerDirectory
	reports   ReportInvalidator
	now       func() time.Time
}

func NewService(repo Repository, customers CustomerDirectory) *Service {
	return &Service{
		repo:      repo,
		customers: customers,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// WithReportInvalidator wires the report cache invalidation hook.
func (s *Service) WithReportInvalidator(inv ReportInvalidator) {
	s.reports = inv
}

// Invalidation is best effort; a failed bump only delays freshness until the
// cache TTL expires.
func (s *Service) invalidateReports(ctx context.Context) {
	if s.reports != nil {
		_ = s.reports.Invalidate(ctx)
	}
}

func schema() query.Schema[Order] {
	return query.Schema[Order]{
		Search: func(o Order) []string {
			return []string{o.ID, o.CustomerName, o.CustomerID}
		},
		Filters: map[string]func(Order) string{
			"status": func(o Order) string { return o.Status },
		},
		Sort: map[string]func(a, b Order) int{
			"createdAt":    query.ByTime(func(o Order) time.Time { return o.CreatedAt }),
			"updatedAt":    query.ByTime(func(o Order) time.Time { return o.UpdatedAt }),
			"total":        query.ByNumber(func(o Order) float64 { return o.Total }),
			"customerName": query.ByString(func(o Order) string { return o.CustomerName }),
			"status":       query.ByString(func(o Order) string { return o.Status }),
		},
		DefaultSort: "createdAt",
	}
}

func itemsFromRequest(reqs []OrderItemRequest) ([]OrderItem, float64) {
	items := make([]OrderItem, 0, len(reqs))
	var total float64
	for _, it := range reqs {
		items = append(items, OrderItem{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
		total += it.Quantity * it.UnitPrice
	}
	return items, total
}

func (s *Service) List(ctx context.Context, opts query.Options) query.Page[Order] {
	return query.Apply(s.repo.All(ctx), opts, schema())
}

func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	name, err := s.customers.CustomerName(ctx, req.CustomerID)
	if err != nil {
		return nil, ErrUnknownCustomer
	}

	items, total := itemsFromRequest(req.Items)
	now := s.now()
	order := Order{
		ID:           s.repo.NextID(ctx),
		CustomerID:   req.CustomerID,
		CustomerName: name,
		Items:        items,
		Status:       StatusPending,
		Total:        total,
		Notes:        req.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Insert(ctx, order); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)
	return &order, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateOrderRequest) (*Order, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	order := *existing
	if req.Items != nil {
		order.Items, order.Total = itemsFromRequest(*req.Items)
	}
	if req.Notes != nil {
		order.Notes = *req.Notes
	}
	order.UpdatedAt = s.now()

	if err := s.repo.Replace(ctx, order); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)
	return &order, nil
}

func (s *Service) SetStatus(ctx context.Context, id, status string) (*Order, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	order := *existing
	order.Status = status
	order.UpdatedAt = s.now()
	if err := s.repo.Replace(ctx, order); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)
	return &order, nil
}

// Delete removes an order that never entered fulfilment. Anything past
// pending keeps its history and must be cancelled instead.
func (s *Service) Delete(ctx context.Context, id string) (*Order, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status != StatusPending && existing.Status != StatusCancelled {
		return nil, ErrNotDeletable
	}
	if err := s.repo.Remove(ctx, id); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)
	return existing, nil
}
