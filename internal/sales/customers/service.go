package customers

import (
	"context"
	"time"

	"github.com/meridian-oms/meridian/internal/platform/httpx"
	"github.com/meridian-oms/meridian/internal/query"
)

// ErrHasOrders blocks deletion of customers with order history.
var ErrHasOrders = httpx.E(httpx.ErrDependentActivity, "Cannot delete customer with existing orders. Deactivate instead.")

// ReportInvalidator bumps the cached report version after a write so the
// next dashboard read recomputes from live data.
type ReportInvalidator interface {
	Invalidate(ctx context.Context) error
}

type Service struct {
	repo    Repository
	reports ReportInvalidator
	now     func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
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

func schema() query.Schema[Customer] {
	return query.Schema[Customer]{
		Search: func(c Customer) []string {
			return []string{c.Name, c.Email, c.Phone, c.ID}
		},
		Filters: map[string]func(Customer) string{
			"type": func(c Customer) string { return c.Type },
			"status": func(c Customer) string {
				if c.IsActive {
					return "active"
				}
				return "inactive"
			},
		},
		Sort: map[string]func(a, b Customer) int{
			"createdAt":     query.ByTime(func(c Customer) time.Time { return c.CreatedAt }),
			"updatedAt":     query.ByTime(func(c Customer) time.Time { return c.UpdatedAt }),
			"lastOrderDate": query.ByTime(func(c Customer) time.Time { return c.LastOrderDate }),
			"name":          query.ByString(func(c Customer) string { return c.Name }),
			"totalSpent":    query.ByNumber(func(c Customer) float64 { return c.TotalSpent }),
			"totalOrders":   query.ByNumber(func(c Customer) float64 { return float64(c.TotalOrders) }),
		},
		DefaultSort: "createdAt",
	}
}

func (s *Service) List(ctx context.Context, opts query.Options) query.Page[Customer] {
	return query.Apply(s.repo.All(ctx), opts, schema())
}

func (s *Service) Get(ctx context.Context, id string) (*Customer, error) {
	return s.repo.Get(ctx, id)
}

// CustomerName resolves a customer id to its display name. Implements the
// directory port consumed by sales orders and billing.
func (s *Service) CustomerName(ctx context.Context, id string) (string, error) {
	c, err := s.repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return c.Name, nil
}

func (s *Service) Create(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	now := s.now()
	customer := Customer{
		ID:        s.repo.NextID(ctx),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Company:   req.Company,
		Type:      req.Type,
		City:      req.City,
		Country:   req.Country,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, customer); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)
	return &customer, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateCustomerRequest) (*Customer, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	customer := *existing
	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Company != nil {
		customer.Company = *req.Company
	}
	if req.Type != nil {
		customer.Type = *req.Type
	}
	if req.City != nil {
		customer.City = *req.City
	}
	if req.Country != nil {
		customer.Country = *req.Country
	}
	customer.UpdatedAt = s.now()

	if err := s.repo.Replace(ctx, customer); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)
	return &customer, nil
}

func (s *Service) SetActive(ctx context.Context, id string, active bool) (*Customer, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	customer := *existing
	customer.IsActive = active
	customer.UpdatedAt = s.now()
	if err := s.repo.Replace(ctx, customer); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)
	return &customer, nil
}

// Delete removes a customer unless orders reference it.
func (s *Service) Delete(ctx context.Context, id string) (*Customer, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.TotalOrders > 0 {
		return nil, ErrHasOrders
	}
	if err := s.repo.Remove(ctx, id); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)
	return existing, nil
}
