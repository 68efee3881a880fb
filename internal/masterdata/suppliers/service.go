package suppliers

import (
	"context"
	"time"

	"github.com/meridian-oms/meridian/internal/platform/httpx"
	"github.com/meridian-oms/meridian/internal/query"
)

// ErrHasOrders blocks deletion of suppliers with purchase history.
var ErrHasOrders = httpx.E(httpx.ErrDependentActivity, "Cannot delete supplier with existing orders. Deactivate instead.")

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

// Supplier search also matches inside the categories list, so a query like
// "electronics" finds every supplier carrying that category.
func schema() query.Schema[Supplier] {
	return query.Schema[Supplier]{
		Search: func(s Supplier) []string {
			fields := []string{s.Name, s.Email, s.City, s.ID}
			return append(fields, s.Categories...)
		},
		Filters: map[string]func(Supplier) string{
			"type": func(s Supplier) string { return s.Type },
			"status": func(s Supplier) string {
				if s.IsActive {
					return "active"
				}
				return "inactive"
			},
			"preferred": func(s Supplier) string {
				if s.IsPreferred {
					return "preferred"
				}
				return "standard"
			},
		},
		Sort: map[string]func(a, b Supplier) int{
			"createdAt":   query.ByTime(func(s Supplier) time.Time { return s.CreatedAt }),
			"updatedAt":   query.ByTime(func(s Supplier) time.Time { return s.UpdatedAt }),
			"name":        query.ByString(func(s Supplier) string { return s.Name }),
			"city":        query.ByString(func(s Supplier) string { return s.City }),
			"totalSpent":  query.ByNumber(func(s Supplier) float64 { return s.TotalSpent }),
			"totalOrders": query.ByNumber(func(s Supplier) float64 { return float64(s.TotalOrders) }),
			"rating":      query.ByNumber(func(s Supplier) float64 { return s.Rating }),
		},
		DefaultSort: "createdAt",
	}
}

func (s *Service) List(ctx context.Context, opts query.Options) query.Page[Supplier] {
	return query.Apply(s.repo.All(ctx), opts, schema())
}

func (s *Service) Get(ctx context.Context, id string) (*Supplier, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateSupplierRequest) (*Supplier, error) {
	now := s.now()
	categories := req.Categories
	if categories == nil {
		categories = []string{}
	}
	supplier := Supplier{
		ID:          s.repo.NextID(ctx),
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		ContactName: req.ContactName,
		Type:        req.Type,
		Categories:  categories,
		City:        req.City,
		Country:     req.Country,
		IsPreferred: req.IsPreferred,
		IsActive:    true,
		Rating:      req.Rating,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Insert(ctx, supplier); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)
	return &supplier, nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateSupplierRequest) (*Supplier, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	supplier := *existing
	if req.Name != nil {
		supplier.Name = *req.Name
	}
	if req.Email != nil {
		supplier.Email = *req.Email
	}
	if req.Phone != nil {
		supplier.Phone = *req.Phone
	}
	if req.ContactName != nil {
		supplier.ContactName = *req.ContactName
	}
	if req.Type != nil {
		supplier.Type = *req.Type
	}
	if req.Categories != nil {
		supplier.Categories = *req.Categories
	}
	if req.City != nil {
		supplier.City = *req.City
	}
	if req.Country != nil {
		supplier.Country = *req.Country
	}
	if req.IsPreferred != nil {
		supplier.IsPreferred = *req.IsPreferred
	}
	if req.Rating != nil {
		supplier.Rating = *req.Rating
	}
	supplier.UpdatedAt = s.now()

	if err := s.repo.Replace(ctx, supplier); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)
	return &supplier, nil
}

func (s *Service) SetActive(ctx context.Context, id string, active bool) (*Supplier, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	supplier := *existing
	supplier.IsActive = active
	supplier.UpdatedAt = s.now()
	if err := s.repo.Replace(ctx, supplier); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)
	return &supplier, nil
}

// Delete removes a supplier unless purchase orders reference it.
func (s *Service) Delete(ctx context.Context, id string) (*Supplier, error) {
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
