// Package reports computes dashboard aggregates by live reduction over the
// record store. Nothing here is incrementally maintained; every figure is
// recomputed from the source collections and cached in Redis.
package reports

import (
	"context"
	"time"

	"github.com/meridian-oms/meridian/internal/billing"
	"github.com/meridian-oms/meridian/internal/masterdata/suppliers"
	"github.com/meridian-oms/meridian/internal/sales/customers"
	"github.com/meridian-oms/meridian/internal/sales/orders"
)

// Source ports over the domain repositories.
type (
	CustomerSource interface {
		All(ctx context.Context) []customers.Customer
	}
	SupplierSource interface {
		All(ctx context.Context) []suppliers.Supplier
	}
	OrderSource interface {
		All(ctx context.Context) []orders.Order
	}
	InvoiceSource interface {
		All(ctx context.Context) []billing.Invoice
	}
)

// DashboardSummary is the headline figures block of the dashboard.
type DashboardSummary struct {
	TotalCustomers     int     `json:"totalCustomers"`
	ActiveCustomers    int     `json:"activeCustomers"`
	TotalSuppliers     int     `json:"totalSuppliers"`
	PreferredSuppliers int     `json:"preferredSuppliers"`
	TotalOrders        int     `json:"totalOrders"`
	OpenOrders         int     `json:"openOrders"`
	DeliveredRevenue   float64 `json:"deliveredRevenue"`
	InvoiceCount       int     `json:"invoiceCount"`
	DraftInvoices      int     `json:"draftInvoices"`
	OverdueInvoices    int     `json:"overdueInvoices"`
	PaidInvoices       int     `json:"paidInvoices"`
	CollectedAmount    float64 `json:"collectedAmount"`
	OutstandingBalance float64 `json:"outstandingBalance"`
}

// AgingBucket summarises outstanding balances by days past due.
type AgingBucket struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
	Count  int     `json:"count"`
}

// AgingReport is the receivables aging breakdown.
type AgingReport struct {
	AsOf    time.Time     `json:"asOf"`
	Buckets []AgingBucket `json:"buckets"`
	Total   float64       `json:"total"`
}

// Overview bundles both report blocks for the dashboard landing call.
type Overview struct {
	Summary DashboardSummary `json:"summary"`
	Aging   AgingReport      `json:"aging"`
}

type Service struct {
	customers CustomerSource
	suppliers SupplierSource
	orders    OrderSource
	invoices  InvoiceSource
	cache     *Cache
	now       func() time.Time
}

func NewService(customers CustomerSource, suppliers SupplierSource, orders OrderSource, invoices InvoiceSource, cache *Cache) *Service {
	return &Service{
		customers: customers,
		suppliers: suppliers,
		orders:    orders,
		invoices:  invoices,
		cache:     cache,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithNow overrides the service clock for testing.
func (s *Service) WithNow(fn func() time.Time) {
	if fn != nil {
		s.now = fn
	}
}

// Dashboard returns the headline summary, cached under the current version.
func (s *Service) Dashboard(ctx context.Context) (DashboardSummary, error) {
	key, err := s.cache.BuildKey(ctx, "reports", "dashboard")
	if err != nil {
		return DashboardSummary{}, err
	}
	var summary DashboardSummary
	err = s.cache.FetchJSON(ctx, key, &summary, func(ctx context.Context) (interface{}, error) {
		return s.computeDashboard(ctx), nil
	})
	return summary, err
}

// Aging returns the receivables aging report, cached under the current version.
func (s *Service) Aging(ctx context.Context) (AgingReport, error) {
	key, err := s.cache.BuildKey(ctx, "reports", "aging")
	if err != nil {
		return AgingReport{}, err
	}
	var report AgingReport
	err = s.cache.FetchJSON(ctx, key, &report, func(ctx context.Context) (interface{}, error) {
		return s.computeAging(ctx), nil
	})
	return report, err
}

// Refresh recomputes both reports and repopulates the cache. The server runs
// it once at boot to warm the cache from its own stores.
func (s *Service) Refresh(ctx context.Context) error {
	if err := s.cache.Invalidate(ctx); err != nil {
		return err
	}
	if _, err := s.Dashboard(ctx); err != nil {
		return err
	}
	_, err := s.Aging(ctx)
	return err
}

func (s *Service) computeDashboard(ctx context.Context) DashboardSummary {
	var summary DashboardSummary

	for _, c := range s.customers.All(ctx) {
		summary.TotalCustomers++
		if c.IsActive {
			summary.ActiveCustomers++
		}
	}
	for _, sup := range s.suppliers.All(ctx) {
		summary.TotalSuppliers++
		if sup.IsPreferred {
			summary.PreferredSuppliers++
		}
	}
	for _, o := range s.orders.All(ctx) {
		summary.TotalOrders++
		switch o.Status {
		case orders.StatusPending, orders.StatusProcessing, orders.StatusShipped:
			summary.OpenOrders++
		case orders.StatusDelivered:
			summary.DeliveredRevenue += o.Total
		}
	}

	now := s.now()
	for _, inv := range s.invoices.All(ctx) {
		summary.InvoiceCount++
		switch billing.DeriveStatus(inv, now) {
		case billing.StatusDraft:
			summary.DraftInvoices++
		case billing.StatusOverdue:
			summary.OverdueInvoices++
			summary.OutstandingBalance += billing.RemainingBalance(inv)
		case billing.StatusPaid:
			summary.PaidInvoices++
		case billing.StatusSent:
			summary.OutstandingBalance += billing.RemainingBalance(inv)
		}
		if inv.Status != billing.StatusCancelled {
			summary.CollectedAmount += inv.PaidAmount
		}
	}
	return summary
}

// computeAging groups open invoice balances by days past due.
func (s *Service) computeAging(ctx context.Context) AgingReport {
	now := s.now()
	buckets := []AgingBucket{
		{Label: "current"},
		{Label: "1-30"},
		{Label: "31-60"},
		{Label: "61-90"},
		{Label: "90+"},
	}

	var total float64
	for _, inv := range s.invoices.All(ctx) {
		status := billing.DeriveStatus(inv, now)
		if status != billing.StatusSent && status != billing.StatusOverdue {
			continue
		}
		balance := billing.RemainingBalance(inv)
		days := int(now.Sub(inv.DueDate).Hours() / 24)
		idx := 0
		switch {
		case days <= 0:
			idx = 0
		case days <= 30:
			idx = 1
		case days <= 60:
			idx = 2
		case days <= 90:
			idx = 3
		default:
			idx = 4
		}
		buckets[idx].Amount += balance
		buckets[idx].Count++
		total += balance
	}

	return AgingReport{AsOf: now, Buckets: buckets, Total: total}
}
