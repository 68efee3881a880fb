package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/meridian-oms/meridian/internal/platform/httpx"
	"github.com/meridian-oms/meridian/internal/query"
)

// Errors surfaced by invoice operations.
var (
	ErrUnknownCustomer  = httpx.E(httpx.ErrValidation, "Unknown customer")
	ErrInvalidAmount    = httpx.E(httpx.ErrInvalidAmount, "Payment amount must be greater than zero")
	ErrCancelledPayment = httpx.E(httpx.ErrInvoiceCancelled, "Cannot record payment on a cancelled invoice")
	ErrCancelledSend    = httpx.E(httpx.ErrInvoiceCancelled, "Cannot send a cancelled invoice")
	ErrCancelledUpdate  = httpx.E(httpx.ErrInvoiceCancelled, "Cannot update a cancelled invoice")
	ErrAlreadyCancelled = httpx.E(httpx.ErrInvoiceCancelled, "Invoice is already cancelled")
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

func (s *Service) view(inv Invoice) InvoiceView {
	return InvoiceView{
		Invoice:          inv,
		Status:           DeriveStatus(inv, s.now()),
		RemainingBalance: RemainingBalance(inv),
	}
}

// The listing pipeline runs over views so the status filter sees the derived
// status, matching what the dashboard displays.
func schema() query.Schema[InvoiceView] {
	return query.Schema[InvoiceView]{
		Search: func(v InvoiceView) []string {
			return []string{v.ID, v.CustomerName, v.CustomerID}
		},
		Filters: map[string]func(InvoiceView) string{
			"status": func(v InvoiceView) string { return v.Status },
		},
		Sort: map[string]func(a, b InvoiceView) int{
			"createdAt":    query.ByTime(func(v InvoiceView) time.Time { return v.CreatedAt }),
			"updatedAt":    query.ByTime(func(v InvoiceView) time.Time { return v.UpdatedAt }),
			"issueDate":    query.ByTime(func(v InvoiceView) time.Time { return v.IssueDate }),
			"dueDate":      query.ByTime(func(v InvoiceView) time.Time { return v.DueDate }),
			"total":        query.ByNumber(func(v InvoiceView) float64 { return v.Total }),
			"paidAmount":   query.ByNumber(func(v InvoiceView) float64 { return v.PaidAmount }),
			"customerName": query.ByString(func(v InvoiceView) string { return v.CustomerName }),
		},
		DefaultSort: "createdAt",
	}
}

// List applies the query pipeline. The optional from/to bounds restrict by
// issue date before the pipeline runs.
func (s *Service) List(ctx context.Context, opts query.Options, from, to *time.Time) query.Page[InvoiceView] {
	invoices := s.repo.All(ctx)
	views := make([]InvoiceView, 0, len(invoices))
	for _, inv := range invoices {
		if from != nil && inv.IssueDate.Before(*from) {
			continue
		}
		if to != nil && inv.IssueDate.After(*to) {
			continue
		}
		views = append(views, s.view(inv))
	}
	return query.Apply(views, opts, schema())
}

func (s *Service) Get(ctx context.Context, id string) (*InvoiceView, error) {
	inv, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	v := s.view(*inv)
	return &v, nil
}

func itemsFromRequest(reqs []LineItemRequest) []LineItem {
	items := make([]LineItem, 0, len(reqs))
	for _, it := range reqs {
		items = append(items, LineItem{
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return items
}

func (s *Service) Create(ctx context.Context, req CreateInvoiceRequest) (*InvoiceView, error) {
	name, err := s.customers.CustomerName(ctx, req.CustomerID)
	if err != nil {
		return nil, ErrUnknownCustomer
	}

	now := s.now()
	issueDate := now
	if req.IssueDate != nil {
		issueDate = *req.IssueDate
	}

	items := itemsFromRequest(req.Items)
	totals := RecalculateTotals(items, req.TaxRate, req.DiscountAmount)

	inv := Invoice{
		ID:             s.repo.NextID(ctx),
		CustomerID:     req.CustomerID,
		CustomerName:   name,
		OrderID:        req.OrderID,
		Items:          items,
		Subtotal:       totals.Subtotal,
		DiscountAmount: req.DiscountAmount,
		TaxRate:        req.TaxRate,
		TaxAmount:      totals.TaxAmount,
		Total:          totals.Total,
		Payments:       []Payment{},
		Status:         StatusDraft,
		IssueDate:      issueDate,
		DueDate:        req.DueDate,
		Notes:          req.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Insert(ctx, inv); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)
	v := s.view(inv)
	return &v, nil
}

// Update applies a partial update. Whenever items, tax rate or discount
// change, the financial fields are recomputed; client-supplied totals are
// never trusted.
func (s *Service) Update(ctx context.Context, id string, req UpdateInvoiceRequest) (*InvoiceView, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status == StatusCancelled {
		return nil, ErrCancelledUpdate
	}

	inv := *existing
	recalc := false
	if req.Items != nil {
		inv.Items = itemsFromRequest(*req.Items)
		recalc = true
	}
	if req.TaxRate != nil {
		inv.TaxRate = *req.TaxRate
		recalc = true
	}
	if req.DiscountAmount != nil {
		inv.DiscountAmount = *req.DiscountAmount
		recalc = true
	}
	if req.DueDate != nil {
		inv.DueDate = *req.DueDate
	}
	if req.Notes != nil {
		inv.Notes = *req.Notes
	}
	if recalc {
		totals := RecalculateTotals(inv.Items, inv.TaxRate, inv.DiscountAmount)
		inv.Subtotal = totals.Subtotal
		inv.TaxAmount = totals.TaxAmount
		inv.Total = totals.Total
	}
	inv.UpdatedAt = s.now()

	if err := s.repo.Replace(ctx, inv); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)
	v := s.view(inv)
	return &v, nil
}

// Send marks an invoice as issued to the customer.
func (s *Service) Send(ctx context.Context, id string) (*InvoiceView, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status == StatusCancelled {
		return nil, ErrCancelledSend
	}

	inv := *existing
	inv.Status = StatusSent
	inv.UpdatedAt = s.now()
	if err := s.repo.Replace(ctx, inv); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)
	v := s.view(inv)
	return &v, nil
}

// AddPayment appends a payment record and raises paidAmount. Overpayment is
// accepted silently; the derived status simply resolves to paid.
func (s *Service) AddPayment(ctx context.Context, id string, req AddPaymentRequest) (*Payment, *InvoiceView, error) {
	if req.Amount <= 0 {
		return nil, nil, ErrInvalidAmount
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if existing.Status == StatusCancelled {
		return nil, nil, ErrCancelledPayment
	}

	now := s.now()
	method := req.Method
	if method == "" {
		method = DefaultPaymentMethod
	}
	date := now
	if req.Date != nil {
		date = *req.Date
	}

	payment := Payment{
		ID:        uuid.NewString(),
		Amount:    req.Amount,
		Method:    method,
		Reference: req.Reference,
		Date:      date,
		Status:    PaymentCompleted,
	}

	inv := *existing
	inv.Payments = append(append([]Payment{}, inv.Payments...), payment)
	inv.PaidAmount += req.Amount
	inv.UpdatedAt = now

	if err := s.repo.Replace(ctx, inv); err != nil {
		return nil, nil, err
	}
	s.invalidateReports(ctx)
	v := s.view(inv)
	return &payment, &v, nil
}

// Cancel is the invoice deletion policy: the record stays in the store and
// transitions to the terminal cancelled state.
func (s *Service) Cancel(ctx context.Context, id string) (*InvoiceView, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	inv := *existing
	inv.Status = StatusCancelled
	inv.UpdatedAt = s.now()
	if err := s.repo.Replace(ctx, inv); err != nil {
		return nil, err
	}
	s.invalidateReports(ctx)
	v := s.view(inv)
	return &v, nil
}
