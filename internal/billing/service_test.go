package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-oms/meridian/internal/query"
)

type staticDirectory map[string]string

func (d staticDirectory) CustomerName(ctx context.Context, id string) (string, error) {
	name, ok := d[id]
	if !ok {
		return "", errors.New("unknown customer")
	}
	return name, nil
}

var testNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func newTestService() *Service {
	svc := NewService(NewMemoryRepository(), staticDirectory{
		"CUST-001": "Acme Corporation",
		"CUST-002": "Beta Industries",
	})
	svc.WithNow(func() time.Time { return testNow })
	return svc
}

func createInvoice(t *testing.T, svc *Service, customerID string, due time.Time) *InvoiceView {
	t.Helper()
	inv, err := svc.Create(context.Background(), CreateInvoiceRequest{
		CustomerID: customerID,
		Items: []LineItemRequest{
			{Description: "Rack Enclosure", Quantity: 3, UnitPrice: 550},
		},
		DueDate: due,
	})
	require.NoError(t, err)
	return inv
}

func TestCreateComputesTotalsAndDefaults(t *testing.T) {
	svc := newTestService()
	inv := createInvoice(t, svc, "CUST-002", testNow.AddDate(0, 1, 0))

	assert.Equal(t, "INV-001", inv.ID)
	assert.Equal(t, "Beta Industries", inv.CustomerName)
	assert.Equal(t, 1650.0, inv.Subtotal)
	assert.Equal(t, 1650.0, inv.Total)
	assert.Equal(t, StatusDraft, inv.Status)
	assert.Equal(t, testNow, inv.IssueDate)
	assert.NotNil(t, inv.Payments)
	assert.Empty(t, inv.Payments)
}

func TestCreateUnknownCustomer(t *testing.T) {
	svc := newTestService()
	_, err := svc.Create(context.Background(), CreateInvoiceRequest{
		CustomerID: "CUST-404",
		Items:      []LineItemRequest{{Description: "x", Quantity: 1, UnitPrice: 1}},
		DueDate:    testNow,
	})
	assert.ErrorIs(t, err, ErrUnknownCustomer)
}

func TestSendThenOverdueThenPaid(t *testing.T) {
	svc := newTestService()
	due := testNow.AddDate(0, 0, -5)
	inv := createInvoice(t, svc, "CUST-002", due)

	sent, err := svc.Send(context.Background(), inv.ID)
	require.NoError(t, err)
	// Stored as sent, but already past due, so the view says overdue.
	assert.Equal(t, StatusSent, sent.Invoice.Status)
	assert.Equal(t, StatusOverdue, sent.Status)

	_, view, err := svc.AddPayment(context.Background(), inv.ID, AddPaymentRequest{Amount: 500})
	require.NoError(t, err)
	assert.Equal(t, StatusOverdue, view.Status)
	assert.Equal(t, 1150.0, view.RemainingBalance)

	_, view, err = svc.AddPayment(context.Background(), inv.ID, AddPaymentRequest{Amount: 1150})
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, view.Status)
	assert.Equal(t, 0.0, view.RemainingBalance)
}

func TestAddPaymentAppendsHistory(t *testing.T) {
	svc := newTestService()
	inv := createInvoice(t, svc, "CUST-001", testNow.AddDate(0, 1, 0))

	payment, view, err := svc.AddPayment(context.Background(), inv.ID, AddPaymentRequest{Amount: 200})
	require.NoError(t, err)
	assert.NotEmpty(t, payment.ID)
	assert.Equal(t, DefaultPaymentMethod, payment.Method)
	assert.Equal(t, PaymentCompleted, payment.Status)
	assert.Equal(t, testNow, payment.Date)
	require.Len(t, view.Payments, 1)
	assert.Equal(t, 200.0, view.PaidAmount)

	_, view, err = svc.AddPayment(context.Background(), inv.ID, AddPaymentRequest{Amount: 100, Method: "Wire", Reference: "W-17"})
	require.NoError(t, err)
	require.Len(t, view.Payments, 2)
	assert.Equal(t, "Wire", view.Payments[1].Method)
	assert.Equal(t, 300.0, view.PaidAmount)
}

func TestAddPaymentRejectsNonPositiveAmount(t *testing.T) {
	svc := newTestService()
	inv := createInvoice(t, svc, "CUST-001", testNow.AddDate(0, 1, 0))

	for _, amount := range []float64{0, -25} {
		_, _, err := svc.AddPayment(context.Background(), inv.ID, AddPaymentRequest{Amount: amount})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	}
}

func TestCancelledInvoiceIsTerminal(t *testing.T) {
	svc := newTestService()
	inv := createInvoice(t, svc, "CUST-001", testNow.AddDate(0, 1, 0))

	cancelled, err := svc.Cancel(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)

	_, err = svc.Cancel(context.Background(), inv.ID)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	_, err = svc.Send(context.Background(), inv.ID)
	assert.ErrorIs(t, err, ErrCancelledSend)
	_, _, err = svc.AddPayment(context.Background(), inv.ID, AddPaymentRequest{Amount: 10})
	assert.ErrorIs(t, err, ErrCancelledPayment)
	_, err = svc.Update(context.Background(), inv.ID, UpdateInvoiceRequest{})
	assert.ErrorIs(t, err, ErrCancelledUpdate)

	// The record survives cancellation.
	got, err := svc.Get(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)
}

func TestUpdateRecomputesTotals(t *testing.T) {
	svc := newTestService()
	inv := createInvoice(t, svc, "CUST-001", testNow.AddDate(0, 1, 0))

	taxRate := 8.0
	discount := 150.0
	updated, err := svc.Update(context.Background(), inv.ID, UpdateInvoiceRequest{
		TaxRate:        &taxRate,
		DiscountAmount: &discount,
	})
	require.NoError(t, err)
	assert.Equal(t, 1650.0, updated.Subtotal)
	assert.InDelta(t, 120.0, updated.TaxAmount, 1e-9)
	assert.InDelta(t, 1620.0, updated.Total, 1e-9)
}

func TestUpdateWithoutFinancialFieldsKeepsTotals(t *testing.T) {
	svc := newTestService()
	inv := createInvoice(t, svc, "CUST-001", testNow.AddDate(0, 1, 0))

	notes := "Net 30 terms."
	updated, err := svc.Update(context.Background(), inv.ID, UpdateInvoiceRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, inv.Total, updated.Total)
	assert.Equal(t, notes, updated.Notes)
}

func TestListFiltersOnDerivedStatus(t *testing.T) {
	svc := newTestService()
	overdue := createInvoice(t, svc, "CUST-002", testNow.AddDate(0, 0, -3))
	_, err := svc.Send(context.Background(), overdue.ID)
	require.NoError(t, err)
	current := createInvoice(t, svc, "CUST-001", testNow.AddDate(0, 1, 0))
	_, err = svc.Send(context.Background(), current.ID)
	require.NoError(t, err)

	page := svc.List(context.Background(), query.Options{
		Page:    1,
		Limit:   10,
		Filters: map[string]string{"status": StatusOverdue},
	}, nil, nil)

	require.Equal(t, 1, page.TotalCount)
	assert.Equal(t, overdue.ID, page.Items[0].ID)
	assert.Equal(t, StatusOverdue, page.Items[0].Status)
}

func TestListDateRangeBoundsIssueDate(t *testing.T) {
	svc := newTestService()

	early := testNow.AddDate(0, -2, 0)
	late := testNow
	first, err := svc.Create(context.Background(), CreateInvoiceRequest{
		CustomerID: "CUST-001",
		Items:      []LineItemRequest{{Description: "a", Quantity: 1, UnitPrice: 10}},
		IssueDate:  &early,
		DueDate:    testNow.AddDate(0, 1, 0),
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), CreateInvoiceRequest{
		CustomerID: "CUST-001",
		Items:      []LineItemRequest{{Description: "b", Quantity: 1, UnitPrice: 10}},
		IssueDate:  &late,
		DueDate:    testNow.AddDate(0, 1, 0),
	})
	require.NoError(t, err)

	to := testNow.AddDate(0, -1, 0)
	page := svc.List(context.Background(), query.Options{Page: 1, Limit: 10}, nil, &to)
	require.Equal(t, 1, page.TotalCount)
	assert.Equal(t, first.ID, page.Items[0].ID)
}
