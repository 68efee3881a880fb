package orders

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

func createOrder(t *testing.T, svc *Service, customerID string) *Order {
	t.Helper()
	order, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerID: customerID,
		Items: []OrderItemRequest{
			{ProductName: "Industrial Router", Quantity: 2, UnitPrice: 450},
			{ProductName: "Patch Panel", Quantity: 4, UnitPrice: 62.50},
		},
	})
	require.NoError(t, err)
	return order
}

func TestCreateResolvesCustomerAndTotals(t *testing.T) {
	svc := newTestService()
	order := createOrder(t, svc, "CUST-001")

	assert.Equal(t, "ORD-001", order.ID)
	assert.Equal(t, "Acme Corporation", order.CustomerName)
	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, 1150.0, order.Total)
	assert.Len(t, order.Items, 2)
}

func TestCreateUnknownCustomer(t *testing.T) {
	svc := newTestService()
	_, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerID: "CUST-404",
		Items:      []OrderItemRequest{{ProductName: "x", Quantity: 1, UnitPrice: 1}},
	})
	assert.ErrorIs(t, err, ErrUnknownCustomer)
}

func TestSetStatus(t *testing.T) {
	svc := newTestService()
	order := createOrder(t, svc, "CUST-001")

	updated, err := svc.SetStatus(context.Background(), order.ID, StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, updated.Status)
	assert.Equal(t, testNow, updated.UpdatedAt)
}

func TestDeletePolicy(t *testing.T) {
	svc := newTestService()

	pending := createOrder(t, svc, "CUST-001")
	_, err := svc.Delete(context.Background(), pending.ID)
	assert.NoError(t, err)

	processed := createOrder(t, svc, "CUST-002")
	_, err = svc.SetStatus(context.Background(), processed.ID, StatusProcessing)
	require.NoError(t, err)
	_, err = svc.Delete(context.Background(), processed.ID)
	assert.ErrorIs(t, err, ErrNotDeletable)

	// Once cancelled the order can be removed.
	_, err = svc.SetStatus(context.Background(), processed.ID, StatusCancelled)
	require.NoError(t, err)
	_, err = svc.Delete(context.Background(), processed.ID)
	assert.NoError(t, err)
}

func TestUpdateRecomputesTotal(t *testing.T) {
	svc := newTestService()
	order := createOrder(t, svc, "CUST-001")

	items := []OrderItemRequest{{ProductName: "Industrial Router", Quantity: 1, UnitPrice: 450}}
	updated, err := svc.Update(context.Background(), order.ID, UpdateOrderRequest{Items: &items})
	require.NoError(t, err)
	assert.Equal(t, 450.0, updated.Total)
	require.Len(t, updated.Items, 1)
}

func TestListStatusFilter(t *testing.T) {
	svc := newTestService()
	first := createOrder(t, svc, "CUST-001")
	createOrder(t, svc, "CUST-002")

	_, err := svc.SetStatus(context.Background(), first.ID, StatusDelivered)
	require.NoError(t, err)

	page := svc.List(context.Background(), query.Options{
		Page: 1, Limit: 10,
		Filters: map[string]string{"status": StatusDelivered},
	})
	require.Equal(t, 1, page.TotalCount)
	assert.Equal(t, first.ID, page.Items[0].ID)
}

func TestListSearchByCustomerName(t *testing.T) {
	svc := newTestService()
	createOrder(t, svc, "CUST-001")
	createOrder(t, svc, "CUST-002")

	page := svc.List(context.Background(), query.Options{Page: 1, Limit: 10, Search: "beta"})
	require.Equal(t, 1, page.TotalCount)
	assert.Equal(t, "Beta Industries", page.Items[0].CustomerName)
}
