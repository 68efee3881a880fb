package reports

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-oms/meridian/internal/billing"
	"github.com/meridian-oms/meridian/internal/masterdata/suppliers"
	"github.com/meridian-oms/meridian/internal/sales/customers"
	"github.com/meridian-oms/meridian/internal/sales/orders"
)

var testNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

type fixedCustomers []customers.Customer

func (f fixedCustomers) All(ctx context.Context) []customers.Customer { return f }

type fixedSuppliers []suppliers.Supplier

func (f fixedSuppliers) All(ctx context.Context) []suppliers.Supplier { return f }

type fixedOrders []orders.Order

func (f fixedOrders) All(ctx context.Context) []orders.Order { return f }

type countingInvoices struct {
	invoices []billing.Invoice
	calls    int
}

func (c *countingInvoices) All(ctx context.Context) []billing.Invoice {
	c.calls++
	return c.invoices
}

func testData() (fixedCustomers, fixedSuppliers, fixedOrders, *countingInvoices) {
	custs := fixedCustomers{
		{ID: "CUST-001", IsActive: true},
		{ID: "CUST-002", IsActive: true},
		{ID: "CUST-003", IsActive: false},
	}
	sups := fixedSuppliers{
		{ID: "SUP-001", IsPreferred: true},
		{ID: "SUP-002"},
	}
	ords := fixedOrders{
		{ID: "ORD-001", Status: orders.StatusDelivered, Total: 5400},
		{ID: "ORD-002", Status: orders.StatusProcessing, Total: 1650},
		{ID: "ORD-003", Status: orders.StatusPending, Total: 289.95},
		{ID: "ORD-004", Status: orders.StatusCancelled, Total: 99},
	}
	invs := &countingInvoices{invoices: []billing.Invoice{
		{ID: "INV-001", Status: billing.StatusSent, Total: 5400, PaidAmount: 5400, DueDate: testNow.AddDate(0, 0, -15)},
		{ID: "INV-002", Status: billing.StatusSent, Total: 1650, PaidAmount: 500, DueDate: testNow.AddDate(0, 0, -36)},
		{ID: "INV-003", Status: billing.StatusDraft, Total: 289.95, DueDate: testNow.AddDate(0, 1, 0)},
		{ID: "INV-004", Status: billing.StatusCancelled, Total: 1200, DueDate: testNow.AddDate(0, -8, 0)},
		{ID: "INV-005", Status: billing.StatusSent, Total: 675, DueDate: testNow.AddDate(0, 1, 0)},
	}}
	return custs, sups, ords, invs
}

func newTestServiceWithCache(t *testing.T, cache *Cache) (*Service, *countingInvoices) {
	t.Helper()
	custs, sups, ords, invs := testData()
	svc := NewService(custs, sups, ords, invs, cache)
	svc.WithNow(func() time.Time { return testNow })
	return svc, invs
}

func newRedisCache(t *testing.T, ttl time.Duration) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, ttl)
}

func TestDashboardSummaryFigures(t *testing.T) {
	svc, _ := newTestServiceWithCache(t, NewCache(nil, 0))

	summary, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalCustomers)
	assert.Equal(t, 2, summary.ActiveCustomers)
	assert.Equal(t, 2, summary.TotalSuppliers)
	assert.Equal(t, 1, summary.PreferredSuppliers)
	assert.Equal(t, 4, summary.TotalOrders)
	assert.Equal(t, 2, summary.OpenOrders)
	assert.Equal(t, 5400.0, summary.DeliveredRevenue)
	assert.Equal(t, 5, summary.InvoiceCount)
	assert.Equal(t, 1, summary.DraftInvoices)
	assert.Equal(t, 1, summary.OverdueInvoices)
	assert.Equal(t, 1, summary.PaidInvoices)
	assert.Equal(t, 5900.0, summary.CollectedAmount)
	// Open balance: INV-002 (1150) plus INV-005 (675).
	assert.InDelta(t, 1825.0, summary.OutstandingBalance, 1e-9)
}

func TestAgingBuckets(t *testing.T) {
	svc, _ := newTestServiceWithCache(t, NewCache(nil, 0))

	report, err := svc.Aging(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Buckets, 5)

	byLabel := map[string]AgingBucket{}
	for _, b := range report.Buckets {
		byLabel[b.Label] = b
	}

	// INV-005 is not yet due, INV-002 is 36 days past due. Paid, draft and
	// cancelled invoices never enter the report.
	assert.Equal(t, 1, byLabel["current"].Count)
	assert.InDelta(t, 675.0, byLabel["current"].Amount, 1e-9)
	assert.Equal(t, 1, byLabel["31-60"].Count)
	assert.InDelta(t, 1150.0, byLabel["31-60"].Amount, 1e-9)
	assert.Equal(t, 0, byLabel["1-30"].Count)
	assert.Equal(t, 0, byLabel["90+"].Count)
	assert.InDelta(t, 1825.0, report.Total, 1e-9)
	assert.Equal(t, testNow, report.AsOf)
}

func TestDashboardUsesCacheOnSecondRead(t *testing.T) {
	cache := newRedisCache(t, time.Minute)
	svc, invs := newTestServiceWithCache(t, cache)

	_, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	first := invs.calls

	_, err = svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, invs.calls, "second read must come from cache")
}

func TestInvalidateForcesRecompute(t *testing.T) {
	cache := newRedisCache(t, time.Minute)
	svc, invs := newTestServiceWithCache(t, cache)

	_, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	first := invs.calls

	require.NoError(t, cache.Invalidate(context.Background()))

	_, err = svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Greater(t, invs.calls, first)
}

func TestRefreshRepopulatesCache(t *testing.T) {
	cache := newRedisCache(t, time.Minute)
	svc, invs := newTestServiceWithCache(t, cache)

	require.NoError(t, svc.Refresh(context.Background()))
	warmed := invs.calls

	// Both reports are now warm; further reads hit Redis only.
	_, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	_, err = svc.Aging(context.Background())
	require.NoError(t, err)
	assert.Equal(t, warmed, invs.calls)
}

func TestWriteInvalidatesDashboard(t *testing.T) {
	cache := newRedisCache(t, time.Minute)

	repo := customers.NewMemoryRepository()
	custSvc := customers.NewService(repo)
	custSvc.WithReportInvalidator(cache)

	invs := &countingInvoices{}
	svc := NewService(repo, fixedSuppliers{}, fixedOrders{}, invs, cache)
	svc.WithNow(func() time.Time { return testNow })

	_, err := custSvc.Create(context.Background(), customers.CreateCustomerRequest{
		Name: "Acme Corporation", Email: "billing@acmecorp.com", Phone: "1", Type: customers.TypeBusiness,
	})
	require.NoError(t, err)

	summary, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, summary.TotalCustomers)

	// A write through the service must be visible on the very next read,
	// not after the cache TTL.
	_, err = custSvc.Create(context.Background(), customers.CreateCustomerRequest{
		Name: "Beta Industries", Email: "accounts@betaindustries.com", Phone: "2", Type: customers.TypeBusiness,
	})
	require.NoError(t, err)

	summary, err = svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, summary.TotalCustomers)
}

func TestVersionBumpSharedAcrossProcesses(t *testing.T) {
	// Two cache handles over one Redis stand in for the API server and the
	// worker. The worker only bumps the version; figures always come from
	// the reading process's own store.
	mr := miniredis.RunT(t)
	serverClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	workerClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = serverClient.Close()
		_ = workerClient.Close()
	})
	serverCache := NewCache(serverClient, time.Minute)
	workerCache := NewCache(workerClient, time.Minute)

	custs, sups, ords, invs := testData()
	server := NewService(custs, sups, ords, invs, serverCache)
	server.WithNow(func() time.Time { return testNow })

	summary, err := server.Dashboard(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, summary.TotalCustomers)
	warm := invs.calls

	require.NoError(t, workerCache.Invalidate(context.Background()))

	summary, err = server.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalCustomers)
	assert.Greater(t, invs.calls, warm, "bump must force a recompute from the live store")
}

func TestNilCachePassesThrough(t *testing.T) {
	svc, invs := newTestServiceWithCache(t, NewCache(nil, 0))

	_, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	_, err = svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, invs.calls)
}
