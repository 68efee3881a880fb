package billing

import (
	"context"

	"github.com/meridian-oms/meridian/internal/platform/httpx"
	"github.com/meridian-oms/meridian/internal/store"
)

// ErrNotFound is returned when an invoice id does not resolve.
var ErrNotFound = httpx.E(httpx.ErrNotFound, "Invoice not found")

// Repository defines data access for invoices. Invoices are never removed
// from the store; cancellation is the terminal state.
type Repository interface {
	All(ctx context.Context) []Invoice
	Get(ctx context.Context, id string) (*Invoice, error)
	Insert(ctx context.Context, invoice Invoice) error
	Replace(ctx context.Context, invoice Invoice) error
	NextID(ctx context.Context) string
}

type memoryRepository struct {
	records *store.Collection[Invoice]
	seq     *store.Sequence
}

// NewMemoryRepository builds a Repository over the in-memory store.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		records: store.NewCollection[Invoice](),
		seq:     store.NewSequence("INV", 0),
	}
}

func (r *memoryRepository) All(ctx context.Context) []Invoice {
	return r.records.All()
}

func (r *memoryRepository) Get(ctx context.Context, id string) (*Invoice, error) {
	inv, ok := r.records.Find(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &inv, nil
}

func (r *memoryRepository) Insert(ctx context.Context, invoice Invoice) error {
	r.records.Insert(invoice)
	r.seq.Advance(store.SequenceValue(invoice.ID))
	return nil
}

func (r *memoryRepository) Replace(ctx context.Context, invoice Invoice) error {
	if !r.records.Replace(invoice.ID, invoice) {
		return ErrNotFound
	}
	return nil
}

func (r *memoryRepository) NextID(ctx context.Context) string {
	return r.seq.Next()
}
