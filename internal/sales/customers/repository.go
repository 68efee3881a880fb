package customers

import (
	"context"

	"github.com/meridian-oms/meridian/internal/platform/httpx"
	"github.com/meridian-oms/meridian/internal/store"
)

// ErrNotFound is returned when a customer id does not resolve.
var ErrNotFound = httpx.E(httpx.ErrNotFound, "Customer not found")

// Repository defines data access for customers. The in-memory implementation
// is the only one today; a database-backed one would satisfy the same seam.
type Repository interface {
	All(ctx context.Context) []Customer
	Get(ctx context.Context, id string) (*Customer, error)
	Insert(ctx context.Context, customer Customer) error
	Replace(ctx context.Context, customer Customer) error
	Remove(ctx context.Context, id string) error
	NextID(ctx context.Context) string
}

type memoryRepository struct {
	records *store.Collection[Customer]
	seq     *store.Sequence
}

// NewMemoryRepository builds a Repository over the in-memory store.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		records: store.NewCollection[Customer](),
		seq:     store.NewSequence("CUST", 0),
	}
}

func (r *memoryRepository) All(ctx context.Context) []Customer {
	return r.records.All()
}

func (r *memoryRepository) Get(ctx context.Context, id string) (*Customer, error) {
	c, ok := r.records.Find(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *memoryRepository) Insert(ctx context.Context, customer Customer) error {
	r.records.Insert(customer)
	r.seq.Advance(store.SequenceValue(customer.ID))
	return nil
}

func (r *memoryRepository) Replace(ctx context.Context, customer Customer) error {
	if !r.records.Replace(customer.ID, customer) {
		return ErrNotFound
	}
	return nil
}

func (r *memoryRepository) Remove(ctx context.Context, id string) error {
	if _, ok := r.records.Remove(id); !ok {
		return ErrNotFound
	}
	return nil
}

func (r *memoryRepository) NextID(ctx context.Context) string {
	return r.seq.Next()
}
