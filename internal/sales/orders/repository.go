package orders

import (
	"context"

	"github.com/meridian-oms/meridian/internal/platform/httpx"
	"github.com/meridian-oms/meridian/internal/store"
)

// ErrNotFound is returned when an order id does not resolve.
var ErrNotFound = httpx.E(httpx.ErrNotFound, "Order not found")

type Repository interface {
	All(ctx context.Context) []Order
	Get(ctx context.Context, id string) (*Order, error)
	Insert(ctx context.Context, order Order) error
	Replace(ctx context.Context, order Order) error
	Remove(ctx context.Context, id string) error
	NextID(ctx context.Context) string
}

type memoryRepository struct {
	records *store.Collection[Order]
	seq     *store.Sequence
}

// NewMemoryRepository builds a Repository over the in-memory store.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		records: store.NewCollection[Order](),
		seq:     store.NewSequence("ORD", 0),
	}
}

func (r *memoryRepository) All(ctx context.Context) []Order {
	return r.records.All()
}

func (r *memoryRepository) Get(ctx context.Context, id string) (*Order, error) {
	o, ok := r.records.Find(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &o, nil
}

func (r *memoryRepository) Insert(ctx context.Context, order Order) error {
	r.records.Insert(order)
	r.seq.Advance(store.SequenceValue(order.ID))
	return nil
}

func (r *memoryRepository) Replace(ctx context.Context, order Order) error {
	if !r.records.Replace(order.ID, order) {
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
