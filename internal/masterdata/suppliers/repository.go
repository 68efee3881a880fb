package suppliers

import (
	"context"

	"github.com/meridian-oms/meridian/internal/platform/httpx"
	"github.com/meridian-oms/meridian/internal/store"
)

// ErrNotFound is returned when a supplier id does not resolve.
var ErrNotFound = httpx.E(httpx.ErrNotFound, "Supplier not found")

type Repository interface {
	All(ctx context.Context) []Supplier
	Get(ctx context.Context, id string) (*Supplier, error)
	Insert(ctx context.Context, supplier Supplier) error
	Replace(ctx context.Context, supplier Supplier) error
	Remove(ctx context.Context, id string) error
	NextID(ctx context.Context) string
}

type memoryRepository struct {
	records *store.Collection[Supplier]
	seq     *store.Sequence
}

// NewMemoryRepository builds a Repository over the in-memory store.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		records: store.NewCollection[Supplier](),
		seq:     store.NewSequence("SUP", 0),
	}
}

func (r *memoryRepository) All(ctx context.Context) []Supplier {
	return r.records.All()
}

func (r *memoryRepository) Get(ctx context.Context, id string) (*Supplier, error) {
	s, ok := r.records.Find(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *memoryRepository) Insert(ctx context.Context, supplier Supplier) error {
	r.records.Insert(supplier)
	r.seq.Advance(store.SequenceValue(supplier.ID))
	return nil
}

func (r *memoryRepository) Replace(ctx context.Context, supplier Supplier) error {
	if !r.records.Replace(supplier.ID, supplier) {
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
