// Package seed loads the embedded demo dataset into the in-memory stores.
// The fixtures give a fresh instance something to show: a handful of
// customers and suppliers, open orders and invoices in every lifecycle state.
package seed

import (
	"context"
	"fmt"

	_ "embed"

	"gopkg.in/yaml.v3"

	"github.com/meridian-oms/meridian/internal/billing"
	"github.com/meridian-oms/meridian/internal/masterdata/suppliers"
	"github.com/meridian-oms/meridian/internal/sales/customers"
	"github.com/meridian-oms/meridian/internal/sales/orders"
)

//go:embed fixtures.yaml
var fixturesYAML []byte

// Fixtures is the parsed demo dataset.
type Fixtures struct {
	Customers []customers.Customer `yaml:"customers"`
	Suppliers []suppliers.Supplier `yaml:"suppliers"`
	Orders    []orders.Order       `yaml:"orders"`
	Invoices  []billing.Invoice    `yaml:"invoices"`
}

// Repositories collects the stores the fixtures are loaded into.
type Repositories struct {
	Customers customers.Repository
	Suppliers suppliers.Repository
	Orders    orders.Repository
	Invoices  billing.Repository
}

// Load parses the embedded fixtures.
func Load() (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(fixturesYAML, &f); err != nil {
		return nil, fmt.Errorf("seed: parse fixtures: %w", err)
	}
	return &f, nil
}

// Apply inserts the fixtures into the repositories. Inserting advances each
// store's id sequence, so records created afterwards continue numbering
// where the fixtures left off.
func (f *Fixtures) Apply(ctx context.Context, repos Repositories) error {
	for _, c := range f.Customers {
		if err := repos.Customers.Insert(ctx, c); err != nil {
			return fmt.Errorf("seed: customer %s: %w", c.ID, err)
		}
	}
	for _, s := range f.Suppliers {
		if err := repos.Suppliers.Insert(ctx, s); err != nil {
			return fmt.Errorf("seed: supplier %s: %w", s.ID, err)
		}
	}
	for _, o := range f.Orders {
		if err := repos.Orders.Insert(ctx, o); err != nil {
			return fmt.Errorf("seed: order %s: %w", o.ID, err)
		}
	}
	for _, inv := range f.Invoices {
		if err := repos.Invoices.Insert(ctx, inv); err != nil {
			return fmt.Errorf("seed: invoice %s: %w", inv.ID, err)
		}
	}
	return nil
}
