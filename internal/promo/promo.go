// Package promo bulk-mutates discount fields over a selection of catalog
// records.
package promo

import (
	"github.com/Qasimali-019/storekeeper/internal/catalog"
)

// Applier applies promotions to the catalog index.
//
// The discount bound is checked once before any tree mutation begins, so a
// failed call never partially updates the catalog. Every matching node is
// visited exactly once; since each update is an independent overwrite the
// result does not depend on traversal order.
type Applier struct {
	ix *catalog.Index
}

// New creates an Applier over ix.
func New(ix *catalog.Index) *Applier {
	return &Applier{ix: ix}
}

// ApplyToProduct overwrites the discount of a single product.
// Fails with NOT_FOUND if the code is absent.
func (a *Applier) ApplyToProduct(code int, discount float64) error {
	if err := checkDiscount(discount); err != nil {
		return err
	}
	if _, err := a.ix.Find(code); err != nil {
		return err
	}
	a.ix.ApplyToSelection(catalog.SelectCode(code), setDiscount(discount))
	return nil
}

// ApplyToCategory overwrites the discount of every product whose category
// equals category exactly. No products matching is a no-op, not an error;
// the returned count tells the caller how many records changed.
func (a *Applier) ApplyToCategory(category string, discount float64) (int, error) {
	if err := checkDiscount(discount); err != nil {
		return 0, err
	}
	return a.ix.ApplyToSelection(catalog.SelectCategory(category), setDiscount(discount)), nil
}

// ApplyToAll overwrites the discount of every catalog record.
func (a *Applier) ApplyToAll(discount float64) (int, error) {
	if err := checkDiscount(discount); err != nil {
		return 0, err
	}
	return a.ix.ApplyToSelection(catalog.SelectAll(), setDiscount(discount)), nil
}

func setDiscount(discount float64) func(*catalog.Product) {
	return func(p *catalog.Product) {
		p.Discount = discount
	}
}

func checkDiscount(discount float64) error {
	if discount < 0 || discount > 100 {
		return catalog.NewInvalidDiscountError(discount)
	}
	return nil
}
