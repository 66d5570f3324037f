// Package order turns a finalized cart into permanent order records and
// manages per-customer order history files.
package order

import (
	"github.com/Qasimali-019/storekeeper/internal/cart"
	"github.com/Qasimali-019/storekeeper/internal/catalog"
)

// Record is a single finalized order line. Records are append-only: once
// written to a customer's history they are never mutated or removed.
type Record struct {
	Code        int
	ProductName string
	Quantity    int
	TotalCost   float64
}

// Receipt is the result of finalizing a cart.
type Receipt struct {
	Records    []Record
	GrandTotal float64
}

// Finalize converts every ledger line into a Record using the line's
// reservation-time snapshot and clears the ledger on success.
//
// Catalog stock is not touched here: the debit already happened when each
// line was reserved. Fails with EMPTY_CART on an empty ledger.
func Finalize(ledger *cart.Ledger) (Receipt, error) {
	if ledger.Len() == 0 {
		return Receipt{}, &catalog.Error{
			Code:    catalog.ErrCodeEmptyCart,
			Message: "cart is empty",
		}
	}

	receipt := Receipt{Records: make([]Record, 0, ledger.Len())}
	for line := range ledger.Lines() {
		cost := line.Cost()
		receipt.Records = append(receipt.Records, Record{
			Code:        line.Code,
			ProductName: line.Name,
			Quantity:    line.Quantity,
			TotalCost:   cost,
		})
		receipt.GrandTotal += cost
	}
	ledger.Clear()
	return receipt, nil
}
