// Package cart implements the reservation ledger: the ordered set of
// pending lines for the current customer session.
//
// A reservation is not a soft hold. Reserve debits catalog stock the
// moment it succeeds, so stock sitting in a cart is unavailable to any
// other reservation until the order is finalized or the line is removed.
package cart

import (
	"iter"

	"github.com/Qasimali-019/storekeeper/internal/catalog"
)

// Line is a single cart entry. Name, Price, Discount and Category are
// snapshots taken at reservation time and are not re-read from the catalog
// afterwards.
type Line struct {
	Code     int
	Name     string
	Price    float64
	Discount float64
	Category string
	Quantity int
}

// Cost returns price * quantity * (1 - discount/100) for the line.
func (l Line) Cost() float64 {
	return l.Price * float64(l.Quantity) * (1 - l.Discount/100)
}

// Ledger holds the active cart lines in insertion order, at most one line
// per product code.
type Ledger struct {
	lines []Line
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Len returns the number of lines in the ledger.
func (l *Ledger) Len() int {
	return len(l.lines)
}

// Reserve adds qty units of code to the cart, debiting catalog stock
// immediately. If a line for code already exists its quantity is increased
// rather than a second line inserted.
//
// Fails with INVALID_QUANTITY for qty <= 0, NOT_FOUND for an unknown code,
// and INSUFFICIENT_STOCK when qty exceeds the remaining stock. On failure
// neither the catalog nor the ledger is mutated.
func (l *Ledger) Reserve(ix *catalog.Index, code, qty int) (Line, error) {
	if qty <= 0 {
		return Line{}, &catalog.Error{
			Code:        catalog.ErrCodeInvalidQuantity,
			Message:     "quantity must be greater than zero",
			ProductCode: code,
		}
	}
	p, err := ix.Find(code)
	if err != nil {
		return Line{}, err
	}
	if qty > p.Stock {
		return Line{}, catalog.NewInsufficientStockError(code, qty, p.Stock)
	}
	if err := ix.AdjustStock(code, -qty); err != nil {
		return Line{}, err
	}

	if i := l.index(code); i >= 0 {
		l.lines[i].Quantity += qty
		return l.lines[i], nil
	}
	line := Line{
		Code:     p.Code,
		Name:     p.Name,
		Price:    p.Price,
		Discount: p.Discount,
		Category: p.Category,
		Quantity: qty,
	}
	l.lines = append(l.lines, line)
	return line, nil
}

// SetQuantity overwrites the quantity of an existing line. Zero removes
// the line; a negative quantity is rejected.
//
// Catalog stock is deliberately not reconciled for the delta between the
// old and new quantity: increasing a line does not re-check or re-debit
// stock, and decreasing it does not restore stock. This preserves the
// observable behavior of the system this engine replaces.
func (l *Ledger) SetQuantity(code, qty int) error {
	if qty < 0 {
		return &catalog.Error{
			Code:        catalog.ErrCodeInvalidQuantity,
			Message:     "quantity must not be negative",
			ProductCode: code,
		}
	}
	i := l.index(code)
	if i < 0 {
		return &catalog.Error{
			Code:        catalog.ErrCodeLineNotFound,
			Message:     "product not in cart",
			ProductCode: code,
		}
	}
	if qty == 0 {
		l.lines = append(l.lines[:i], l.lines[i+1:]...)
		return nil
	}
	l.lines[i].Quantity = qty
	return nil
}

// Lines returns a lazy sequence of the current lines in insertion order.
// Each call starts an independent pass.
func (l *Ledger) Lines() iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for _, line := range l.lines {
			if !yield(line) {
				return
			}
		}
	}
}

// Clear empties the ledger without touching catalog stock. Used after
// successful finalization, where stock was already debited at reservation
// time.
func (l *Ledger) Clear() {
	l.lines = l.lines[:0]
}

func (l *Ledger) index(code int) int {
	for i := range l.lines {
		if l.lines[i].Code == code {
			return i
		}
	}
	return -1
}
