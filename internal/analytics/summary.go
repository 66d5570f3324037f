// Package analytics produces read-only aggregates over the catalog and
// the persisted order histories.
package analytics

import (
	"github.com/Qasimali-019/storekeeper/internal/catalog"
)

// DefaultLowStockThreshold is the stock level below which a product counts
// as low on stock.
const DefaultLowStockThreshold = 10

// Summary is an immutable snapshot of catalog-wide statistics.
//
// Valuation figures are price * stock * (1 - discount/100): the current
// value of unsold stock, not realized sales revenue. MostStocked is the
// product with the highest current stock level, not the best seller.
type Summary struct {
	TotalProducts     int
	TotalValuation    float64
	LowStockThreshold int
	LowStockCount     int
	CategoryCounts    map[string]int
	CategoryValuation map[string]float64
	MostStocked       *catalog.Product
}

// ComputeSummary accumulates the summary in a single in-order traversal.
// The catalog is not mutated. A threshold <= 0 falls back to
// DefaultLowStockThreshold.
func ComputeSummary(ix *catalog.Index, lowStockThreshold int) Summary {
	if lowStockThreshold <= 0 {
		lowStockThreshold = DefaultLowStockThreshold
	}
	s := Summary{
		LowStockThreshold: lowStockThreshold,
		CategoryCounts:    make(map[string]int),
		CategoryValuation: make(map[string]float64),
	}
	for p := range ix.InOrder(nil) {
		s.TotalProducts++
		if p.Stock < lowStockThreshold {
			s.LowStockCount++
		}
		v := p.Valuation()
		s.TotalValuation += v
		s.CategoryCounts[p.Category]++
		s.CategoryValuation[p.Category] += v

		if s.MostStocked == nil || p.Stock > s.MostStocked.Stock {
			rec := p
			s.MostStocked = &rec
		}
	}
	return s
}
