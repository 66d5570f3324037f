package catalog

import "sort"

// SortKey selects the field a sorted view orders by.
type SortKey string

const (
	SortByCode  SortKey = "code"
	SortByName  SortKey = "name"
	SortByPrice SortKey = "price"
	SortByStock SortKey = "stock"
)

// SortedView collects the records matching pred into a slice ordered by
// key. Code order falls straight out of the traversal; the other keys
// re-sort the collected copies, breaking ties by code so the result is
// deterministic.
func (ix *Index) SortedView(pred Predicate, key SortKey) []Product {
	var out []Product
	for p := range ix.InOrder(pred) {
		out = append(out, p)
	}
	switch key {
	case SortByName:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Name != out[j].Name {
				return out[i].Name < out[j].Name
			}
			return out[i].Code < out[j].Code
		})
	case SortByPrice:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Price != out[j].Price {
				return out[i].Price < out[j].Price
			}
			return out[i].Code < out[j].Code
		})
	case SortByStock:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].Stock != out[j].Stock {
				return out[i].Stock < out[j].Stock
			}
			return out[i].Code < out[j].Code
		})
	}
	return out
}
