package analytics

import (
	"sort"

	"github.com/Qasimali-019/storekeeper/internal/catalog"
	"github.com/Qasimali-019/storekeeper/internal/order"
)

// SalesLine aggregates realized sales for one product code across every
// customer's order history.
type SalesLine struct {
	Code     int
	Name     string // resolved from the catalog; "Unknown" if since deleted
	Quantity int
	Revenue  float64
}

// SalesReport scans every order history under historiesDir and aggregates
// quantity and revenue per product code, ascending by code. Product names
// are resolved against the current catalog so renamed products show their
// current name; codes no longer in the catalog are reported as "Unknown".
func SalesReport(ix *catalog.Index, historiesDir string) ([]SalesLine, error) {
	customers, err := order.Customers(historiesDir)
	if err != nil {
		return nil, err
	}

	byCode := make(map[int]*SalesLine)
	for _, username := range customers {
		records, err := order.ReadHistory(historiesDir, username)
		if err != nil {
			return nil, err
		}
		for _, r := range records {
			line, ok := byCode[r.Code]
			if !ok {
				line = &SalesLine{Code: r.Code}
				byCode[r.Code] = line
			}
			line.Quantity += r.Quantity
			line.Revenue += r.TotalCost
		}
	}

	lines := make([]SalesLine, 0, len(byCode))
	for _, line := range byCode {
		if p, err := ix.Find(line.Code); err == nil {
			line.Name = p.Name
		} else {
			line.Name = "Unknown"
		}
		lines = append(lines, *line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].Code < lines[j].Code })
	return lines, nil
}
