package analytics

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Report rendering is fixed-column text, matching the persisted report
// format. Numbers go through an English-locale printer so large valuations
// come out grouped ("12,480.00").

var printer = message.NewPrinter(language.English)

func money(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// RenderSummary writes a Summary as a text report.
func RenderSummary(w io.Writer, s Summary) {
	rule := strings.Repeat("=", 56)
	fmt.Fprintln(w, "Inventory Summary")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total products:       %d\n", s.TotalProducts)
	fmt.Fprintf(w, "Inventory valuation:  $%s\n", money(s.TotalValuation))
	fmt.Fprintf(w, "Low stock (< %d):     %d\n", s.LowStockThreshold, s.LowStockCount)
	if s.MostStocked != nil {
		fmt.Fprintf(w, "Most stocked:         %s (%d units)\n", s.MostStocked.Name, s.MostStocked.Stock)
	} else {
		fmt.Fprintln(w, "Most stocked:         n/a")
	}
	fmt.Fprintln(w, rule)

	if len(s.CategoryCounts) == 0 {
		return
	}
	categories := make([]string, 0, len(s.CategoryCounts))
	for cat := range s.CategoryCounts {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	fmt.Fprintln(w, "Category breakdown:")
	for _, cat := range categories {
		fmt.Fprintf(w, "  %s: %d products, $%s\n", cat, s.CategoryCounts[cat], money(s.CategoryValuation[cat]))
	}
}

// RenderSales writes aggregated sales lines as a text report.
func RenderSales(w io.Writer, lines []SalesLine) {
	rule := strings.Repeat("=", 56)
	fmt.Fprintln(w, "Sales Report")
	fmt.Fprintln(w, rule)
	if len(lines) == 0 {
		fmt.Fprintln(w, "No sales recorded.")
		return
	}
	fmt.Fprintf(w, "%-6s %-20s %6s  %s\n", "Code", "Name", "Qty", "Revenue")
	for _, l := range lines {
		fmt.Fprintf(w, "%-6d %-20s %6d  $%s\n", l.Code, l.Name, l.Quantity, money(l.Revenue))
	}
	fmt.Fprintln(w, rule)
}
