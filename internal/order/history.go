package order

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Order history is persisted one line per record, whitespace-separated:
//
//	code productName quantity totalCost
//
// History files are append-only and never rewritten.

const historySuffix = "_orders.txt"

// HistoryPath returns the history file path for a customer.
func HistoryPath(dir, username string) string {
	return filepath.Join(dir, username+historySuffix)
}

// AppendHistory appends records to the customer's history file, creating
// it if needed.
func AppendHistory(dir, username string, records []Record) error {
	f, err := os.OpenFile(HistoryPath(dir, username), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open order history: %w", err)
	}
	w := bufio.NewWriter(f)
	for _, r := range records {
		if _, err := fmt.Fprintf(w, "%d %s %d %g\n", r.Code, r.ProductName, r.Quantity, r.TotalCost); err != nil {
			f.Close()
			return fmt.Errorf("append order history: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("append order history: %w", err)
	}
	return f.Close()
}

// ReadHistory returns all persisted records for a customer, oldest first.
// A missing file yields an empty history. Malformed lines are skipped with
// a warning.
func ReadHistory(dir, username string) ([]Record, error) {
	f, err := os.Open(HistoryPath(dir, username))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open order history: %w", err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		r, err := parseRecord(line)
		if err != nil {
			slog.Warn("skipping malformed order record", "customer", username, "line", lineNo, "error", err)
			continue
		}
		records = append(records, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read order history: %w", err)
	}
	return records, nil
}

func parseRecord(line string) (Record, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return Record{}, fmt.Errorf("expected 4 fields, got %d", len(fields))
	}
	code, err := strconv.Atoi(fields[0])
	if err != nil {
		return Record{}, fmt.Errorf("code: %w", err)
	}
	qty, err := strconv.Atoi(fields[2])
	if err != nil {
		return Record{}, fmt.Errorf("quantity: %w", err)
	}
	cost, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return Record{}, fmt.Errorf("total cost: %w", err)
	}
	return Record{Code: code, ProductName: fields[1], Quantity: qty, TotalCost: cost}, nil
}

// Customers lists every username with a history file under dir, in
// lexicographic order. Used by the sales report to aggregate across all
// customers.
func Customers(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list order histories: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if strings.HasSuffix(name, historySuffix) {
			names = append(names, strings.TrimSuffix(name, historySuffix))
		}
	}
	return names, nil
}
