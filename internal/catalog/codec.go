package catalog

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// The persisted catalog format is one record per line with whitespace-
// separated fields in fixed order:
//
//	code name price discount stock category
//
// Names and categories are assumed to contain no embedded whitespace (a
// round-trip limitation of the format). Save writes an in-order traversal,
// so the file is always in ascending code order regardless of how records
// were inserted.

// Read populates a new Index from r.
// Malformed lines and duplicate codes are skipped with a warning; records
// that fail field validation are skipped the same way. Read only fails on
// I/O errors.
func Read(r io.Reader) (*Index, error) {
	ix := NewIndex()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		p, err := parseLine(line)
		if err != nil {
			slog.Warn("skipping malformed catalog record", "line", lineNo, "error", err)
			continue
		}
		if err := ix.Insert(p); err != nil {
			if IsDuplicateCode(err) {
				slog.Warn("dropping duplicate catalog record", "line", lineNo, "code", p.Code)
			} else {
				slog.Warn("skipping invalid catalog record", "line", lineNo, "error", err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ix, nil
}

func parseLine(line string) (Product, error) {
	fields := strings.Fields(line)
	if len(fields) != 6 {
		return Product{}, fmt.Errorf("expected 6 fields, got %d", len(fields))
	}
	code, err := strconv.Atoi(fields[0])
	if err != nil {
		return Product{}, fmt.Errorf("code: %w", err)
	}
	price, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return Product{}, fmt.Errorf("price: %w", err)
	}
	discount, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return Product{}, fmt.Errorf("discount: %w", err)
	}
	stock, err := strconv.Atoi(fields[4])
	if err != nil {
		return Product{}, fmt.Errorf("stock: %w", err)
	}
	return Product{
		Code:     code,
		Name:     fields[1],
		Price:    price,
		Discount: discount,
		Stock:    stock,
		Category: fields[5],
	}, nil
}

// Write serializes the index to w in ascending code order.
func Write(w io.Writer, ix *Index) error {
	bw := bufio.NewWriter(w)
	for p := range ix.InOrder(nil) {
		_, err := fmt.Fprintf(bw, "%d %s %g %g %d %s\n",
			p.Code, p.Name, p.Price, p.Discount, p.Stock, p.Category)
		if err != nil {
			return fmt.Errorf("write catalog: %w", err)
		}
	}
	return bw.Flush()
}

// LoadFile reads the catalog from path.
// A missing file is not an error: the engine starts with an empty inventory.
func LoadFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		slog.Info("no catalog file found, starting with empty inventory", "path", path)
		return NewIndex(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// SaveFile writes the catalog to path, replacing any previous contents.
func SaveFile(path string, ix *Index) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create catalog: %w", err)
	}
	if err := Write(f, ix); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
