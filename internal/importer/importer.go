// Package importer loads product definitions from CUE files for bulk
// catalog import.
//
// The CUE schema carries the field constraints, so an import file cannot
// produce a record the catalog would reject: codes are positive ints,
// prices positive, discounts within [0, 100], stock non-negative.
// Uses the CUE SDK's Go API directly (not a CLI subprocess).
package importer

import (
	"fmt"
	"log/slog"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/Qasimali-019/storekeeper/internal/catalog"
)

// productSchema constrains import files. An import file declares:
//
//	products: [
//		{code: 10, name: "Milk", price: 2.5, discount: 10, stock: 8, category: "Dairy"},
//	]
const productSchema = `
#Product: {
	code:     int & >0
	name:     string & !=""
	price:    number & >0
	discount: *0 | (number & >=0 & <=100)
	stock:    *0 | (int & >=0)
	category: string & !=""
}

products: [...#Product]
`

// ImportError reports a problem in an import file.
type ImportError struct {
	File    string
	Message string
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("%s: %s", e.File, e.Message)
}

type productDecl struct {
	Code     int     `json:"code"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Discount float64 `json:"discount"`
	Stock    int     `json:"stock"`
	Category string  `json:"category"`
}

// Parse validates CUE source against the product schema and returns the
// declared products in file order. filename is used in error messages only.
func Parse(source, filename string) ([]catalog.Product, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(productSchema, cue.Filename("products.schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile product schema: %w", err)
	}

	file := ctx.CompileString(source, cue.Filename(filename))
	if err := file.Err(); err != nil {
		return nil, &ImportError{File: filename, Message: cueerrors.Details(err, nil)}
	}
	if !file.LookupPath(cue.ParsePath("products")).Exists() {
		return nil, &ImportError{File: filename, Message: "products list is required"}
	}

	merged := schema.Unify(file)
	if err := merged.Validate(cue.Final(), cue.Concrete(true)); err != nil {
		return nil, &ImportError{File: filename, Message: cueerrors.Details(err, nil)}
	}

	listVal := merged.LookupPath(cue.ParsePath("products"))

	iter, err := listVal.List()
	if err != nil {
		return nil, &ImportError{File: filename, Message: "products must be a list"}
	}

	var products []catalog.Product
	for iter.Next() {
		var decl productDecl
		if err := iter.Value().Decode(&decl); err != nil {
			return nil, &ImportError{File: filename, Message: cueerrors.Details(err, nil)}
		}
		products = append(products, catalog.Product{
			Code:     decl.Code,
			Name:     decl.Name,
			Price:    decl.Price,
			Discount: decl.Discount,
			Stock:    decl.Stock,
			Category: decl.Category,
		})
	}
	return products, nil
}

// ParseFile reads and parses a CUE import file.
func ParseFile(path string) ([]catalog.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}
	return Parse(string(data), path)
}

// Import inserts products into the index. A duplicate code is skipped
// with a warning, not fatal, matching the flat-file load contract.
// Returns the number of records added and the number skipped.
func Import(ix *catalog.Index, products []catalog.Product) (added, skipped int) {
	for _, p := range products {
		if err := ix.Insert(p); err != nil {
			if catalog.IsDuplicateCode(err) {
				slog.Warn("skipping duplicate product in import", "code", p.Code)
				skipped++
				continue
			}
			// Schema-validated records can still collide with catalog
			// validation only through duplicates; anything else is skipped
			// the same way.
			slog.Warn("skipping invalid product in import", "code", p.Code, "error", err)
			skipped++
			continue
		}
		added++
	}
	return added, skipped
}
