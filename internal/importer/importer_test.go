package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Qasimali-019/storekeeper/internal/catalog"
)

const validSource = `
products: [
	{code: 10, name: "Milk", price: 2.5, discount: 10, stock: 8, category: "Dairy"},
	{code: 20, name: "Bread", price: 3.25, category: "Bakery"},
]
`

func TestParse_Valid(t *testing.T) {
	products, err := Parse(validSource, "test.cue")
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, catalog.Product{Code: 10, Name: "Milk", Price: 2.5, Discount: 10, Stock: 8, Category: "Dairy"}, products[0])
	// discount and stock default to zero.
	assert.Equal(t, catalog.Product{Code: 20, Name: "Bread", Price: 3.25, Category: "Bakery"}, products[1])
}

func TestParse_ConstraintViolations(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"negative code", `products: [{code: -1, name: "x", price: 1, category: "c"}]`},
		{"zero price", `products: [{code: 1, name: "x", price: 0, category: "c"}]`},
		{"discount over 100", `products: [{code: 1, name: "x", price: 1, discount: 150, category: "c"}]`},
		{"negative stock", `products: [{code: 1, name: "x", price: 1, stock: -3, category: "c"}]`},
		{"empty name", `products: [{code: 1, name: "", price: 1, category: "c"}]`},
		{"missing category", `products: [{code: 1, name: "x", price: 1}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.source, "bad.cue")
			require.Error(t, err)
			var ie *ImportError
			assert.ErrorAs(t, err, &ie)
		})
	}
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse(`products: [{code: }]`, "broken.cue")
	require.Error(t, err)
}

func TestParse_MissingProductsList(t *testing.T) {
	_, err := Parse(`items: []`, "wrong.cue")
	require.Error(t, err)
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.cue")
	require.NoError(t, os.WriteFile(path, []byte(validSource), 0o644))

	products, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestParseFile_Missing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "absent.cue"))
	require.Error(t, err)
}

func TestImport_SkipsDuplicates(t *testing.T) {
	ix := catalog.NewIndex()
	require.NoError(t, ix.Insert(catalog.Product{Code: 10, Name: "Existing", Price: 1, Stock: 1, Category: "c"}))

	products, err := Parse(validSource, "test.cue")
	require.NoError(t, err)

	added, skipped := Import(ix, products)
	assert.Equal(t, 1, added)
	assert.Equal(t, 1, skipped)

	// The existing record wins over the imported duplicate.
	p, err := ix.Find(10)
	require.NoError(t, err)
	assert.Equal(t, "Existing", p.Name)
}
