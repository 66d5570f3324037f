package catalog

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_PopulatesIndex(t *testing.T) {
	input := strings.Join([]string{
		"3 Bread 3.25 0 15 Bakery",
		"1 Milk 2.5 10 8 Dairy",
		"2 Cheese 7 0 4 Dairy",
	}, "\n")

	ix, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 3, ix.Len())

	p, err := ix.Find(1)
	require.NoError(t, err)
	assert.Equal(t, Product{Code: 1, Name: "Milk", Price: 2.5, Discount: 10, Stock: 8, Category: "Dairy"}, p)
}

func TestRead_SkipsMalformedLines(t *testing.T) {
	input := strings.Join([]string{
		"1 Milk 2.5 10 8 Dairy",
		"not a record",
		"2 Cheese abc 0 4 Dairy", // unparseable price
		"",
		"3 Bread 3.25 0 15 Bakery",
	}, "\n")

	ix, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 2, ix.Len())
}

func TestRead_DropsDuplicateCodes(t *testing.T) {
	input := strings.Join([]string{
		"1 Milk 2.5 0 8 Dairy",
		"1 Cheese 7 0 4 Dairy",
	}, "\n")

	ix, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Equal(t, 1, ix.Len())

	// The first record wins.
	p, err := ix.Find(1)
	require.NoError(t, err)
	assert.Equal(t, "Milk", p.Name)
}

func TestWrite_AscendingCodeOrder(t *testing.T) {
	ix := NewIndex()
	require.NoError(t, ix.Insert(Product{Code: 30, Name: "Bread", Price: 3.25, Stock: 15, Category: "Bakery"}))
	require.NoError(t, ix.Insert(Product{Code: 10, Name: "Milk", Price: 2.5, Discount: 10, Stock: 8, Category: "Dairy"}))
	require.NoError(t, ix.Insert(Product{Code: 20, Name: "Cheese", Price: 7, Stock: 4, Category: "Dairy"}))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, ix))

	want := "10 Milk 2.5 10 8 Dairy\n20 Cheese 7 0 4 Dairy\n30 Bread 3.25 0 15 Bakery\n"
	assert.Equal(t, want, buf.String())
}

func TestLoadFile_MissingFileIsEmptyInventory(t *testing.T) {
	ix, err := LoadFile(filepath.Join(t.TempDir(), "absent.txt"))
	require.NoError(t, err)
	assert.Equal(t, 0, ix.Len())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.txt")

	ix := NewIndex()
	require.NoError(t, ix.Insert(Product{Code: 7, Name: "Yogurt", Price: 1.85, Discount: 5, Stock: 12, Category: "Dairy"}))
	require.NoError(t, ix.Insert(Product{Code: 3, Name: "Eggs", Price: 4.2, Stock: 30, Category: "Dairy"}))
	require.NoError(t, SaveFile(path, ix))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, 2, loaded.Len())

	for p := range ix.InOrder(nil) {
		got, err := loaded.Find(p.Code)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}
