package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Qasimali-019/storekeeper/internal/config"
)

// writeTestConfig creates a config file pointing every path into a temp
// directory and returns its path alongside the parsed config.
func writeTestConfig(t *testing.T) (string, config.Config) {
	t.Helper()
	dir := t.TempDir()

	cfg := config.Default()
	cfg.CatalogPath = filepath.Join(dir, "products.txt")
	cfg.DatabasePath = filepath.Join(dir, "storekeeper.db")
	cfg.AccountsDir = filepath.Join(dir, "accounts")

	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)

	path := filepath.Join(dir, "storekeeper.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path, cfg
}

// execute runs the CLI with args and returns its combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func adminArgs(cfg config.Config) []string {
	return []string{"--admin-user", cfg.AdminUsername, "--admin-pass", cfg.AdminPassword}
}

func TestCatalogAddAndList(t *testing.T) {
	cfgPath, cfg := writeTestConfig(t)

	out, err := execute(t, append([]string{
		"catalog", "add", "101", "Milk", "2.50", "Dairy",
		"--stock", "20", "--config", cfgPath,
	}, adminArgs(cfg)...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Added product 101 (Milk)")

	// The catalog file is written on mutation.
	data, err := os.ReadFile(cfg.CatalogPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "101 Milk 2.5 0 20 Dairy")

	out, err = execute(t, "catalog", "ls", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Milk")
	assert.Contains(t, out, "Dairy")
}

func TestCatalogAddRejectsBadCredentials(t *testing.T) {
	cfgPath, cfg := writeTestConfig(t)

	_, err := execute(t,
		"catalog", "add", "101", "Milk", "2.50", "Dairy",
		"--admin-user", cfg.AdminUsername, "--admin-pass", "wrong",
		"--config", cfgPath,
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin credentials rejected")
	assert.Equal(t, ExitFailure, GetExitCode(err))

	// Nothing was saved.
	_, statErr := os.Stat(cfg.CatalogPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestCatalogAddDuplicateCode(t *testing.T) {
	cfgPath, cfg := writeTestConfig(t)

	args := append([]string{
		"catalog", "add", "101", "Milk", "2.50", "Dairy", "--config", cfgPath,
	}, adminArgs(cfg)...)

	_, err := execute(t, args...)
	require.NoError(t, err)

	_, err = execute(t, args...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to add product")
}

func TestCatalogEdit(t *testing.T) {
	cfgPath, cfg := writeTestConfig(t)

	_, err := execute(t, append([]string{
		"catalog", "add", "101", "Milk", "2.50", "Dairy", "--config", cfgPath,
	}, adminArgs(cfg)...)...)
	require.NoError(t, err)

	out, err := execute(t, append([]string{
		"catalog", "edit", "101", "--price", "2.75", "--stock", "35", "--config", cfgPath,
	}, adminArgs(cfg)...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Updated product 101 (Milk)")

	data, err := os.ReadFile(cfg.CatalogPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "101 Milk 2.75 0 35 Dairy")
}

func TestCatalogEditRequiresAField(t *testing.T) {
	cfgPath, cfg := writeTestConfig(t)

	_, err := execute(t, append([]string{
		"catalog", "edit", "101", "--config", cfgPath,
	}, adminArgs(cfg)...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to edit")
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCatalogRm(t *testing.T) {
	cfgPath, cfg := writeTestConfig(t)

	_, err := execute(t, append([]string{
		"catalog", "add", "101", "Milk", "2.50", "Dairy", "--config", cfgPath,
	}, adminArgs(cfg)...)...)
	require.NoError(t, err)

	out, err := execute(t, append([]string{
		"catalog", "rm", "101", "--config", cfgPath,
	}, adminArgs(cfg)...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed product 101")

	out, err = execute(t, "catalog", "ls", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No products found.")
}

func TestCatalogLsFilters(t *testing.T) {
	cfgPath, cfg := writeTestConfig(t)

	for _, args := range [][]string{
		{"catalog", "add", "101", "Milk", "2.50", "Dairy"},
		{"catalog", "add", "102", "Cheese", "7.00", "Dairy"},
		{"catalog", "add", "103", "Bread", "3.25", "Bakery"},
	} {
		_, err := execute(t, append(append(args, "--config", cfgPath), adminArgs(cfg)...)...)
		require.NoError(t, err)
	}

	out, err := execute(t, "catalog", "ls", "--category", "Dairy", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Milk")
	assert.Contains(t, out, "Cheese")
	assert.NotContains(t, out, "Bread")

	out, err = execute(t, "catalog", "ls", "--min-price", "3", "--max-price", "8", "--config", cfgPath)
	require.NoError(t, err)
	assert.NotContains(t, out, "Milk")
	assert.Contains(t, out, "Cheese")
	assert.Contains(t, out, "Bread")
}

func TestCatalogLsSorted(t *testing.T) {
	cfgPath, cfg := writeTestConfig(t)

	for _, args := range [][]string{
		{"catalog", "add", "101", "Milk", "2.50", "Dairy", "--stock", "8"},
		{"catalog", "add", "102", "Cheese", "7.00", "Dairy", "--stock", "4"},
	} {
		_, err := execute(t, append(append(args, "--config", cfgPath), adminArgs(cfg)...)...)
		require.NoError(t, err)
	}

	out, err := execute(t, "catalog", "ls", "--sort", "stock", "--config", cfgPath)
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Cheese"), strings.Index(out, "Milk"))

	out, err = execute(t, "catalog", "ls", "--sort", "price", "--config", cfgPath)
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Milk"), strings.Index(out, "Cheese"))

	_, err = execute(t, "catalog", "ls", "--sort", "weight", "--config", cfgPath)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestCatalogSearch(t *testing.T) {
	cfgPath, cfg := writeTestConfig(t)

	_, err := execute(t, append([]string{
		"catalog", "add", "101", "WholeMilk", "2.50", "Dairy", "--config", cfgPath,
	}, adminArgs(cfg)...)...)
	require.NoError(t, err)

	out, err := execute(t, "catalog", "search", "Milk", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "WholeMilk")

	out, err = execute(t, "catalog", "search", "Bread", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "No products found.")
}

func TestCatalogImport(t *testing.T) {
	cfgPath, cfg := writeTestConfig(t)

	src := `products: [
	{code: 101, name: "Milk", price: 2.50, stock: 20, category: "Dairy"},
	{code: 102, name: "Bread", price: 3.25, stock: 15, category: "Bakery"},
]`
	importPath := filepath.Join(t.TempDir(), "seed.cue")
	require.NoError(t, os.WriteFile(importPath, []byte(src), 0o644))

	out, err := execute(t, append([]string{
		"catalog", "import", importPath, "--config", cfgPath,
	}, adminArgs(cfg)...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 products (0 skipped)")

	out, err = execute(t, "catalog", "ls", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Milk")
	assert.Contains(t, out, "Bread")
}

func TestPromoCategory(t *testing.T) {
	cfgPath, cfg := writeTestConfig(t)

	for _, args := range [][]string{
		{"catalog", "add", "101", "Milk", "2.50", "Dairy"},
		{"catalog", "add", "103", "Bread", "3.25", "Bakery"},
	} {
		_, err := execute(t, append(append(args, "--config", cfgPath), adminArgs(cfg)...)...)
		require.NoError(t, err)
	}

	out, err := execute(t, append([]string{
		"promo", "category", "Dairy", "25", "--config", cfgPath,
	}, adminArgs(cfg)...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Discount 25.0% applied to 1 products in Dairy")

	data, err := os.ReadFile(cfg.CatalogPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "101 Milk 2.5 25 0 Dairy")
	assert.Contains(t, string(data), "103 Bread 3.25 0 0 Bakery")
}

func TestPromoRejectsOutOfRangeDiscount(t *testing.T) {
	cfgPath, cfg := writeTestConfig(t)

	_, err := execute(t, append([]string{
		"catalog", "add", "101", "Milk", "2.50", "Dairy", "--config", cfgPath,
	}, adminArgs(cfg)...)...)
	require.NoError(t, err)

	_, err = execute(t, append([]string{
		"promo", "all", "150", "--config", cfgPath,
	}, adminArgs(cfg)...)...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to apply promotion")
}

func TestReportSummary(t *testing.T) {
	cfgPath, cfg := writeTestConfig(t)

	_, err := execute(t, append([]string{
		"catalog", "add", "101", "Milk", "2.50", "Dairy",
		"--stock", "8", "--config", cfgPath,
	}, adminArgs(cfg)...)...)
	require.NoError(t, err)

	out, err := execute(t, append([]string{
		"report", "summary", "--config", cfgPath,
	}, adminArgs(cfg)...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Total products:")
	assert.Contains(t, out, "Inventory valuation:")
	assert.Contains(t, out, "Milk (8 units)")
}

func TestReportAudit(t *testing.T) {
	cfgPath, cfg := writeTestConfig(t)

	_, err := execute(t, append([]string{
		"catalog", "add", "101", "Milk", "2.50", "Dairy", "--config", cfgPath,
	}, adminArgs(cfg)...)...)
	require.NoError(t, err)

	out, err := execute(t, append([]string{
		"report", "audit", "--config", cfgPath,
	}, adminArgs(cfg)...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "product_added")
}
