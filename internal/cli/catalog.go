package cli

import (
	"fmt"
	"io"
	"iter"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Qasimali-019/storekeeper/internal/catalog"
	"github.com/Qasimali-019/storekeeper/internal/shop"
)

// NewCatalogCommand creates the catalog command group.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Manage the product catalog",
	}

	cmd.AddCommand(newCatalogAddCommand(rootOpts))
	cmd.AddCommand(newCatalogEditCommand(rootOpts))
	cmd.AddCommand(newCatalogRmCommand(rootOpts))
	cmd.AddCommand(newCatalogLsCommand(rootOpts))
	cmd.AddCommand(newCatalogSearchCommand(rootOpts))
	cmd.AddCommand(newCatalogImportCommand(rootOpts))

	return cmd
}

// CatalogAddOptions holds flags for the catalog add command.
type CatalogAddOptions struct {
	*RootOptions
	Admin    AdminOptions
	Discount float64
	Stock    int
}

func newCatalogAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add <code> <name> <price> <category>",
		Short: "Add a product to the catalog",
		Long: `Add a product to the catalog.

The code must be a positive integer not already in use. Names are single
tokens since the catalog file is space-separated.

Example:
  storekeeper catalog add 101 Milk 2.50 Dairy --stock 20 --admin-user admin --admin-pass admin123`,
		Args:          cobra.ExactArgs(4),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return catalogAdd(opts, args, cmd)
		},
	}

	addAdminFlags(cmd, &opts.Admin)
	cmd.Flags().Float64Var(&opts.Discount, "discount", 0, "discount percentage (0-100)")
	cmd.Flags().IntVar(&opts.Stock, "stock", 0, "initial stock level")

	return cmd
}

func catalogAdd(opts *CatalogAddOptions, args []string, cmd *cobra.Command) error {
	code, err := parseCode(args[0])
	if err != nil {
		return err
	}
	price, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid price "+strconv.Quote(args[2]), err)
	}

	rt, err := openRuntime(opts.RootOptions)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := requireAdmin(rt.cfg, opts.Admin); err != nil {
		return err
	}

	p := catalog.Product{
		Code:     code,
		Name:     args[1],
		Price:    price,
		Discount: opts.Discount,
		Stock:    opts.Stock,
		Category: args[3],
	}
	if err := rt.eng.InsertProduct(cmd.Context(), p, opts.Admin.User); err != nil {
		return WrapExitError(ExitFailure, "failed to add product", err)
	}
	if err := rt.SaveCatalog(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added product %d (%s)\n", p.Code, p.Name)
	return nil
}

// CatalogEditOptions holds flags for the catalog edit command.
type CatalogEditOptions struct {
	*RootOptions
	Admin    AdminOptions
	Name     string
	Price    float64
	Discount float64
	Stock    int
	Category string
}

func newCatalogEditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogEditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "edit <code>",
		Short: "Edit an existing product",
		Long: `Edit an existing product. Only the fields given as flags change;
the product code itself cannot be changed.

Example:
  storekeeper catalog edit 101 --price 2.75 --stock 35 --admin-user admin --admin-pass admin123`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return catalogEdit(opts, args[0], cmd)
		},
	}

	addAdminFlags(cmd, &opts.Admin)
	cmd.Flags().StringVar(&opts.Name, "name", "", "new product name")
	cmd.Flags().Float64Var(&opts.Price, "price", 0, "new unit price")
	cmd.Flags().Float64Var(&opts.Discount, "discount", 0, "new discount percentage (0-100)")
	cmd.Flags().IntVar(&opts.Stock, "stock", 0, "new stock level")
	cmd.Flags().StringVar(&opts.Category, "category", "", "new category")

	return cmd
}

func catalogEdit(opts *CatalogEditOptions, arg string, cmd *cobra.Command) error {
	code, err := parseCode(arg)
	if err != nil {
		return err
	}

	var patch shop.ProductPatch
	flags := cmd.Flags()
	if flags.Changed("name") {
		patch.Name = &opts.Name
	}
	if flags.Changed("price") {
		patch.Price = &opts.Price
	}
	if flags.Changed("discount") {
		patch.Discount = &opts.Discount
	}
	if flags.Changed("stock") {
		patch.Stock = &opts.Stock
	}
	if flags.Changed("category") {
		patch.Category = &opts.Category
	}
	if patch == (shop.ProductPatch{}) {
		return NewExitError(ExitCommandError, "nothing to edit: give at least one field flag")
	}

	rt, err := openRuntime(opts.RootOptions)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := requireAdmin(rt.cfg, opts.Admin); err != nil {
		return err
	}

	updated, err := rt.eng.EditProduct(cmd.Context(), code, patch, opts.Admin.User)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to edit product", err)
	}
	if err := rt.SaveCatalog(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated product %d (%s)\n", updated.Code, updated.Name)
	return nil
}

// CatalogRmOptions holds flags for the catalog rm command.
type CatalogRmOptions struct {
	*RootOptions
	Admin AdminOptions
}

func newCatalogRmCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogRmOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "rm <code>",
		Short:         "Remove a product from the catalog",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return catalogRm(opts, args[0], cmd)
		},
	}

	addAdminFlags(cmd, &opts.Admin)

	return cmd
}

func catalogRm(opts *CatalogRmOptions, arg string, cmd *cobra.Command) error {
	code, err := parseCode(arg)
	if err != nil {
		return err
	}

	rt, err := openRuntime(opts.RootOptions)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := requireAdmin(rt.cfg, opts.Admin); err != nil {
		return err
	}

	if err := rt.eng.DeleteProduct(cmd.Context(), code, opts.Admin.User); err != nil {
		return WrapExitError(ExitFailure, "failed to remove product", err)
	}
	if err := rt.SaveCatalog(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed product %d\n", code)
	return nil
}

// CatalogLsOptions holds flags for the catalog ls command.
type CatalogLsOptions struct {
	*RootOptions
	Category string
	MinPrice float64
	MaxPrice float64
	Sort     string
}

func newCatalogLsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogLsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List products in code order",
		Long: `List catalog products in ascending code order.

Filters combine: --category keeps one category, --min-price and
--max-price bound the unit price (inclusive). --sort reorders the view
by name, price or stock instead of code.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return catalogLs(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Category, "category", "", "only list this category")
	cmd.Flags().Float64Var(&opts.MinPrice, "min-price", 0, "minimum unit price")
	cmd.Flags().Float64Var(&opts.MaxPrice, "max-price", 0, "maximum unit price")
	cmd.Flags().StringVar(&opts.Sort, "sort", "code", "sort order (code|name|price|stock)")

	return cmd
}

func catalogLs(opts *CatalogLsOptions, cmd *cobra.Command) error {
	rt, err := openRuntime(opts.RootOptions)
	if err != nil {
		return err
	}
	defer rt.Close()

	var pred catalog.Predicate
	if opts.Category != "" {
		pred = catalog.ByCategory(opts.Category)
	}
	if cmd.Flags().Changed("min-price") || cmd.Flags().Changed("max-price") {
		max := opts.MaxPrice
		if !cmd.Flags().Changed("max-price") {
			max = maxPriceBound
		}
		priced := catalog.ByPriceRange(opts.MinPrice, max)
		if pred == nil {
			pred = priced
		} else {
			cat := pred
			pred = func(p catalog.Product) bool { return cat(p) && priced(p) }
		}
	}

	switch key := catalog.SortKey(opts.Sort); key {
	case catalog.SortByCode:
		renderProducts(cmd.OutOrStdout(), rt.eng.EnumerateOrdered(pred))
	case catalog.SortByName, catalog.SortByPrice, catalog.SortByStock:
		renderProducts(cmd.OutOrStdout(), slices.Values(rt.eng.SortedView(pred, key)))
	default:
		return NewExitError(ExitCommandError, "invalid sort order "+strconv.Quote(opts.Sort))
	}
	return nil
}

// maxPriceBound stands in for an unset --max-price.
const maxPriceBound = 1e18

// CatalogSearchOptions holds flags for the catalog search command.
type CatalogSearchOptions struct {
	*RootOptions
}

func newCatalogSearchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogSearchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "search <name-fragment>",
		Short:         "Search products by name",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return catalogSearch(opts, args[0], cmd)
		},
	}

	return cmd
}

func catalogSearch(opts *CatalogSearchOptions, fragment string, cmd *cobra.Command) error {
	rt, err := openRuntime(opts.RootOptions)
	if err != nil {
		return err
	}
	defer rt.Close()

	renderProducts(cmd.OutOrStdout(), rt.eng.EnumerateOrdered(catalog.ByNameContains(fragment)))
	return nil
}

// CatalogImportOptions holds flags for the catalog import command.
type CatalogImportOptions struct {
	*RootOptions
	Admin AdminOptions
}

func newCatalogImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogImportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "import <file.cue>",
		Short: "Bulk-import products from a CUE file",
		Long: `Bulk-import products from a CUE file.

The file must define a "products" list; every entry is validated against
the product schema before anything is added. Entries whose code is
already taken are skipped.

Example:
  storekeeper catalog import seed.cue --admin-user admin --admin-pass admin123`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return catalogImport(opts, args[0], cmd)
		},
	}

	addAdminFlags(cmd, &opts.Admin)

	return cmd
}

func catalogImport(opts *CatalogImportOptions, path string, cmd *cobra.Command) error {
	rt, err := openRuntime(opts.RootOptions)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := requireAdmin(rt.cfg, opts.Admin); err != nil {
		return err
	}

	added, skipped, err := rt.eng.ImportProducts(cmd.Context(), path, opts.Admin.User)
	if err != nil {
		return WrapExitError(ExitFailure, "import failed", err)
	}
	if err := rt.SaveCatalog(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d products (%d skipped)\n", added, skipped)
	return nil
}

// renderProducts prints a product table in ascending code order.
func renderProducts(w io.Writer, products iter.Seq[catalog.Product]) {
	n := 0
	for p := range products {
		if n == 0 {
			fmt.Fprintf(w, "%-6s %-20s %10s %7s %6s  %s\n",
				"CODE", "NAME", "PRICE", "DISC%", "STOCK", "CATEGORY")
		}
		fmt.Fprintf(w, "%-6d %-20s %10.2f %7.1f %6d  %s\n",
			p.Code, p.Name, p.Price, p.Discount, p.Stock, p.Category)
		n++
	}
	if n == 0 {
		fmt.Fprintln(w, "No products found.")
	}
}
