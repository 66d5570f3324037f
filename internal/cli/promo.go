package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// NewPromoCommand creates the promo command group.
func NewPromoCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "promo",
		Short: "Apply promotional discounts",
		Long: `Apply promotional discounts to the catalog.

A promotion overwrites the discount percentage of the targeted products.
Discounts are percentages between 0 and 100; 0 clears a promotion.`,
	}

	cmd.AddCommand(newPromoProductCommand(rootOpts))
	cmd.AddCommand(newPromoCategoryCommand(rootOpts))
	cmd.AddCommand(newPromoAllCommand(rootOpts))

	return cmd
}

// PromoOptions holds flags shared by the promo subcommands.
type PromoOptions struct {
	*RootOptions
	Admin AdminOptions
}

func newPromoProductCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PromoOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "product <code> <discount>",
		Short:         "Set one product's discount",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return promoProduct(opts, args, cmd)
		},
	}

	addAdminFlags(cmd, &opts.Admin)

	return cmd
}

func promoProduct(opts *PromoOptions, args []string, cmd *cobra.Command) error {
	code, err := parseCode(args[0])
	if err != nil {
		return err
	}
	discount, err := parseDiscount(args[1])
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

	if err := rt.eng.ApplyPromotionToProduct(cmd.Context(), code, discount, opts.Admin.User); err != nil {
		return WrapExitError(ExitFailure, "failed to apply promotion", err)
	}
	if err := rt.SaveCatalog(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Product %d discount set to %.1f%%\n", code, discount)
	return nil
}

func newPromoCategoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PromoOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "category <name> <discount>",
		Short:         "Set the discount for every product in a category",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return promoCategory(opts, args, cmd)
		},
	}

	addAdminFlags(cmd, &opts.Admin)

	return cmd
}

func promoCategory(opts *PromoOptions, args []string, cmd *cobra.Command) error {
	discount, err := parseDiscount(args[1])
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

	n, err := rt.eng.ApplyPromotionToCategory(cmd.Context(), args[0], discount, opts.Admin.User)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to apply promotion", err)
	}
	if err := rt.SaveCatalog(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Discount %.1f%% applied to %d products in %s\n", discount, n, args[0])
	return nil
}

func newPromoAllCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PromoOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "all <discount>",
		Short:         "Set the discount for every product",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return promoAll(opts, args[0], cmd)
		},
	}

	addAdminFlags(cmd, &opts.Admin)

	return cmd
}

func promoAll(opts *PromoOptions, arg string, cmd *cobra.Command) error {
	discount, err := parseDiscount(arg)
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

	n, err := rt.eng.ApplyPromotionToAll(cmd.Context(), discount, opts.Admin.User)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to apply promotion", err)
	}
	if err := rt.SaveCatalog(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Discount %.1f%% applied to %d products\n", discount, n)
	return nil
}

func parseDiscount(arg string) (float64, error) {
	discount, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, WrapExitError(ExitCommandError, "invalid discount "+strconv.Quote(arg), err)
	}
	return discount, nil
}
