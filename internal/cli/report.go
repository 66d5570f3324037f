package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Qasimali-019/storekeeper/internal/analytics"
)

// NewReportCommand creates the report command group.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Inventory and sales reports",
	}

	cmd.AddCommand(newReportSummaryCommand(rootOpts))
	cmd.AddCommand(newReportSalesCommand(rootOpts))
	cmd.AddCommand(newReportAuditCommand(rootOpts))

	return cmd
}

// ReportSummaryOptions holds flags for the report summary command.
type ReportSummaryOptions struct {
	*RootOptions
	Admin    AdminOptions
	LowStock int
}

func newReportSummaryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportSummaryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Inventory summary",
		Long: `Print the inventory summary: product count, total valuation,
low stock count, the most stocked product and a per-category breakdown.

Valuation uses the discounted price of every unit in stock.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return reportSummary(opts, cmd)
		},
	}

	addAdminFlags(cmd, &opts.Admin)
	cmd.Flags().IntVar(&opts.LowStock, "low-stock", 0, "low stock threshold (default from config)")

	return cmd
}

func reportSummary(opts *ReportSummaryOptions, cmd *cobra.Command) error {
	rt, err := openRuntime(opts.RootOptions)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := requireAdmin(rt.cfg, opts.Admin); err != nil {
		return err
	}

	threshold := opts.LowStock
	if threshold <= 0 {
		threshold = rt.cfg.LowStockThreshold
	}

	s := rt.eng.ComputeSummary(cmd.Context(), threshold, opts.Admin.User)
	analytics.RenderSummary(cmd.OutOrStdout(), s)
	return nil
}

// ReportSalesOptions holds flags for the report sales command.
type ReportSalesOptions struct {
	*RootOptions
	Admin AdminOptions
}

func newReportSalesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportSalesOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sales",
		Short: "Sales report across all customers",
		Long: `Aggregate every customer's order history into per-product
quantity and revenue totals, in ascending code order.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return reportSales(opts, cmd)
		},
	}

	addAdminFlags(cmd, &opts.Admin)

	return cmd
}

func reportSales(opts *ReportSalesOptions, cmd *cobra.Command) error {
	rt, err := openRuntime(opts.RootOptions)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := requireAdmin(rt.cfg, opts.Admin); err != nil {
		return err
	}

	lines, err := rt.eng.SalesReport(cmd.Context(), opts.Admin.User)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to build sales report", err)
	}
	analytics.RenderSales(cmd.OutOrStdout(), lines)
	return nil
}

// ReportAuditOptions holds flags for the report audit command.
type ReportAuditOptions struct {
	*RootOptions
	Admin AdminOptions
	Limit int
}

func newReportAuditCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportAuditOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:           "audit",
		Short:         "Show recent audit events, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return reportAudit(opts, cmd)
		},
	}

	addAdminFlags(cmd, &opts.Admin)
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum events to show")

	return cmd
}

func reportAudit(opts *ReportAuditOptions, cmd *cobra.Command) error {
	rt, err := openRuntime(opts.RootOptions)
	if err != nil {
		return err
	}
	defer rt.Close()

	if err := requireAdmin(rt.cfg, opts.Admin); err != nil {
		return err
	}

	events, err := rt.audit.Recent(cmd.Context(), opts.Limit)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to read audit log", err)
	}
	if len(events) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No audit events recorded.")
		return nil
	}
	for _, ev := range events {
		actor := ev.Actor
		if actor == "" {
			actor = "-"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %-16s %-10s %s\n",
			ev.CreatedAt.Format("2006-01-02 15:04:05"), ev.Kind, actor, ev.Detail)
	}
	return nil
}
