package cli

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/Qasimali-019/storekeeper/internal/account"
	"github.com/Qasimali-019/storekeeper/internal/catalog"
	"github.com/Qasimali-019/storekeeper/internal/config"
	"github.com/Qasimali-019/storekeeper/internal/shop"
	"github.com/Qasimali-019/storekeeper/internal/store"

	"github.com/spf13/cobra"
)

// runtime bundles the loaded catalog, the audit store and the engine a
// command operates on. Commands that mutate the catalog must call
// SaveCatalog before returning.
type runtime struct {
	cfg   config.Config
	ix    *catalog.Index
	audit *store.Store
	eng   *shop.Engine
}

// openRuntime loads the config file, the flat-file catalog and the audit
// database, and wires them into an engine.
func openRuntime(opts *RootOptions) (*runtime, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load config", err)
	}

	ix, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load catalog", err)
	}

	if err := os.MkdirAll(cfg.AccountsDir, 0o755); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to create accounts directory", err)
	}
	accounts := account.NewRegistry(cfg.AccountsDir)

	st, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open audit database", err)
	}

	eng := shop.New(ix, accounts, cfg.AccountsDir, shop.WithAudit(st))
	return &runtime{cfg: cfg, ix: ix, audit: st, eng: eng}, nil
}

// Close releases the audit database.
func (rt *runtime) Close() {
	if err := rt.audit.Close(); err != nil {
		slog.Error("error closing audit database", "error", err)
	}
}

// SaveCatalog writes the catalog back to its flat file.
func (rt *runtime) SaveCatalog() error {
	if err := catalog.SaveFile(rt.cfg.CatalogPath, rt.ix); err != nil {
		return WrapExitError(ExitCommandError, "failed to save catalog", err)
	}
	return nil
}

// AdminOptions holds the credential flags shared by admin commands.
type AdminOptions struct {
	User string
	Pass string
}

func addAdminFlags(cmd *cobra.Command, opts *AdminOptions) {
	cmd.Flags().StringVar(&opts.User, "admin-user", "", "administrator username")
	cmd.Flags().StringVar(&opts.Pass, "admin-pass", "", "administrator password")
}

// requireAdmin rejects the command unless the supplied credentials match
// the configured administrator account.
func requireAdmin(cfg config.Config, opts AdminOptions) error {
	if !account.AdminCheck(cfg.AdminUsername, cfg.AdminPassword, opts.User, opts.Pass) {
		return NewExitError(ExitFailure, "admin credentials rejected")
	}
	return nil
}

// parseCode parses a positional product code argument.
func parseCode(arg string) (int, error) {
	code, err := strconv.Atoi(arg)
	if err != nil {
		return 0, WrapExitError(ExitCommandError, "invalid product code "+strconv.Quote(arg), err)
	}
	return code, nil
}
