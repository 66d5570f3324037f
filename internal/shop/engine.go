// Package shop wires the catalog, cart, order, promotion and analytics
// components into the single engine the CLI talks to.
//
// The engine is single-session and synchronous: every operation runs to
// completion before the next begins, and at most one customer session is
// active at a time. There is no locking because there is no concurrent
// mutation.
package shop

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"github.com/Qasimali-019/storekeeper/internal/account"
	"github.com/Qasimali-019/storekeeper/internal/analytics"
	"github.com/Qasimali-019/storekeeper/internal/cart"
	"github.com/Qasimali-019/storekeeper/internal/catalog"
	"github.com/Qasimali-019/storekeeper/internal/importer"
	"github.com/Qasimali-019/storekeeper/internal/order"
	"github.com/Qasimali-019/storekeeper/internal/promo"
	"github.com/Qasimali-019/storekeeper/internal/store"
)

// ErrNoSession is returned by customer operations when no session is active.
var ErrNoSession = errors.New("no active customer session")

// Engine owns the catalog index and coordinates every operation against
// it. Audit logging is optional: a nil store disables it, and an audit
// write failure never fails the operation it describes.
type Engine struct {
	ix         *catalog.Index
	promos     *promo.Applier
	accounts   *account.Registry
	audit      *store.Store
	historyDir string
	tokens     account.TokenGenerator
}

// Option configures an Engine.
type Option func(*Engine)

// WithAudit enables audit logging to st.
func WithAudit(st *store.Store) Option {
	return func(e *Engine) { e.audit = st }
}

// WithTokens overrides the session token generator (for testing).
func WithTokens(gen account.TokenGenerator) Option {
	return func(e *Engine) { e.tokens = gen }
}

// New creates an Engine over an already-loaded catalog index.
// historyDir is where per-customer order histories live; it is normally
// the same directory the account registry uses.
func New(ix *catalog.Index, accounts *account.Registry, historyDir string, opts ...Option) *Engine {
	e := &Engine{
		ix:         ix,
		promos:     promo.New(ix),
		accounts:   accounts,
		historyDir: historyDir,
		tokens:     account.UUIDTokens{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the underlying index, for persistence at shutdown.
func (e *Engine) Catalog() *catalog.Index {
	return e.ix
}

func (e *Engine) recordAudit(ctx context.Context, ev store.Event) {
	if e.audit == nil {
		return
	}
	if err := e.audit.Append(ctx, ev); err != nil {
		slog.Warn("audit write failed", "kind", ev.Kind, "error", err)
	}
}

// ---------- Catalog operations ----------

// InsertProduct adds a new record to the catalog.
func (e *Engine) InsertProduct(ctx context.Context, p catalog.Product, actor string) error {
	if err := e.ix.Insert(p); err != nil {
		return err
	}
	e.recordAudit(ctx, store.Event{
		Kind:        store.KindProductAdded,
		ProductCode: p.Code,
		Actor:       actor,
		Detail:      fmt.Sprintf("added %s price=%.2f discount=%.0f%% stock=%d category=%s", p.Name, p.Price, p.Discount, p.Stock, p.Category),
	})
	return nil
}

// FindProduct returns the record for code.
func (e *Engine) FindProduct(code int) (catalog.Product, error) {
	return e.ix.Find(code)
}

// ProductPatch is a partial update: nil fields keep their current value.
// The product code itself is immutable.
type ProductPatch struct {
	Name     *string
	Price    *float64
	Discount *float64
	Stock    *int
	Category *string
}

// EditProduct applies a partial update to an existing record.
func (e *Engine) EditProduct(ctx context.Context, code int, patch ProductPatch, actor string) (catalog.Product, error) {
	err := e.ix.Update(code, func(p *catalog.Product) error {
		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.Discount != nil {
			p.Discount = *patch.Discount
		}
		if patch.Stock != nil {
			p.Stock = *patch.Stock
		}
		if patch.Category != nil {
			p.Category = *patch.Category
		}
		return nil
	})
	if err != nil {
		return catalog.Product{}, err
	}
	updated, err := e.ix.Find(code)
	if err != nil {
		return catalog.Product{}, err
	}
	e.recordAudit(ctx, store.Event{
		Kind:        store.KindProductEdited,
		ProductCode: code,
		Actor:       actor,
		Detail:      fmt.Sprintf("edited %s price=%.2f discount=%.0f%% stock=%d category=%s", updated.Name, updated.Price, updated.Discount, updated.Stock, updated.Category),
	})
	return updated, nil
}

// DeleteProduct removes a record from the catalog.
func (e *Engine) DeleteProduct(ctx context.Context, code int, actor string) error {
	if err := e.ix.Remove(code); err != nil {
		return err
	}
	e.recordAudit(ctx, store.Event{
		Kind:        store.KindProductDeleted,
		ProductCode: code,
		Actor:       actor,
		Detail:      "deleted",
	})
	return nil
}

// EnumerateOrdered returns records in ascending code order, optionally
// filtered. A nil predicate yields every record.
func (e *Engine) EnumerateOrdered(pred catalog.Predicate) iter.Seq[catalog.Product] {
	return e.ix.InOrder(pred)
}

// SortedView returns matching records sorted by key for display.
func (e *Engine) SortedView(pred catalog.Predicate, key catalog.SortKey) []catalog.Product {
	return e.ix.SortedView(pred, key)
}

// ImportProducts bulk-loads products from a CUE import file.
func (e *Engine) ImportProducts(ctx context.Context, path, actor string) (added, skipped int, err error) {
	products, err := importer.ParseFile(path)
	if err != nil {
		return 0, 0, err
	}
	added, skipped = importer.Import(e.ix, products)
	e.recordAudit(ctx, store.Event{
		Kind:   store.KindProductAdded,
		Actor:  actor,
		Detail: fmt.Sprintf("imported %d products from %s (%d skipped)", added, path, skipped),
	})
	return added, skipped, nil
}

// ---------- Sessions ----------

// Register creates a customer account and starts a session for it.
func (e *Engine) Register(username, password string) (*account.Session, error) {
	cust, err := e.accounts.Register(username, password)
	if err != nil {
		return nil, err
	}
	return account.NewSession(cust, e.tokens), nil
}

// Login authenticates a customer and starts a session.
func (e *Engine) Login(username, password string) (*account.Session, error) {
	cust, err := e.accounts.Login(username, password)
	if err != nil {
		return nil, err
	}
	return account.NewSession(cust, e.tokens), nil
}

// ---------- Cart operations ----------

// Reserve adds quantity units of code to the session's cart, debiting
// catalog stock immediately.
func (e *Engine) Reserve(sess *account.Session, code, quantity int) (cart.Line, error) {
	if sess == nil {
		return cart.Line{}, ErrNoSession
	}
	return sess.Cart.Reserve(e.ix, code, quantity)
}

// SetQuantity overwrites a cart line's quantity (0 removes the line).
func (e *Engine) SetQuantity(sess *account.Session, code, quantity int) error {
	if sess == nil {
		return ErrNoSession
	}
	return sess.Cart.SetQuantity(code, quantity)
}

// ListCart returns the session's cart lines in insertion order.
func (e *Engine) ListCart(sess *account.Session) (iter.Seq[cart.Line], error) {
	if sess == nil {
		return nil, ErrNoSession
	}
	return sess.Cart.Lines(), nil
}

// FinalizeOrder converts the session's cart into permanent order records,
// appends them to the customer's history (memory and file) and clears the
// cart. Catalog stock is not touched: it was debited at reservation time.
func (e *Engine) FinalizeOrder(ctx context.Context, sess *account.Session) (order.Receipt, error) {
	if sess == nil {
		return order.Receipt{}, ErrNoSession
	}
	receipt, err := order.Finalize(sess.Cart)
	if err != nil {
		return order.Receipt{}, err
	}
	sess.Customer.History = append(sess.Customer.History, receipt.Records...)
	if err := order.AppendHistory(e.historyDir, sess.Customer.Username, receipt.Records); err != nil {
		return order.Receipt{}, err
	}
	e.recordAudit(ctx, store.Event{
		Kind:   store.KindOrderPlaced,
		Actor:  sess.Customer.Username,
		Detail: fmt.Sprintf("%d lines, total %.2f", len(receipt.Records), receipt.GrandTotal),
	})
	return receipt, nil
}

// OrderHistory returns the customer's persisted order records, oldest first.
func (e *Engine) OrderHistory(sess *account.Session) ([]order.Record, error) {
	if sess == nil {
		return nil, ErrNoSession
	}
	return order.ReadHistory(e.historyDir, sess.Customer.Username)
}

// AddToWishlist snapshots the product for code onto the customer's wishlist.
func (e *Engine) AddToWishlist(sess *account.Session, code int) (account.WishlistItem, error) {
	if sess == nil {
		return account.WishlistItem{}, ErrNoSession
	}
	p, err := e.ix.Find(code)
	if err != nil {
		return account.WishlistItem{}, err
	}
	item := account.WishlistItem{Code: p.Code, Name: p.Name, Price: p.Price}
	if err := e.accounts.AddToWishlist(sess.Customer, item); err != nil {
		return account.WishlistItem{}, err
	}
	return item, nil
}

// Wishlist returns the customer's persisted wishlist, oldest first.
func (e *Engine) Wishlist(sess *account.Session) ([]account.WishlistItem, error) {
	if sess == nil {
		return nil, ErrNoSession
	}
	return e.accounts.ReadWishlist(sess.Customer.Username)
}

// ---------- Promotions ----------

// ApplyPromotionToProduct overwrites a single product's discount.
func (e *Engine) ApplyPromotionToProduct(ctx context.Context, code int, discount float64, actor string) error {
	if err := e.promos.ApplyToProduct(code, discount); err != nil {
		return err
	}
	e.recordAudit(ctx, store.Event{
		Kind:        store.KindPromotion,
		ProductCode: code,
		Actor:       actor,
		Detail:      fmt.Sprintf("%.0f%% off product %d", discount, code),
	})
	return nil
}

// ApplyPromotionToCategory overwrites the discount of every product in a
// category. No matches is a no-op, not an error.
func (e *Engine) ApplyPromotionToCategory(ctx context.Context, category string, discount float64, actor string) (int, error) {
	n, err := e.promos.ApplyToCategory(category, discount)
	if err != nil {
		return 0, err
	}
	e.recordAudit(ctx, store.Event{
		Kind:   store.KindPromotion,
		Actor:  actor,
		Detail: fmt.Sprintf("%.0f%% off category %s (%d products)", discount, category, n),
	})
	return n, nil
}

// ApplyPromotionToAll overwrites the discount of every catalog record.
func (e *Engine) ApplyPromotionToAll(ctx context.Context, discount float64, actor string) (int, error) {
	n, err := e.promos.ApplyToAll(discount)
	if err != nil {
		return 0, err
	}
	e.recordAudit(ctx, store.Event{
		Kind:   store.KindPromotion,
		Actor:  actor,
		Detail: fmt.Sprintf("%.0f%% off all products (%d products)", discount, n),
	})
	return n, nil
}

// ---------- Reports ----------

// ComputeSummary produces the catalog summary snapshot. The catalog is
// only read.
func (e *Engine) ComputeSummary(ctx context.Context, lowStockThreshold int, actor string) analytics.Summary {
	s := analytics.ComputeSummary(e.ix, lowStockThreshold)
	e.recordAudit(ctx, store.Event{
		Kind:   store.KindReport,
		Actor:  actor,
		Detail: fmt.Sprintf("summary: %d products, valuation %.2f, %d low stock", s.TotalProducts, s.TotalValuation, s.LowStockCount),
	})
	return s
}

// SalesReport aggregates realized sales across all customer histories.
func (e *Engine) SalesReport(ctx context.Context, actor string) ([]analytics.SalesLine, error) {
	lines, err := analytics.SalesReport(e.ix, e.historyDir)
	if err != nil {
		return nil, err
	}
	e.recordAudit(ctx, store.Event{
		Kind:   store.KindReport,
		Actor:  actor,
		Detail: fmt.Sprintf("sales report: %d products", len(lines)),
	})
	return lines, nil
}
