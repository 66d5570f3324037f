package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Qasimali-019/storekeeper/internal/account"
	"github.com/Qasimali-019/storekeeper/internal/catalog"
)

// SessionOptions holds flags for the session command.
type SessionOptions struct {
	*RootOptions
}

// NewSessionCommand creates the interactive customer session command.
func NewSessionCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SessionOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Start an interactive customer session",
		Long: `Start an interactive customer session.

Adding a product to the cart reserves stock immediately; checking out
turns the cart into a permanent order. The catalog is saved back to its
file when the session ends.

Commands inside the session:
  register <user> <pass>   create an account and sign in
  login <user> <pass>      sign in
  browse [category]        list products
  search <name-fragment>   search products by name
  find <code>              show one product
  add <code> <qty>         reserve into the cart
  set <code> <qty>         change a cart line (0 removes it)
  cart                     show the cart
  checkout                 place the order
  history                  show past orders
  wish <code>              add a product to the wishlist
  wishlist                 show the wishlist
  quit                     end the session`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(opts, cmd)
		},
	}

	return cmd
}

func runSession(opts *SessionOptions, cmd *cobra.Command) error {
	rt, err := openRuntime(opts.RootOptions)
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	loop := &sessionLoop{rt: rt, out: cmd.OutOrStdout()}
	loop.run(ctx, cmd.InOrStdin())

	return rt.SaveCatalog()
}

// sessionLoop drives one interactive customer session.
type sessionLoop struct {
	rt   *runtime
	out  io.Writer
	sess *account.Session
}

func (l *sessionLoop) run(ctx context.Context, in io.Reader) {
	fmt.Fprintln(l.out, "Welcome to Storekeeper. Type 'help' for commands.")

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(l.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(l.out)
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			fmt.Fprintln(l.out, "Goodbye.")
			return
		}
		if err := l.dispatch(ctx, fields[0], fields[1:]); err != nil {
			fmt.Fprintf(l.out, "error: %v\n", err)
		}
	}
}

func (l *sessionLoop) dispatch(ctx context.Context, verb string, args []string) error {
	switch verb {
	case "help":
		l.help()
		return nil
	case "register":
		return l.register(args)
	case "login":
		return l.login(args)
	case "browse":
		return l.browse(args)
	case "search":
		return l.search(args)
	case "find":
		return l.find(args)
	case "add":
		return l.add(args)
	case "set":
		return l.set(args)
	case "cart":
		return l.cart()
	case "checkout":
		return l.checkout(ctx)
	case "history":
		return l.history()
	case "wish":
		return l.wish(args)
	case "wishlist":
		return l.wishlist()
	default:
		return fmt.Errorf("unknown command %q, type 'help'", verb)
	}
}

func (l *sessionLoop) help() {
	fmt.Fprintln(l.out, "Commands: register, login, browse, search, find, add, set, cart, checkout, history, wish, wishlist, quit")
}

func (l *sessionLoop) register(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: register <user> <pass>")
	}
	sess, err := l.rt.eng.Register(args[0], args[1])
	if err != nil {
		return err
	}
	l.sess = sess
	fmt.Fprintf(l.out, "Account created. Signed in as %s.\n", sess.Customer.Username)
	return nil
}

func (l *sessionLoop) login(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: login <user> <pass>")
	}
	sess, err := l.rt.eng.Login(args[0], args[1])
	if err != nil {
		return err
	}
	l.sess = sess
	fmt.Fprintf(l.out, "Signed in as %s.\n", sess.Customer.Username)
	return nil
}

func (l *sessionLoop) browse(args []string) error {
	var pred catalog.Predicate
	if len(args) > 0 {
		pred = catalog.ByCategory(args[0])
	}
	renderProducts(l.out, l.rt.eng.EnumerateOrdered(pred))
	return nil
}

func (l *sessionLoop) search(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: search <name-fragment>")
	}
	renderProducts(l.out, l.rt.eng.EnumerateOrdered(catalog.ByNameContains(args[0])))
	return nil
}

func (l *sessionLoop) find(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: find <code>")
	}
	code, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid product code %q", args[0])
	}
	p, err := l.rt.eng.FindProduct(code)
	if err != nil {
		return err
	}
	fmt.Fprintf(l.out, "%d %s  price %.2f  discount %.1f%%  net %.2f  stock %d  category %s\n",
		p.Code, p.Name, p.Price, p.Discount, p.NetPrice(), p.Stock, p.Category)
	return nil
}

func (l *sessionLoop) add(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: add <code> <qty>")
	}
	code, qty, err := parseCodeQty(args)
	if err != nil {
		return err
	}
	line, err := l.rt.eng.Reserve(l.sess, code, qty)
	if err != nil {
		return err
	}
	fmt.Fprintf(l.out, "Reserved %d x %s.\n", line.Quantity, line.Name)
	return nil
}

func (l *sessionLoop) set(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: set <code> <qty>")
	}
	code, qty, err := parseCodeQty(args)
	if err != nil {
		return err
	}
	if err := l.rt.eng.SetQuantity(l.sess, code, qty); err != nil {
		return err
	}
	if qty == 0 {
		fmt.Fprintf(l.out, "Removed product %d from the cart.\n", code)
	} else {
		fmt.Fprintf(l.out, "Cart line for product %d set to %d.\n", code, qty)
	}
	return nil
}

func (l *sessionLoop) cart() error {
	lines, err := l.rt.eng.ListCart(l.sess)
	if err != nil {
		return err
	}
	n, total := 0, 0.0
	for line := range lines {
		fmt.Fprintf(l.out, "%d x %-20s @ %.2f (-%.1f%%) = %.2f\n",
			line.Quantity, line.Name, line.Price, line.Discount, line.Cost())
		n++
		total += line.Cost()
	}
	if n == 0 {
		fmt.Fprintln(l.out, "Cart is empty.")
		return nil
	}
	fmt.Fprintf(l.out, "Cart total: %.2f\n", total)
	return nil
}

func (l *sessionLoop) checkout(ctx context.Context) error {
	receipt, err := l.rt.eng.FinalizeOrder(ctx, l.sess)
	if err != nil {
		return err
	}
	fmt.Fprintln(l.out, "Order placed.")
	for _, r := range receipt.Records {
		fmt.Fprintf(l.out, "%-6d %-20s %3d  %.2f\n", r.Code, r.ProductName, r.Quantity, r.TotalCost)
	}
	fmt.Fprintf(l.out, "Grand total: %.2f\n", receipt.GrandTotal)

	// Persist the stock debits right away rather than waiting for quit.
	return l.rt.SaveCatalog()
}

func (l *sessionLoop) history() error {
	records, err := l.rt.eng.OrderHistory(l.sess)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(l.out, "No past orders.")
		return nil
	}
	for _, r := range records {
		fmt.Fprintf(l.out, "%-6d %-20s %3d  %.2f\n", r.Code, r.ProductName, r.Quantity, r.TotalCost)
	}
	return nil
}

func (l *sessionLoop) wish(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: wish <code>")
	}
	code, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid product code %q", args[0])
	}
	item, err := l.rt.eng.AddToWishlist(l.sess, code)
	if err != nil {
		return err
	}
	fmt.Fprintf(l.out, "Added %s to the wishlist.\n", item.Name)
	return nil
}

func (l *sessionLoop) wishlist() error {
	items, err := l.rt.eng.Wishlist(l.sess)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(l.out, "Wishlist is empty.")
		return nil
	}
	for _, item := range items {
		fmt.Fprintf(l.out, "%-6d %-20s %.2f\n", item.Code, item.Name, item.Price)
	}
	return nil
}

func parseCodeQty(args []string) (code, qty int, err error) {
	code, err = strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid product code %q", args[0])
	}
	qty, err = strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid quantity %q", args[1])
	}
	return code, qty, nil
}
