package account

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Wishlists are persisted one line per item: "code name price", appended
// on every add.

// WishlistPath returns the wishlist file path for a customer.
func (r *Registry) WishlistPath(username string) string {
	return filepath.Join(r.dir, username+"_wishlist.txt")
}

// AddToWishlist appends a product snapshot to the customer's wishlist,
// both in memory and on disk. Duplicates are allowed.
func (r *Registry) AddToWishlist(cust *Customer, item WishlistItem) error {
	f, err := os.OpenFile(r.WishlistPath(cust.Username), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open wishlist: %w", err)
	}
	if _, err := fmt.Fprintf(f, "%d %s %g\n", item.Code, item.Name, item.Price); err != nil {
		f.Close()
		return fmt.Errorf("append wishlist: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close wishlist: %w", err)
	}
	cust.Wishlist = append(cust.Wishlist, item)
	return nil
}

// ReadWishlist returns the persisted wishlist for a customer, oldest
// first. A missing file yields an empty wishlist; malformed lines are
// skipped with a warning.
func (r *Registry) ReadWishlist(username string) ([]WishlistItem, error) {
	f, err := os.Open(r.WishlistPath(username))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open wishlist: %w", err)
	}
	defer f.Close()

	var items []WishlistItem
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 3 {
			slog.Warn("skipping malformed wishlist line", "customer", username, "line", lineNo)
			continue
		}
		code, err := strconv.Atoi(fields[0])
		if err != nil {
			slog.Warn("skipping malformed wishlist line", "customer", username, "line", lineNo, "error", err)
			continue
		}
		price, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			slog.Warn("skipping malformed wishlist line", "customer", username, "line", lineNo, "error", err)
			continue
		}
		items = append(items, WishlistItem{Code: code, Name: fields[1], Price: price})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read wishlist: %w", err)
	}
	return items, nil
}
