// Package account manages customer accounts, their credential files, and
// the per-login session that owns the active cart.
//
// Credentials are stored one file per customer (username then password,
// one per line) under the accounts directory. This is the inherited
// plaintext storage contract; hardening it is out of scope.
package account

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Qasimali-019/storekeeper/internal/order"
)

var (
	// ErrUserExists is returned when registering a username that is taken.
	ErrUserExists = errors.New("user already exists")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Customer is an in-memory account for the running session. History and
// Wishlist are append-only.
type Customer struct {
	Username string
	Password string
	History  []order.Record
	Wishlist []WishlistItem
}

// WishlistItem is a product snapshot taken when the item was wished for.
// Duplicates are allowed.
type WishlistItem struct {
	Code  int
	Name  string
	Price float64
}

// Registry loads and creates customer accounts backed by credential files.
// Accounts are deduplicated by username: repeated logins return the same
// Customer for the lifetime of the process.
type Registry struct {
	dir      string
	accounts map[string]*Customer
}

// NewRegistry creates a registry over the given accounts directory.
func NewRegistry(dir string) *Registry {
	return &Registry{dir: dir, accounts: make(map[string]*Customer)}
}

func (r *Registry) credentialPath(username string) string {
	return filepath.Join(r.dir, username+".txt")
}

// Register creates a new account and its credential file.
// Fails with ErrUserExists if the credential file already exists.
func (r *Registry) Register(username, password string) (*Customer, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	if _, err := os.Stat(r.credentialPath(username)); err == nil {
		return nil, ErrUserExists
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create accounts dir: %w", err)
	}
	content := username + "\n" + password + "\n"
	if err := os.WriteFile(r.credentialPath(username), []byte(content), 0o644); err != nil {
		return nil, fmt.Errorf("write credentials: %w", err)
	}
	cust := &Customer{Username: username, Password: password}
	r.accounts[username] = cust
	return cust, nil
}

// Login verifies the credentials against the stored file and returns the
// account. Fails with ErrInvalidCredentials on any mismatch or missing
// account.
func (r *Registry) Login(username, password string) (*Customer, error) {
	f, err := os.Open(r.credentialPath(username))
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	var stored [2]string
	for i := 0; i < 2 && scanner.Scan(); i++ {
		stored[i] = strings.TrimSpace(scanner.Text())
	}
	if stored[0] != username || stored[1] != password {
		return nil, ErrInvalidCredentials
	}

	if cust, ok := r.accounts[username]; ok {
		return cust, nil
	}
	cust := &Customer{Username: username, Password: password}
	r.accounts[username] = cust
	return cust, nil
}

// AdminCheck is the static administrator credential check.
func AdminCheck(wantUser, wantPass, user, pass string) bool {
	return user == wantUser && pass == wantPass
}
