package account

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Qasimali-019/storekeeper/internal/cart"
)

// TokenGenerator produces session tokens.
// Implemented by UUIDTokens (production) and FixedTokens (tests).
type TokenGenerator interface {
	Generate() string
}

// UUIDTokens generates time-sortable UUIDv7 session tokens.
// Stateless and safe for concurrent use.
type UUIDTokens struct{}

// Generate returns a new UUIDv7 as a hyphenated string.
func (UUIDTokens) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedTokens returns predetermined tokens in order, for deterministic
// tests. Panics when exhausted.
type FixedTokens struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedTokens creates a generator returning tokens in the given order.
func NewFixedTokens(tokens ...string) *FixedTokens {
	return &FixedTokens{tokens: tokens}
}

// Generate returns the next predetermined token.
func (g *FixedTokens) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.idx >= len(g.tokens) {
		panic("account: fixed tokens exhausted")
	}
	tok := g.tokens[g.idx]
	g.idx++
	return tok
}

// Session is the explicit per-login context: it owns the active cart and
// references the authenticated customer. Created at login, discarded at
// logout; there is exactly one active session at a time.
type Session struct {
	Token     string
	Customer  *Customer
	Cart      *cart.Ledger
	StartedAt time.Time
}

// NewSession starts a session for an authenticated customer with an empty
// cart.
func NewSession(cust *Customer, gen TokenGenerator) *Session {
	return &Session{
		Token:     gen.Generate(),
		Customer:  cust,
		Cart:      cart.NewLedger(),
		StartedAt: time.Now(),
	}
}
