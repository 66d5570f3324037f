package account

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_RegisterLogin(t *testing.T) {
	r := NewRegistry(t.TempDir())

	cust, err := r.Register("alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", cust.Username)

	got, err := r.Login("alice", "secret")
	require.NoError(t, err)
	assert.Same(t, cust, got, "repeated logins must return the same account")
}

func TestRegistry_Register_Duplicate(t *testing.T) {
	r := NewRegistry(t.TempDir())
	_, err := r.Register("alice", "secret")
	require.NoError(t, err)

	_, err = r.Register("alice", "other")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestRegistry_Login_BadPassword(t *testing.T) {
	r := NewRegistry(t.TempDir())
	_, err := r.Register("alice", "secret")
	require.NoError(t, err)

	_, err = r.Login("alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegistry_Login_UnknownUser(t *testing.T) {
	r := NewRegistry(t.TempDir())
	_, err := r.Login("nobody", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegistry_Login_SurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	r1 := NewRegistry(dir)
	_, err := r1.Register("alice", "secret")
	require.NoError(t, err)

	// Fresh registry over the same directory: credentials come from disk.
	r2 := NewRegistry(dir)
	cust, err := r2.Login("alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", cust.Username)
}

func TestWishlist_AppendRead(t *testing.T) {
	r := NewRegistry(t.TempDir())
	cust, err := r.Register("alice", "secret")
	require.NoError(t, err)

	milk := WishlistItem{Code: 10, Name: "Milk", Price: 2.5}
	require.NoError(t, r.AddToWishlist(cust, milk))
	require.NoError(t, r.AddToWishlist(cust, milk)) // duplicates allowed

	assert.Len(t, cust.Wishlist, 2)

	items, err := r.ReadWishlist("alice")
	require.NoError(t, err)
	assert.Equal(t, []WishlistItem{milk, milk}, items)
}

func TestWishlist_SkipsMalformedLines(t *testing.T) {
	r := NewRegistry(t.TempDir())
	_, err := r.Register("bob", "pw")
	require.NoError(t, err)
	raw := "10 Milk 2.5\nnot-valid\n20 Bread 3\n"
	require.NoError(t, os.WriteFile(r.WishlistPath("bob"), []byte(raw), 0o644))

	items, err := r.ReadWishlist("bob")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestAdminCheck(t *testing.T) {
	assert.True(t, AdminCheck("admin", "admin123", "admin", "admin123"))
	assert.False(t, AdminCheck("admin", "admin123", "admin", "nope"))
	assert.False(t, AdminCheck("admin", "admin123", "root", "admin123"))
}

func TestNewSession(t *testing.T) {
	r := NewRegistry(t.TempDir())
	cust, err := r.Register("alice", "secret")
	require.NoError(t, err)

	gen := NewFixedTokens("sess-1", "sess-2")
	s1 := NewSession(cust, gen)
	s2 := NewSession(cust, gen)

	assert.Equal(t, "sess-1", s1.Token)
	assert.Equal(t, "sess-2", s2.Token)
	assert.Same(t, cust, s1.Customer)
	assert.Equal(t, 0, s1.Cart.Len())
	assert.NotSame(t, s1.Cart, s2.Cart, "each session owns its own cart")
}

func TestUUIDTokens_Unique(t *testing.T) {
	gen := UUIDTokens{}
	assert.NotEqual(t, gen.Generate(), gen.Generate())
}
