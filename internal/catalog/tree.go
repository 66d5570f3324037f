package catalog

import (
	"iter"
	"strings"
)

// Index is an ordered product container keyed by code, backed by a binary
// search tree.
//
// INVARIANTS:
//   - For every node, all codes in its left subtree are smaller and all
//     codes in its right subtree are larger (strict ordering, no duplicates).
//   - Stock never goes negative through Index operations.
//
// The tree is not self-balancing: insert and find are O(log n) expected,
// O(n) worst case. Each subtree is exclusively owned through its parent
// pointer, so deletion never leaves a dangling node.
//
// Index is not safe for concurrent use. The engine is single-session and
// synchronous; a multi-user deployment would need per-product locking
// around Reserve/Remove/ApplyToSelection.
type Index struct {
	root *node
	size int
}

type node struct {
	rec   Product
	left  *node
	right *node
}

// NewIndex creates an empty catalog index.
func NewIndex() *Index {
	return &Index{}
}

// Len returns the number of products in the index.
func (ix *Index) Len() int {
	return ix.size
}

// Insert places a validated record in the tree.
// Fails with ErrCodeDuplicateCode if the code already exists; the existing
// record is left untouched.
func (ix *Index) Insert(p Product) error {
	if err := p.Validate(); err != nil {
		return err
	}
	newRoot, err := insertNode(ix.root, p)
	if err != nil {
		return err
	}
	ix.root = newRoot
	ix.size++
	return nil
}

func insertNode(n *node, p Product) (*node, error) {
	if n == nil {
		return &node{rec: p}, nil
	}
	switch {
	case p.Code == n.rec.Code:
		return nil, NewDuplicateCodeError(p.Code)
	case p.Code < n.rec.Code:
		left, err := insertNode(n.left, p)
		if err != nil {
			return nil, err
		}
		n.left = left
	default:
		right, err := insertNode(n.right, p)
		if err != nil {
			return nil, err
		}
		n.right = right
	}
	return n, nil
}

// Find returns a copy of the record for code.
// Fails with ErrCodeNotFound if absent.
func (ix *Index) Find(code int) (Product, error) {
	n := ix.root
	for n != nil {
		switch {
		case code == n.rec.Code:
			return n.rec, nil
		case code < n.rec.Code:
			n = n.left
		default:
			n = n.right
		}
	}
	return Product{}, NewNotFoundError(code)
}

// Update applies fn to the record for code in place.
// If fn returns an error the record is left unchanged.
func (ix *Index) Update(code int, fn func(*Product) error) error {
	n := ix.findNode(code)
	if n == nil {
		return NewNotFoundError(code)
	}
	scratch := n.rec
	if err := fn(&scratch); err != nil {
		return err
	}
	// The code is the tree key and must not change under a node.
	scratch.Code = n.rec.Code
	if err := scratch.Validate(); err != nil {
		return err
	}
	n.rec = scratch
	return nil
}

// AdjustStock changes the stock of code by delta.
// Fails with ErrCodeInsufficientStock if the result would be negative.
func (ix *Index) AdjustStock(code, delta int) error {
	n := ix.findNode(code)
	if n == nil {
		return NewNotFoundError(code)
	}
	if n.rec.Stock+delta < 0 {
		return NewInsufficientStockError(code, -delta, n.rec.Stock)
	}
	n.rec.Stock += delta
	return nil
}

func (ix *Index) findNode(code int) *node {
	n := ix.root
	for n != nil {
		switch {
		case code == n.rec.Code:
			return n
		case code < n.rec.Code:
			n = n.left
		default:
			n = n.right
		}
	}
	return nil
}

// Remove deletes the record for code.
// Fails with ErrCodeNotFound if absent; the tree is not mutated in that case.
//
// Deletion cases: a leaf is detached; a node with one child is replaced by
// that child; a node with two children takes the full field set of its
// in-order successor (the leftmost node of the right subtree), and the
// successor is then removed from the right subtree. The successor has at
// most one child, so that removal terminates in one of the first two cases.
func (ix *Index) Remove(code int) error {
	newRoot, err := removeNode(ix.root, code)
	if err != nil {
		return err
	}
	ix.root = newRoot
	ix.size--
	return nil
}

func removeNode(n *node, code int) (*node, error) {
	if n == nil {
		return nil, NewNotFoundError(code)
	}
	switch {
	case code < n.rec.Code:
		left, err := removeNode(n.left, code)
		if err != nil {
			return nil, err
		}
		n.left = left
	case code > n.rec.Code:
		right, err := removeNode(n.right, code)
		if err != nil {
			return nil, err
		}
		n.right = right
	default:
		if n.left == nil {
			return n.right, nil
		}
		if n.right == nil {
			return n.left, nil
		}
		succ := minNode(n.right)
		n.rec = succ.rec
		right, err := removeNode(n.right, succ.rec.Code)
		if err != nil {
			return nil, err
		}
		n.right = right
	}
	return n, nil
}

func minNode(n *node) *node {
	for n.left != nil {
		n = n.left
	}
	return n
}

// Predicate filters records during enumeration.
type Predicate func(Product) bool

// ByCategory matches records whose category equals cat exactly.
func ByCategory(cat string) Predicate {
	return func(p Product) bool { return p.Category == cat }
}

// ByPriceRange matches records with min <= price <= max.
func ByPriceRange(min, max float64) Predicate {
	return func(p Product) bool { return p.Price >= min && p.Price <= max }
}

// ByNameContains matches records whose name contains sub, case-insensitively.
func ByNameContains(sub string) Predicate {
	sub = strings.ToLower(sub)
	return func(p Product) bool {
		return strings.Contains(strings.ToLower(p.Name), sub)
	}
}

// ByStockBelow matches records with stock strictly below threshold.
func ByStockBelow(threshold int) Predicate {
	return func(p Product) bool { return p.Stock < threshold }
}

// InOrder returns a lazy sequence of record copies in ascending code order.
// A nil predicate yields every record. Each call starts an independent
// traversal; the tree must not be mutated while one is in progress.
func (ix *Index) InOrder(pred Predicate) iter.Seq[Product] {
	return func(yield func(Product) bool) {
		walk(ix.root, pred, yield)
	}
}

func walk(n *node, pred Predicate, yield func(Product) bool) bool {
	if n == nil {
		return true
	}
	if !walk(n.left, pred, yield) {
		return false
	}
	if pred == nil || pred(n.rec) {
		if !yield(n.rec) {
			return false
		}
	}
	return walk(n.right, pred, yield)
}

// Selector identifies the records targeted by a bulk mutation.
type Selector struct {
	code     int
	category string
	all      bool
}

// SelectCode targets the single record with the given code.
func SelectCode(code int) Selector { return Selector{code: code} }

// SelectCategory targets every record whose category equals cat exactly.
func SelectCategory(cat string) Selector { return Selector{category: cat} }

// SelectAll targets every record in the index.
func SelectAll() Selector { return Selector{all: true} }

func (s Selector) matches(p Product) bool {
	if s.all {
		return true
	}
	if s.category != "" {
		return p.Category == s.category
	}
	return p.Code == s.code
}

// ApplyToSelection applies mut to every record the selector matches,
// visiting each matching node exactly once in ascending code order.
// Returns the number of records mutated.
//
// mut must not change the product code.
func (ix *Index) ApplyToSelection(sel Selector, mut func(*Product)) int {
	matched := 0
	var apply func(n *node)
	apply = func(n *node) {
		if n == nil {
			return
		}
		apply(n.left)
		if sel.matches(n.rec) {
			code := n.rec.Code
			mut(&n.rec)
			n.rec.Code = code
			matched++
		}
		apply(n.right)
	}
	apply(ix.root)
	return matched
}
