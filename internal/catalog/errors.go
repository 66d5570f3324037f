package catalog

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes domain errors reported by the engine.
type ErrorCode string

const (
	// ErrCodeDuplicateCode indicates an insert collided with an existing product code.
	ErrCodeDuplicateCode ErrorCode = "DUPLICATE_CODE"

	// ErrCodeNotFound indicates a product code is absent from the catalog.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeLineNotFound indicates a cart line does not exist for the code.
	ErrCodeLineNotFound ErrorCode = "LINE_NOT_FOUND"

	// ErrCodeInvalidQuantity indicates a non-positive reservation quantity.
	ErrCodeInvalidQuantity ErrorCode = "INVALID_QUANTITY"

	// ErrCodeInsufficientStock indicates a reservation exceeds remaining stock.
	ErrCodeInsufficientStock ErrorCode = "INSUFFICIENT_STOCK"

	// ErrCodeInvalidDiscount indicates a discount outside [0, 100].
	ErrCodeInvalidDiscount ErrorCode = "INVALID_DISCOUNT"

	// ErrCodeEmptyCart indicates finalization was attempted on an empty ledger.
	ErrCodeEmptyCart ErrorCode = "EMPTY_CART"

	// ErrCodeInvalidRecord indicates a product record failed field validation.
	ErrCodeInvalidRecord ErrorCode = "INVALID_RECORD"
)

// Error is a recoverable domain error with a machine-readable code.
//
// All conditions are local and reported to the caller; none are fatal to
// the process. The CLI layer decides what to print.
type Error struct {
	Code    ErrorCode
	Message string

	// ProductCode identifies the affected product, when relevant (0 otherwise).
	ProductCode int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.ProductCode != 0 {
		return fmt.Sprintf("%s: %s (code=%d)", e.Code, e.Message, e.ProductCode)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CodeOf extracts the domain error code from an error chain.
// Returns empty string if err is not a catalog Error.
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// IsNotFound reports whether err indicates a missing product.
func IsNotFound(err error) bool {
	return CodeOf(err) == ErrCodeNotFound
}

// IsDuplicateCode reports whether err indicates a product code collision.
func IsDuplicateCode(err error) bool {
	return CodeOf(err) == ErrCodeDuplicateCode
}

// IsInsufficientStock reports whether err indicates an over-reservation.
func IsInsufficientStock(err error) bool {
	return CodeOf(err) == ErrCodeInsufficientStock
}

// NewDuplicateCodeError creates an Error for an insert collision.
func NewDuplicateCodeError(code int) *Error {
	return &Error{
		Code:        ErrCodeDuplicateCode,
		Message:     "product code already exists",
		ProductCode: code,
	}
}

// NewNotFoundError creates an Error for a missing product.
func NewNotFoundError(code int) *Error {
	return &Error{
		Code:        ErrCodeNotFound,
		Message:     "product not found",
		ProductCode: code,
	}
}

// NewInsufficientStockError creates an Error for an over-reservation.
func NewInsufficientStockError(code, requested, remaining int) *Error {
	return &Error{
		Code:        ErrCodeInsufficientStock,
		Message:     fmt.Sprintf("requested %d units, %d remaining", requested, remaining),
		ProductCode: code,
	}
}

// NewInvalidDiscountError creates an Error for a discount outside [0, 100].
func NewInvalidDiscountError(discount float64) *Error {
	return &Error{
		Code:    ErrCodeInvalidDiscount,
		Message: fmt.Sprintf("discount %.2f%% outside [0, 100]", discount),
	}
}
