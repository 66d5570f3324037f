package catalog

// Product is a single catalog record.
//
// Code is the identity: a positive integer, unique across the catalog and
// immutable once inserted. The Index owns all records exclusively; other
// components reference products by code lookup and receive copies.
type Product struct {
	Code     int
	Name     string
	Price    float64
	Discount float64 // percent, always within [0, 100]
	Stock    int
	Category string
}

// NetPrice returns the unit price after discount.
func (p Product) NetPrice() float64 {
	return p.Price * (1 - p.Discount/100)
}

// Valuation returns price * stock * (1 - discount/100): the current value
// of unsold stock, not realized sales revenue.
func (p Product) Valuation() float64 {
	return p.Price * float64(p.Stock) * (1 - p.Discount/100)
}

// Validate checks the record's field constraints.
func (p Product) Validate() error {
	if p.Code <= 0 {
		return &Error{Code: ErrCodeInvalidRecord, Message: "product code must be a positive integer"}
	}
	if p.Name == "" {
		return &Error{Code: ErrCodeInvalidRecord, Message: "product name must not be empty", ProductCode: p.Code}
	}
	if p.Price <= 0 {
		return &Error{Code: ErrCodeInvalidRecord, Message: "price must be positive", ProductCode: p.Code}
	}
	if p.Discount < 0 || p.Discount > 100 {
		return NewInvalidDiscountError(p.Discount)
	}
	if p.Stock < 0 {
		return &Error{Code: ErrCodeInvalidRecord, Message: "stock must not be negative", ProductCode: p.Code}
	}
	if p.Category == "" {
		return &Error{Code: ErrCodeInvalidRecord, Message: "category must not be empty", ProductCode: p.Code}
	}
	return nil
}
