package entity

import "errors"

var (
	ErrCompanyIDRequired   = errors.New("company_id is required")
	ErrProductIDRequired   = errors.New("product_id is required")
	ErrInvalidQuantity     = errors.New("quantity must be greater than 0")
	ErrInvalidPrice        = errors.New("unit_price must be greater than or equal to 0")
	ErrInvalidTotal        = errors.New("total must be greater than or equal to 0")
	ErrOrderMustHaveItems  = errors.New("order must have at least one item")
	ErrOrderNumberRequired = errors.New("order_number is required")

	// HITO E - PDV Offline
	ErrOrderNotPending = errors.New("order is not in the pending queue")
	ErrStoreClosed     = errors.New("local store is closed")
)
