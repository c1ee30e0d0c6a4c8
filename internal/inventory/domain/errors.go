package domain

import "errors"

// Business rule violations surfaced by the inventory services. Not-found
// conditions are not errors: lookups return nil results instead, so callers
// can tell a bad reference apart from a rule violation.
var (
	// ErrStockNegative rejects a movement that would drive stock below zero
	ErrStockNegative = errors.New("movement would drive stock below zero")

	// ErrSKUAlreadyExists rejects an explicit or changed SKU already taken
	// within the tenant namespace
	ErrSKUAlreadyExists = errors.New("sku already exists in tenant")

	// ErrSKUConfirmRequired gates SKU changes behind explicit confirmation
	ErrSKUConfirmRequired = errors.New("sku change requires confirmation")

	// ErrSKUGenerationFailed signals the allocator exhausted its probe budget
	ErrSKUGenerationFailed = errors.New("sku generation exhausted probe budget")
)
