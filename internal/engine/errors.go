package engine

import "errors"

// Validation failures detected during a calculation. All abort the entire
// request; no partial result is ever returned. The factor-lookup failure mode
// is factors.ErrUnknownFactor, propagated unwrapped from the catalog.
var (
	// ErrUnitMismatch indicates an input's unit disagrees with the resolved
	// factor's declared unit.
	ErrUnitMismatch = errors.New("unit mismatch")

	// ErrInvalidQuantity indicates a negative input quantity.
	ErrInvalidQuantity = errors.New("quantity must be >= 0")

	// ErrNoActivityData indicates an empty or absent input list.
	ErrNoActivityData = errors.New("no activity inputs provided")
)
