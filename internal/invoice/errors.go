package invoice

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLineItem is returned for negative quantities, rates or tax percentages,
	// unknown currencies and empty item lists.
	ErrInvalidLineItem = errors.New("invalid line item")
	// ErrInvalidDiscount is returned for negative discounts or percentages above 100.
	ErrInvalidDiscount = errors.New("invalid discount")
	// ErrNegativeTotal is returned when discount and adjustment push the grand total below zero.
	ErrNegativeTotal = errors.New("invoice grand total is negative")
	// ErrAlreadyFinalized is returned when finalizing an invoice that is no longer a draft.
	ErrAlreadyFinalized = errors.New("invoice already finalized")
	// ErrNotFound is returned when the invoice id is unknown.
	ErrNotFound = errors.New("invoice not found")
	// ErrInvalidStatus is returned when filtering by an unknown status.
	ErrInvalidStatus = errors.New("invalid invoice status")
)

// StoreError wraps a persistence failure with the operation that produced it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("invoice store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}
