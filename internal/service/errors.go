package service

import "errors"

// ErrInvalidRate indicates a non-positive buy or sell price.
var ErrInvalidRate = errors.New("buy and sell must be positive numbers")

// StoreError reports a failure or timeout talking to the rate store.
// Error returns the cause's text unchanged so callers can surface it as is.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return e.Err.Error()
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func newStoreError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
