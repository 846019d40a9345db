package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	// bid validation errors, checked in order by the bid usecase
	ErrItemNotOnSale = errors.New("item is closed from bidding")

	// ErrItemHasBids rejects deleting an item somebody already bid on
	ErrItemHasBids = errors.New("item already has bids")

	// ErrItemAlreadyClosed signals a close attempt on an item some other
	// worker already closed
	ErrItemAlreadyClosed = errors.New("item already closed")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnsupportedSchema  = errors.New("Unsupported schema")
	ErrNotImplemented     = errors.New("not implemented")
)

// BidTooLowError rejects a bid under the price floor, carrying the
// minimum acceptable amount so the client knows what to offer next
type BidTooLowError struct {
	Minimum int64
}

func (e *BidTooLowError) Error() string {
	return fmt.Sprintf("bid must be at least %d", e.Minimum)
}
