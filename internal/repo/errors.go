package repo

import "errors"

// ErrProductNotFound is returned when a product is not found in the repository.
var ErrProductNotFound = errors.New("product not found")

// ErrBarcodeConflict is returned when a create or update would duplicate the
// barcode of another product. Uniqueness is store-wide: a deactivated
// product's barcode is not freed.
var ErrBarcodeConflict = errors.New("barcode already exists")

// ErrStockBelowZero is returned when a stock mutation would drive the
// quantity negative. The mutation is rolled back entirely.
var ErrStockBelowZero = errors.New("stock cannot go below zero")

// ErrNonPositiveReceive is returned when a receive is attempted with a
// delta that is zero or negative.
var ErrNonPositiveReceive = errors.New("receive requires delta_qty > 0")

// ErrUserNotFound is returned when a user is not found in the repository.
var ErrUserNotFound = errors.New("user not found")

// ErrUsernameTaken is returned when registering a username that already exists.
var ErrUsernameTaken = errors.New("username already exists")
