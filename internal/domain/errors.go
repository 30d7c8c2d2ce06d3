package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailAlreadyInUse  = errors.New("email already in use")
	ErrEmailNotFound      = errors.New("email not found")
	ErrInvalidQuantity    = errors.New("quantity must be a positive integer")
	ErrInvalidProduct     = errors.New("product id is empty")
	ErrProductNotFound    = errors.New("product not found")
	ErrForbidden          = errors.New("access denied")
	ErrNotAuthenticated   = errors.New("sign in required")
	ErrEmptyCart          = errors.New("cart is empty")
)
