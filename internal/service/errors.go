package service

import "errors"

var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserCreateFailed   = errors.New("user could not be created")
	ErrProductExists      = errors.New("product already exists")
	ErrProductNotFound    = errors.New("product not found")
	ErrInvalidPrice       = errors.New("price must be zero or greater")
	ErrInvalidQuantity    = errors.New("quantity must be at least 1")
	ErrPriceComputation   = errors.New("total price cannot be computed")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
