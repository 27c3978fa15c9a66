package domain

import "errors"

var (
	// ErrTokenNotFound is returned when a token id exceeds the on-chain counter
	// or an account is absent from the mirror
	ErrTokenNotFound = errors.New("token not found")

	// ErrOGNotFound is returned when an OG namespace is absent from the mirror
	ErrOGNotFound = errors.New("og not found")

	// ErrInvalidAddress is returned for malformed contract or wallet addresses
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidTokenID is returned when a token id is not a non-negative integer
	ErrInvalidTokenID = errors.New("invalid token id")

	// ErrUnauthorized is returned when a caller fails the allow-list or cron secret check
	ErrUnauthorized = errors.New("unauthorized")
)
