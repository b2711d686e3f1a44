package escrow

import (
	"github.com/safeharbor/harbor/errors"
)

// escrow takes 1000-1010
var (
	ErrDuplicateOffer = errors.Register(1000, "escrow already exists")
	ErrOfferNotFound  = errors.Register(1001, "escrow not found")
	ErrSameAsset      = errors.Register(1002, "deposit and receive mints are the same")
)

// Failures shared with the rest of the application.
var (
	ErrInvalidAmount     = errors.ErrInvalidAmount
	ErrInsufficientFunds = errors.ErrInsufficientAmount
	ErrUnauthorized      = errors.ErrUnauthorized
)
