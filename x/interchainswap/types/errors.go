package types

import (
	"cosmossdk.io/errors"
)

// Interchain Swap module sentinel errors.
var (
	ErrValidation        = errors.Register(ModuleName, 2, "validation error")
	ErrPoolNotFound      = errors.Register(ModuleName, 3, "pool not found")
	ErrPoolAlreadyExists = errors.Register(ModuleName, 4, "pool already exists")
	ErrInvalidState      = errors.Register(ModuleName, 5, "pool is not in the required state")
	ErrInsufficientFunds = errors.Register(ModuleName, 6, "insufficient balance")
	ErrSignatureInvalid  = errors.Register(ModuleName, 7, "remote deposit signature invalid")
	ErrSequenceMismatch  = errors.Register(ModuleName, 8, "remote deposit sequence mismatch")
	ErrMathDomain        = errors.Register(ModuleName, 9, "math domain error")
	ErrSlippageExceeded  = errors.Register(ModuleName, 10, "slippage exceeded")
	ErrTimeout           = errors.Register(ModuleName, 11, "packet timed out")
	ErrInvalidTokenDenom = errors.Register(ModuleName, 12, "invalid token denomination")
	ErrInvalidAmount     = errors.Register(ModuleName, 13, "invalid amount")
	ErrInvalidPacket     = errors.Register(ModuleName, 14, "invalid packet")
	ErrEmptyPool         = errors.Register(ModuleName, 15, "empty pool side")
	ErrPendingOpNotFound = errors.Register(ModuleName, 16, "no pending operation for packet")
	ErrDustPool          = errors.Register(ModuleName, 17, "seeding deposit below minimum initial liquidity")
)
