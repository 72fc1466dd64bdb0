package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrUnauthorized capability check failed
	ErrUnauthorized ErrorCode = 100001
	// ErrInvalidInput zero amount or null reference
	ErrInvalidInput ErrorCode = 100002

	// ErrReserveNotFound no reserve for symbol, or reserve disabled
	ErrReserveNotFound ErrorCode = 100100
	// ErrReserveExists reserve symbol already registered
	ErrReserveExists ErrorCode = 100101
	// ErrInvalidToken null token reference
	ErrInvalidToken ErrorCode = 100102
	// ErrRatioOutOfRange collateral ratio outside [1000, 30000] bps
	ErrRatioOutOfRange ErrorCode = 100103

	// ErrInsufficientBalance lender balance too low
	ErrInsufficientBalance ErrorCode = 100200
	// ErrInsufficientLiquidity reserve liquidity too low
	ErrInsufficientLiquidity ErrorCode = 100201
	// ErrInsufficientCollateral collateral value below required ratio
	ErrInsufficientCollateral ErrorCode = 100202
	// ErrNoCollateral no free collateral to lock
	ErrNoCollateral ErrorCode = 100203
	// ErrNoActiveLoan nothing to repay or liquidate
	ErrNoActiveLoan ErrorCode = 100204
	// ErrLoanExists borrower already has an active loan
	ErrLoanExists ErrorCode = 100205
	// ErrLoanHealthy loan not liquidatable at current price
	ErrLoanHealthy ErrorCode = 100206

	// ErrPriceUnavailable no price feed configured
	ErrPriceUnavailable ErrorCode = 100300
	// ErrStalePrice feed answer not usable
	ErrStalePrice ErrorCode = 100301
	// ErrPriceSlippage price deviates too far from the expected price
	ErrPriceSlippage ErrorCode = 100302

	// ErrTransferFailed external asset movement failed
	ErrTransferFailed ErrorCode = 100400
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}

// Msg human readable message, used by the rest layer.
func (e ErrorCode) Msg() string {
	switch e {
	case ErrUnauthorized:
		return "unauthorized"
	case ErrInvalidInput:
		return "invalid input"
	case ErrReserveNotFound:
		return "reserve not found"
	case ErrReserveExists:
		return "reserve already exists"
	case ErrInvalidToken:
		return "invalid token reference"
	case ErrRatioOutOfRange:
		return "ratio out of range"
	case ErrInsufficientBalance:
		return "insufficient balance"
	case ErrInsufficientLiquidity:
		return "insufficient liquidity"
	case ErrInsufficientCollateral:
		return "insufficient collateral"
	case ErrNoCollateral:
		return "no collateral"
	case ErrNoActiveLoan:
		return "no active loan"
	case ErrLoanExists:
		return "loan already active"
	case ErrLoanHealthy:
		return "loan healthy"
	case ErrPriceUnavailable:
		return "price unavailable"
	case ErrStalePrice:
		return "stale price"
	case ErrPriceSlippage:
		return "price slippage exceeded"
	case ErrTransferFailed:
		return "transfer failed"
	default:
		return "unknown"
	}
}
