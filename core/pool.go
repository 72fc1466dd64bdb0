package core

import (
	"context"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Transactor runs a function inside one database transaction. *db.DB
// satisfies it; tests substitute an in-memory fake.
type Transactor interface {
	Tx(fn func(tx *db.DB) error) error
}

// IPoolService the pool facade. Every method executes under one
// mutual-exclusion scope per pool instance: validate, mutate state in a
// single transaction, and only then perform outbound transfers.
type IPoolService interface {
	// lender operations
	Deposit(ctx context.Context, lender, symbol string, amount decimal.Decimal) error
	Withdraw(ctx context.Context, lender, symbol string, amount decimal.Decimal) error

	// borrower operations
	DepositCollateral(ctx context.Context, userID string, amount decimal.Decimal) error
	WithdrawCollateral(ctx context.Context, userID string, amount decimal.Decimal) error
	Borrow(ctx context.Context, borrower, symbol string, amount, expectedPrice decimal.Decimal) error
	Repay(ctx context.Context, borrower string) error

	// liquidator operation
	Liquidate(ctx context.Context, liquidator, borrower string) error

	// administrator operations
	AddReserve(ctx context.Context, caller, symbol, assetID, feedID string, rateBps int64) error
	UpdateReserve(ctx context.Context, caller, symbol, feedID string, rateBps int64) error
	SetReserveStatus(ctx context.Context, caller, symbol string, status ReserveStatus) error
	SetCollateralRatio(ctx context.Context, caller string, bps int64) error
	SetMaxSlippage(ctx context.Context, caller string, bps int64) error

	CollateralRatio(ctx context.Context) (int64, error)
	MaxSlippage(ctx context.Context) (int64, error)
}
