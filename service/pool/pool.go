// Package pool implements the pool facade. Every public operation runs
// under one mutex per service instance, reproducing the strict global
// order of the reference execution model: validate preconditions, mutate
// all state inside a single transaction, and issue outbound transfers only
// after the bookkeeping is final. Inbound pulls happen before any state is
// written, so a failed operation never leaves partial mutations behind.
package pool

import (
	"context"
	"sync"

	"lendpool/core"

	"github.com/fox-one/pkg/property"
	uuidutil "github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
)

const (
	collateralRatioKey = "collateral_ratio_bps"
	maxSlippageKey     = "max_slippage_bps"

	// DefaultCollateralRatioBps 150%
	DefaultCollateralRatioBps int64 = 15000
	// DefaultMaxSlippageBps 1%
	DefaultMaxSlippageBps int64 = 100
)

// Config pool config
type Config struct {
	// PoolAccountID the ledger account holding reserve liquidity and
	// locked collateral.
	PoolAccountID string
	// CollateralAssetID the single collateral asset of the pool.
	CollateralAssetID string
}

type service struct {
	mux sync.Mutex

	db       core.Transactor
	system   *core.System
	property property.Store

	reserves core.IReserveStore
	loans    core.ILoanStore
	ledger   core.ILedgerStore
	events   core.IEventStore

	oracle core.IPriceOracleService
	tokens core.TokenLedger

	cfg Config
}

// New new pool service
func New(
	db core.Transactor,
	system *core.System,
	propertyStore property.Store,
	reserveStore core.IReserveStore,
	loanStore core.ILoanStore,
	ledgerStore core.ILedgerStore,
	eventStore core.IEventStore,
	oracleService core.IPriceOracleService,
	tokenLedger core.TokenLedger,
	cfg Config,
) core.IPoolService {
	return &service{
		db:       db,
		system:   system,
		property: propertyStore,
		reserves: reserveStore,
		loans:    loanStore,
		ledger:   ledgerStore,
		events:   eventStore,
		oracle:   oracleService,
		tokens:   tokenLedger,
		cfg:      cfg,
	}
}

func (s *service) CollateralRatio(ctx context.Context) (int64, error) {
	v, err := s.property.Get(ctx, collateralRatioKey)
	if err != nil {
		return 0, err
	}

	if bps := v.Int64(); bps > 0 {
		return bps, nil
	}

	return DefaultCollateralRatioBps, nil
}

func (s *service) MaxSlippage(ctx context.Context) (int64, error) {
	v, err := s.property.Get(ctx, maxSlippageKey)
	if err != nil {
		return 0, err
	}

	if bps := v.Int64(); bps > 0 {
		return bps, nil
	}

	return DefaultMaxSlippageBps, nil
}

// requireReserve an enabled reserve or ErrReserveNotFound.
func (s *service) requireReserve(ctx context.Context, symbol string) (*core.Reserve, error) {
	reserve, ok, err := s.reserves.Find(ctx, symbol)
	if err != nil {
		return nil, err
	}

	if !ok || !reserve.IsEnabled() {
		return nil, core.ErrReserveNotFound
	}

	return reserve, nil
}

func (s *service) newEvent(action core.EventAction, symbol, userID string, amount decimal.Decimal) *core.Event {
	return &core.Event{
		TraceID: uuidutil.New(),
		Action:  action,
		Symbol:  symbol,
		UserID:  userID,
		Amount:  amount,
	}
}

// transferOut pushes tokens out of the pool as the final step of a
// transaction. A false return or an error aborts the transaction, rolling
// back the bookkeeping written before it.
func (s *service) transferOut(ctx context.Context, assetID, to string, amount decimal.Decimal) error {
	ok, err := s.tokens.Transfer(ctx, assetID, s.cfg.PoolAccountID, to, amount)
	if err != nil || !ok {
		return core.ErrTransferFailed
	}

	return nil
}

// pull draws tokens from a user into the pool before any state is written.
func (s *service) pull(ctx context.Context, assetID, from string, amount decimal.Decimal) error {
	ok, err := s.tokens.TransferFrom(ctx, assetID, s.cfg.PoolAccountID, from, s.cfg.PoolAccountID, amount)
	if err != nil || !ok {
		return core.ErrTransferFailed
	}

	return nil
}
