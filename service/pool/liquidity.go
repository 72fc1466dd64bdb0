package pool

import (
	"context"

	"lendpool/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

func (s *service) Deposit(ctx context.Context, lender, symbol string, amount decimal.Decimal) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	log := logger.FromContext(ctx).WithField("event", "deposit")

	if lender == "" || !amount.IsPositive() {
		return core.ErrInvalidInput
	}

	reserve, err := s.requireReserve(ctx, symbol)
	if err != nil {
		return err
	}

	position, hasPosition, err := s.ledger.FindPosition(ctx, symbol, lender)
	if err != nil {
		return err
	}

	if err := s.pull(ctx, reserve.AssetID, lender, amount); err != nil {
		log.WithError(err).Infoln("pull deposit failed")
		return err
	}

	return s.db.Tx(func(tx *db.DB) error {
		if !hasPosition {
			position = &core.LenderPosition{
				Symbol:  symbol,
				UserID:  lender,
				Balance: amount,
			}

			if err := s.ledger.CreatePosition(ctx, tx, position); err != nil {
				return err
			}
		} else {
			position.Balance = position.Balance.Add(amount)
			if err := s.ledger.UpdatePosition(ctx, tx, position); err != nil {
				return err
			}
		}

		reserve.TotalLiquidity = reserve.TotalLiquidity.Add(amount)
		if err := s.reserves.Update(ctx, tx, reserve); err != nil {
			return err
		}

		return s.events.Create(ctx, tx, s.newEvent(core.EventDeposit, symbol, lender, amount))
	})
}

func (s *service) Withdraw(ctx context.Context, lender, symbol string, amount decimal.Decimal) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	log := logger.FromContext(ctx).WithField("event", "withdraw")

	if lender == "" || !amount.IsPositive() {
		return core.ErrInvalidInput
	}

	reserve, err := s.requireReserve(ctx, symbol)
	if err != nil {
		return err
	}

	position, ok, err := s.ledger.FindPosition(ctx, symbol, lender)
	if err != nil {
		return err
	}

	if !ok || position.Balance.LessThan(amount) {
		return core.ErrInsufficientBalance
	}

	// tokens may be lent out; the reserve can owe more than it holds
	if reserve.TotalLiquidity.LessThan(amount) {
		return core.ErrInsufficientLiquidity
	}

	err = s.db.Tx(func(tx *db.DB) error {
		position.Balance = position.Balance.Sub(amount)
		if err := s.ledger.UpdatePosition(ctx, tx, position); err != nil {
			return err
		}

		reserve.TotalLiquidity = reserve.TotalLiquidity.Sub(amount)
		if err := s.reserves.Update(ctx, tx, reserve); err != nil {
			return err
		}

		if err := s.events.Create(ctx, tx, s.newEvent(core.EventWithdraw, symbol, lender, amount)); err != nil {
			return err
		}

		return s.transferOut(ctx, reserve.AssetID, lender, amount)
	})
	if err != nil {
		log.WithError(err).Infoln("withdraw aborted")
	}

	return err
}
