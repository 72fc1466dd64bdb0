package pool

import (
	"context"

	"lendpool/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

func (s *service) DepositCollateral(ctx context.Context, userID string, amount decimal.Decimal) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	log := logger.FromContext(ctx).WithField("event", "collateral_deposit")

	if userID == "" || !amount.IsPositive() {
		return core.ErrInvalidInput
	}

	account, hasAccount, err := s.ledger.FindCollateral(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.pull(ctx, s.cfg.CollateralAssetID, userID, amount); err != nil {
		log.WithError(err).Infoln("pull collateral failed")
		return err
	}

	return s.db.Tx(func(tx *db.DB) error {
		if !hasAccount {
			account = &core.CollateralAccount{
				UserID:         userID,
				FreeCollateral: amount,
			}

			if err := s.ledger.CreateCollateral(ctx, tx, account); err != nil {
				return err
			}
		} else {
			account.FreeCollateral = account.FreeCollateral.Add(amount)
			if err := s.ledger.UpdateCollateral(ctx, tx, account); err != nil {
				return err
			}
		}

		return s.events.Create(ctx, tx, s.newEvent(core.EventCollateralDeposited, "", userID, amount))
	})
}

func (s *service) WithdrawCollateral(ctx context.Context, userID string, amount decimal.Decimal) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	log := logger.FromContext(ctx).WithField("event", "collateral_withdraw")

	if userID == "" || !amount.IsPositive() {
		return core.ErrInvalidInput
	}

	account, ok, err := s.ledger.FindCollateral(ctx, userID)
	if err != nil {
		return err
	}

	if !ok || account.FreeCollateral.IsZero() {
		return core.ErrNoCollateral
	}

	if account.FreeCollateral.LessThan(amount) {
		return core.ErrInsufficientBalance
	}

	err = s.db.Tx(func(tx *db.DB) error {
		account.FreeCollateral = account.FreeCollateral.Sub(amount)
		if err := s.ledger.UpdateCollateral(ctx, tx, account); err != nil {
			return err
		}

		if err := s.events.Create(ctx, tx, s.newEvent(core.EventCollateralWithdrawn, "", userID, amount)); err != nil {
			return err
		}

		return s.transferOut(ctx, s.cfg.CollateralAssetID, userID, amount)
	})
	if err != nil {
		log.WithError(err).Infoln("collateral withdraw aborted")
	}

	return err
}
