package pool

import (
	"context"

	"lendpool/core"
	"lendpool/internal/risk"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func (s *service) Liquidate(ctx context.Context, liquidator, borrower string) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"event":    "liquidate",
		"borrower": borrower,
	})

	if !s.system.IsLiquidator(liquidator) {
		return core.ErrUnauthorized
	}

	loan, ok, err := s.loans.Find(ctx, borrower)
	if err != nil {
		return err
	}

	if !ok || !loan.Active {
		return core.ErrNoActiveLoan
	}

	// a disabled reserve does not shield its loans from liquidation
	reserve, ok, err := s.reserves.Find(ctx, loan.Symbol)
	if err != nil {
		return err
	}

	if !ok {
		return core.ErrReserveNotFound
	}

	price, err := s.oracle.GetPrice(ctx, reserve.FeedID)
	if err != nil {
		log.WithError(err).Infoln("price fetch failed")
		return err
	}

	ratio, err := s.CollateralRatio(ctx)
	if err != nil {
		return err
	}

	value := risk.CollateralValue(loan.LockedCollateral, price)
	if !risk.Undercollateralized(value, loan.Principal, ratio) {
		return core.ErrLoanHealthy
	}

	seized := loan.LockedCollateral

	return s.db.Tx(func(tx *db.DB) error {
		// clear the loan before the seized collateral leaves the pool
		loan.Principal = decimal.Zero
		loan.LockedCollateral = decimal.Zero
		loan.Active = false
		if err := s.loans.Update(ctx, tx, loan); err != nil {
			return err
		}

		event := s.newEvent(core.EventLiquidated, loan.Symbol, borrower, seized)
		if err := event.SetData(map[string]interface{}{
			"liquidator":       liquidator,
			"collateral_value": value,
			"price":            price,
		}); err != nil {
			return err
		}

		if err := s.events.Create(ctx, tx, event); err != nil {
			return err
		}

		// the entire seized collateral goes to the liquidator
		return s.transferOut(ctx, s.cfg.CollateralAssetID, liquidator, seized)
	})
}
