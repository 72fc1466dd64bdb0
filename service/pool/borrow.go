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

func (s *service) Borrow(ctx context.Context, borrower, symbol string, amount, expectedPrice decimal.Decimal) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"event":  "borrow",
		"symbol": symbol,
		"amount": amount,
	})

	if borrower == "" || !amount.IsPositive() {
		return core.ErrInvalidInput
	}

	reserve, err := s.requireReserve(ctx, symbol)
	if err != nil {
		return err
	}

	loan, hasLoan, err := s.loans.Find(ctx, borrower)
	if err != nil {
		return err
	}

	if hasLoan && loan.Active {
		return core.ErrLoanExists
	}

	account, ok, err := s.ledger.FindCollateral(ctx, borrower)
	if err != nil {
		return err
	}

	if !ok || !account.FreeCollateral.IsPositive() {
		return core.ErrNoCollateral
	}

	// the price is fetched fresh on every borrow, never carried over
	price, err := s.oracle.GetPrice(ctx, reserve.FeedID)
	if err != nil {
		log.WithError(err).Infoln("price fetch failed")
		return err
	}

	if expectedPrice.IsPositive() {
		maxBps, err := s.MaxSlippage(ctx)
		if err != nil {
			return err
		}

		if risk.SlippageExceeded(price, expectedPrice, maxBps) {
			return core.ErrPriceSlippage
		}
	}

	ratio, err := s.CollateralRatio(ctx)
	if err != nil {
		return err
	}

	// admission is checked before anything is locked, so a rejected
	// borrow leaves the collateral free
	locked := account.FreeCollateral
	value := risk.CollateralValue(locked, price)
	if !risk.BorrowAllowed(value, amount, ratio) {
		return core.ErrInsufficientCollateral
	}

	return s.db.Tx(func(tx *db.DB) error {
		account.FreeCollateral = decimal.Zero
		if err := s.ledger.UpdateCollateral(ctx, tx, account); err != nil {
			return err
		}

		if hasLoan {
			loan.Symbol = symbol
			loan.Principal = amount
			loan.LockedCollateral = locked
			loan.Active = true
			if err := s.loans.Update(ctx, tx, loan); err != nil {
				return err
			}
		} else {
			loan = &core.Loan{
				UserID:           borrower,
				Symbol:           symbol,
				Principal:        amount,
				LockedCollateral: locked,
				Active:           true,
			}

			if err := s.loans.Create(ctx, tx, loan); err != nil {
				return err
			}
		}

		if err := s.events.Create(ctx, tx, s.newEvent(core.EventBorrowed, symbol, borrower, amount)); err != nil {
			return err
		}

		return s.transferOut(ctx, reserve.AssetID, borrower, amount)
	})
}

func (s *service) Repay(ctx context.Context, borrower string) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	log := logger.FromContext(ctx).WithField("event", "repay")

	if borrower == "" {
		return core.ErrInvalidInput
	}

	loan, ok, err := s.loans.Find(ctx, borrower)
	if err != nil {
		return err
	}

	if !ok || !loan.Active {
		return core.ErrNoActiveLoan
	}

	reserve, err := s.requireReserve(ctx, loan.Symbol)
	if err != nil {
		return err
	}

	// interest is computed from the reserve's current rate, not a rate
	// snapshotted at borrow time
	interest := risk.Interest(loan.Principal, reserve.InterestRateBps)
	totalOwed := loan.Principal.Add(interest)
	locked := loan.LockedCollateral

	if err := s.pull(ctx, reserve.AssetID, borrower, totalOwed); err != nil {
		log.WithError(err).Infoln("pull repayment failed")
		return err
	}

	return s.db.Tx(func(tx *db.DB) error {
		// clear the loan before the collateral is released
		loan.Principal = decimal.Zero
		loan.LockedCollateral = decimal.Zero
		loan.Active = false
		if err := s.loans.Update(ctx, tx, loan); err != nil {
			return err
		}

		// interest joins the shared liquidity alongside the principal
		reserve.TotalLiquidity = reserve.TotalLiquidity.Add(totalOwed)
		if err := s.reserves.Update(ctx, tx, reserve); err != nil {
			return err
		}

		account, ok, err := s.ledger.FindCollateral(ctx, borrower)
		if err != nil {
			return err
		}

		if !ok {
			account = &core.CollateralAccount{UserID: borrower, FreeCollateral: locked}
			if err := s.ledger.CreateCollateral(ctx, tx, account); err != nil {
				return err
			}
		} else {
			account.FreeCollateral = account.FreeCollateral.Add(locked)
			if err := s.ledger.UpdateCollateral(ctx, tx, account); err != nil {
				return err
			}
		}

		event := s.newEvent(core.EventRepaid, loan.Symbol, borrower, totalOwed)
		if err := event.SetData(map[string]decimal.Decimal{
			"interest":            interest,
			"released_collateral": locked,
		}); err != nil {
			return err
		}

		return s.events.Create(ctx, tx, event)
	})
}
