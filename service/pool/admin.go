package pool

import (
	"context"

	"lendpool/core"
	"lendpool/internal/risk"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

func (s *service) AddReserve(ctx context.Context, caller, symbol, assetID, feedID string, rateBps int64) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if !s.system.IsAdmin(caller) {
		return core.ErrUnauthorized
	}

	if assetID == "" {
		return core.ErrInvalidToken
	}

	if symbol == "" || rateBps < 0 {
		return core.ErrInvalidInput
	}

	if _, ok, err := s.reserves.Find(ctx, symbol); err != nil {
		return err
	} else if ok {
		return core.ErrReserveExists
	}

	// the asset reference doubles as a reverse lookup key
	if _, ok, err := s.reserves.FindByAsset(ctx, assetID); err != nil {
		return err
	} else if ok {
		return core.ErrReserveExists
	}

	reserve := &core.Reserve{
		Symbol:          symbol,
		AssetID:         assetID,
		FeedID:          feedID,
		InterestRateBps: rateBps,
		TotalLiquidity:  decimal.Zero,
		Status:          core.ReserveStatusEnabled,
	}

	return s.db.Tx(func(tx *db.DB) error {
		if err := s.reserves.Create(ctx, tx, reserve); err != nil {
			return err
		}

		return s.events.Create(ctx, tx, s.newEvent(core.EventReserveAdded, symbol, caller, decimal.Zero))
	})
}

func (s *service) UpdateReserve(ctx context.Context, caller, symbol, feedID string, rateBps int64) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if !s.system.IsAdmin(caller) {
		return core.ErrUnauthorized
	}

	if rateBps < 0 {
		return core.ErrInvalidInput
	}

	reserve, err := s.requireReserve(ctx, symbol)
	if err != nil {
		return err
	}

	// already-issued loans snapshot nothing; a rate change applies to
	// their repayment
	reserve.FeedID = feedID
	reserve.InterestRateBps = rateBps

	return s.db.Tx(func(tx *db.DB) error {
		if err := s.reserves.Update(ctx, tx, reserve); err != nil {
			return err
		}

		return s.events.Create(ctx, tx, s.newEvent(core.EventReserveUpdated, symbol, caller, decimal.Zero))
	})
}

func (s *service) SetReserveStatus(ctx context.Context, caller, symbol string, status core.ReserveStatus) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if !s.system.IsAdmin(caller) {
		return core.ErrUnauthorized
	}

	reserve, ok, err := s.reserves.Find(ctx, symbol)
	if err != nil {
		return err
	}

	if !ok {
		return core.ErrReserveNotFound
	}

	reserve.Status = status

	return s.db.Tx(func(tx *db.DB) error {
		if err := s.reserves.Update(ctx, tx, reserve); err != nil {
			return err
		}

		return s.events.Create(ctx, tx, s.newEvent(core.EventReserveUpdated, symbol, caller, decimal.Zero))
	})
}

func (s *service) SetCollateralRatio(ctx context.Context, caller string, bps int64) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if !s.system.IsAdmin(caller) {
		return core.ErrUnauthorized
	}

	if !risk.ValidCollateralRatio(bps) {
		return core.ErrRatioOutOfRange
	}

	if err := s.property.Save(ctx, collateralRatioKey, bps); err != nil {
		return err
	}

	return s.db.Tx(func(tx *db.DB) error {
		return s.events.Create(ctx, tx, s.newEvent(core.EventRatioUpdated, "", caller, decimal.NewFromInt(bps)))
	})
}

func (s *service) SetMaxSlippage(ctx context.Context, caller string, bps int64) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	if !s.system.IsAdmin(caller) {
		return core.ErrUnauthorized
	}

	if bps <= 0 || bps > 10000 {
		return core.ErrRatioOutOfRange
	}

	return s.property.Save(ctx, maxSlippageKey, bps)
}
