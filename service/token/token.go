package token

import (
	"context"

	"lendpool/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// ledgerService is the reference balance-ledger collaborator: a plain
// transfer/transferFrom/approve ledger over two tables. Business failures
// (insufficient balance or allowance) return false without an error, the
// same way an erc-20 style token returns false.
type ledgerService struct {
	db     core.Transactor
	tokens core.ITokenStore
}

// New new token ledger service
func New(db core.Transactor, tokens core.ITokenStore) core.TokenLedger {
	return &ledgerService{db: db, tokens: tokens}
}

func (s *ledgerService) Transfer(ctx context.Context, assetID, from, to string, amount decimal.Decimal) (bool, error) {
	if !amount.IsPositive() {
		return false, nil
	}

	moved := false
	err := s.db.Tx(func(tx *db.DB) error {
		ok, err := s.move(ctx, tx, assetID, from, to, amount)
		if err != nil {
			return err
		}

		moved = ok
		return nil
	})

	return moved, err
}

func (s *ledgerService) TransferFrom(ctx context.Context, assetID, spender, from, to string, amount decimal.Decimal) (bool, error) {
	if !amount.IsPositive() {
		return false, nil
	}

	moved := false
	err := s.db.Tx(func(tx *db.DB) error {
		allowance, ok, err := s.tokens.FindAllowance(ctx, assetID, from, spender)
		if err != nil {
			return err
		}

		if !ok || allowance.Amount.LessThan(amount) {
			return nil
		}

		ok, err = s.move(ctx, tx, assetID, from, to, amount)
		if err != nil || !ok {
			return err
		}

		allowance.Amount = allowance.Amount.Sub(amount)
		if err := s.tokens.UpdateAllowance(ctx, tx, allowance); err != nil {
			return err
		}

		moved = true
		return nil
	})

	return moved, err
}

func (s *ledgerService) Approve(ctx context.Context, assetID, owner, spender string, amount decimal.Decimal) (bool, error) {
	if amount.IsNegative() {
		return false, nil
	}

	err := s.db.Tx(func(tx *db.DB) error {
		allowance, ok, err := s.tokens.FindAllowance(ctx, assetID, owner, spender)
		if err != nil {
			return err
		}

		if !ok {
			return s.tokens.CreateAllowance(ctx, tx, &core.TokenAllowance{
				AssetID:   assetID,
				OwnerID:   owner,
				SpenderID: spender,
				Amount:    amount,
			})
		}

		allowance.Amount = amount
		return s.tokens.UpdateAllowance(ctx, tx, allowance)
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

func (s *ledgerService) move(ctx context.Context, tx *db.DB, assetID, from, to string, amount decimal.Decimal) (bool, error) {
	source, ok, err := s.tokens.FindBalance(ctx, assetID, from)
	if err != nil {
		return false, err
	}

	if !ok || source.Amount.LessThan(amount) {
		return false, nil
	}

	source.Amount = source.Amount.Sub(amount)
	if err := s.tokens.UpdateBalance(ctx, tx, source); err != nil {
		return false, err
	}

	target, ok, err := s.tokens.FindBalance(ctx, assetID, to)
	if err != nil {
		return false, err
	}

	if !ok {
		return true, s.tokens.CreateBalance(ctx, tx, &core.TokenBalance{
			AssetID: assetID,
			UserID:  to,
			Amount:  amount,
		})
	}

	target.Amount = target.Amount.Add(amount)
	if err := s.tokens.UpdateBalance(ctx, tx, target); err != nil {
		return false, err
	}

	return true, nil
}
