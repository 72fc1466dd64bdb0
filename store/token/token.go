package token

import (
	"context"

	"lendpool/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type tokenStore struct {
	db *db.DB
}

// New new token ledger store
func New(db *db.DB) core.ITokenStore {
	return &tokenStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		if err := db.Update().Model(core.TokenBalance{}).AutoMigrate(core.TokenBalance{}).Error; err != nil {
			return err
		}

		if err := db.Update().Model(core.TokenAllowance{}).AutoMigrate(core.TokenAllowance{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *tokenStore) FindBalance(ctx context.Context, assetID, userID string) (*core.TokenBalance, bool, error) {
	var balance core.TokenBalance
	if err := s.db.View().Where("asset_id=? and user_id=?", assetID, userID).First(&balance).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, false, nil
		}

		return nil, false, err
	}

	return &balance, true, nil
}

func (s *tokenStore) CreateBalance(ctx context.Context, tx *db.DB, balance *core.TokenBalance) error {
	return tx.Update().Create(balance).Error
}

func (s *tokenStore) UpdateBalance(ctx context.Context, tx *db.DB, balance *core.TokenBalance) error {
	version := balance.Version
	balance.Version++

	updates := map[string]interface{}{
		"amount":  balance.Amount,
		"version": balance.Version,
	}

	return tx.Update().Model(core.TokenBalance{}).
		Where("asset_id=? and user_id=? and version=?", balance.AssetID, balance.UserID, version).
		Updates(updates).Error
}

func (s *tokenStore) FindAllowance(ctx context.Context, assetID, ownerID, spenderID string) (*core.TokenAllowance, bool, error) {
	var allowance core.TokenAllowance
	if err := s.db.View().
		Where("asset_id=? and owner_id=? and spender_id=?", assetID, ownerID, spenderID).
		First(&allowance).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, false, nil
		}

		return nil, false, err
	}

	return &allowance, true, nil
}

func (s *tokenStore) CreateAllowance(ctx context.Context, tx *db.DB, allowance *core.TokenAllowance) error {
	return tx.Update().Create(allowance).Error
}

func (s *tokenStore) UpdateAllowance(ctx context.Context, tx *db.DB, allowance *core.TokenAllowance) error {
	version := allowance.Version
	allowance.Version++

	updates := map[string]interface{}{
		"amount":  allowance.Amount,
		"version": allowance.Version,
	}

	return tx.Update().Model(core.TokenAllowance{}).
		Where("asset_id=? and owner_id=? and spender_id=? and version=?",
			allowance.AssetID, allowance.OwnerID, allowance.SpenderID, version).
		Updates(updates).Error
}
