package ledger

import (
	"context"

	"lendpool/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type ledgerStore struct {
	db *db.DB
}

// New new ledger store
func New(db *db.DB) core.ILedgerStore {
	return &ledgerStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		if err := db.Update().Model(core.CollateralAccount{}).AutoMigrate(core.CollateralAccount{}).Error; err != nil {
			return err
		}

		if err := db.Update().Model(core.LenderPosition{}).AutoMigrate(core.LenderPosition{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *ledgerStore) FindCollateral(ctx context.Context, userID string) (*core.CollateralAccount, bool, error) {
	var account core.CollateralAccount
	if err := s.db.View().Where("user_id=?", userID).First(&account).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, false, nil
		}

		return nil, false, err
	}

	return &account, true, nil
}

func (s *ledgerStore) CreateCollateral(ctx context.Context, tx *db.DB, account *core.CollateralAccount) error {
	return tx.Update().Create(account).Error
}

func (s *ledgerStore) UpdateCollateral(ctx context.Context, tx *db.DB, account *core.CollateralAccount) error {
	version := account.Version
	account.Version++

	updates := map[string]interface{}{
		"free_collateral": account.FreeCollateral,
		"version":         account.Version,
	}

	return tx.Update().Model(core.CollateralAccount{}).
		Where("user_id=? and version=?", account.UserID, version).
		Updates(updates).Error
}

func (s *ledgerStore) FindPosition(ctx context.Context, symbol, userID string) (*core.LenderPosition, bool, error) {
	var position core.LenderPosition
	if err := s.db.View().Where("symbol=? and user_id=?", symbol, userID).First(&position).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, false, nil
		}

		return nil, false, err
	}

	return &position, true, nil
}

func (s *ledgerStore) CreatePosition(ctx context.Context, tx *db.DB, position *core.LenderPosition) error {
	return tx.Update().Create(position).Error
}

func (s *ledgerStore) UpdatePosition(ctx context.Context, tx *db.DB, position *core.LenderPosition) error {
	version := position.Version
	position.Version++

	updates := map[string]interface{}{
		"balance": position.Balance,
		"version": position.Version,
	}

	return tx.Update().Model(core.LenderPosition{}).
		Where("symbol=? and user_id=? and version=?", position.Symbol, position.UserID, version).
		Updates(updates).Error
}

func (s *ledgerStore) PositionsByUser(ctx context.Context, userID string) ([]*core.LenderPosition, error) {
	var positions []*core.LenderPosition
	if err := s.db.View().Where("user_id=?", userID).Find(&positions).Error; err != nil {
		return nil, err
	}

	return positions, nil
}
