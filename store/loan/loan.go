package loan

import (
	"context"

	"lendpool/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type loanStore struct {
	db *db.DB
}

// New new loan store
func New(db *db.DB) core.ILoanStore {
	return &loanStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Loan{})
		if err := tx.AutoMigrate(core.Loan{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *loanStore) Create(ctx context.Context, tx *db.DB, loan *core.Loan) error {
	return tx.Update().Create(loan).Error
}

func (s *loanStore) Find(ctx context.Context, userID string) (*core.Loan, bool, error) {
	var loan core.Loan
	if err := s.db.View().Where("user_id=?", userID).First(&loan).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, false, nil
		}

		return nil, false, err
	}

	return &loan, true, nil
}

func (s *loanStore) ListActive(ctx context.Context) ([]*core.Loan, error) {
	var loans []*core.Loan
	if err := s.db.View().Where("active=?", true).Find(&loans).Error; err != nil {
		return nil, err
	}

	return loans, nil
}

func (s *loanStore) Update(ctx context.Context, tx *db.DB, loan *core.Loan) error {
	version := loan.Version
	loan.Version++

	// column map so clearing a loan writes the zero values through
	updates := map[string]interface{}{
		"symbol":            loan.Symbol,
		"principal":         loan.Principal,
		"locked_collateral": loan.LockedCollateral,
		"active":            loan.Active,
		"version":           loan.Version,
	}

	return tx.Update().Model(core.Loan{}).
		Where("user_id=? and version=?", loan.UserID, version).
		Updates(updates).Error
}
