package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// CollateralAccount per-address free collateral balance, in the collateral
// asset's native precision. Never deleted, only zeroed.
type CollateralAccount struct {
	ID             uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID         string          `sql:"size:36;unique_index:collateral_user_idx" json:"user_id"`
	FreeCollateral decimal.Decimal `sql:"type:decimal(64,0)" json:"free_collateral"`
	Version        int64           `sql:"default:0" json:"version"`
	CreatedAt      time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// LenderPosition per-(reserve, lender) deposit balance. Created on first
// deposit, never deleted.
type LenderPosition struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Symbol    string          `sql:"size:20;unique_index:position_idx" json:"symbol"`
	UserID    string          `sql:"size:36;unique_index:position_idx" json:"user_id"`
	Balance   decimal.Decimal `sql:"type:decimal(64,0)" json:"balance"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ILedgerStore collateral + lender balance store interface
type ILedgerStore interface {
	FindCollateral(ctx context.Context, userID string) (*CollateralAccount, bool, error)
	CreateCollateral(ctx context.Context, tx *db.DB, account *CollateralAccount) error
	UpdateCollateral(ctx context.Context, tx *db.DB, account *CollateralAccount) error

	FindPosition(ctx context.Context, symbol, userID string) (*LenderPosition, bool, error)
	CreatePosition(ctx context.Context, tx *db.DB, position *LenderPosition) error
	UpdatePosition(ctx context.Context, tx *db.DB, position *LenderPosition) error
	PositionsByUser(ctx context.Context, userID string) ([]*LenderPosition, error)
}
