package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// TokenLedger fungible token collaborator with transfer / transferFrom /
// approve semantics. A false return and an error are both failures; callers
// surface either as ErrTransferFailed.
type TokenLedger interface {
	Transfer(ctx context.Context, assetID, from, to string, amount decimal.Decimal) (bool, error)
	TransferFrom(ctx context.Context, assetID, spender, from, to string, amount decimal.Decimal) (bool, error)
	Approve(ctx context.Context, assetID, owner, spender string, amount decimal.Decimal) (bool, error)
}

// TokenBalance balance row of the reference ledger implementation.
type TokenBalance struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID   string          `sql:"size:36;unique_index:balance_idx" json:"asset_id"`
	UserID    string          `sql:"size:36;unique_index:balance_idx" json:"user_id"`
	Amount    decimal.Decimal `sql:"type:decimal(64,0)" json:"amount"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TokenAllowance allowance row of the reference ledger implementation.
type TokenAllowance struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID   string          `sql:"size:36;unique_index:allowance_idx" json:"asset_id"`
	OwnerID   string          `sql:"size:36;unique_index:allowance_idx" json:"owner_id"`
	SpenderID string          `sql:"size:36;unique_index:allowance_idx" json:"spender_id"`
	Amount    decimal.Decimal `sql:"type:decimal(64,0)" json:"amount"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ITokenStore token ledger store interface
type ITokenStore interface {
	FindBalance(ctx context.Context, assetID, userID string) (*TokenBalance, bool, error)
	CreateBalance(ctx context.Context, tx *db.DB, balance *TokenBalance) error
	UpdateBalance(ctx context.Context, tx *db.DB, balance *TokenBalance) error

	FindAllowance(ctx context.Context, assetID, ownerID, spenderID string) (*TokenAllowance, bool, error)
	CreateAllowance(ctx context.Context, tx *db.DB, allowance *TokenAllowance) error
	UpdateAllowance(ctx context.Context, tx *db.DB, allowance *TokenAllowance) error
}
