package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// ReserveStatus reserve status
type ReserveStatus int

const (
	// ReserveStatusEnabled reserve open for business
	ReserveStatusEnabled ReserveStatus = iota
	// ReserveStatusDisabled reserve closed by the administrator, row kept forever
	ReserveStatusDisabled
)

// Reserve a named pool of one fungible asset type available for lending.
//
// TotalLiquidity is kept in the token's native precision. It grows on
// deposit and repay and shrinks on withdraw only.
type Reserve struct {
	ID              uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Symbol          string          `sql:"size:20;unique_index:symbol_idx" json:"symbol"`
	AssetID         string          `sql:"size:36;unique_index:asset_idx" json:"asset_id"`
	FeedID          string          `sql:"size:36" json:"feed_id"`
	InterestRateBps int64           `sql:"default:0" json:"interest_rate_bps"`
	TotalLiquidity  decimal.Decimal `sql:"type:decimal(64,0)" json:"total_liquidity"`
	Status          ReserveStatus   `sql:"default:0" json:"status"`
	Version         int64           `sql:"default:0" json:"version"`
	CreatedAt       time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IsEnabled is enabled
func (r *Reserve) IsEnabled() bool {
	return r.Status == ReserveStatusEnabled
}

// IReserveStore reserve store interface
type IReserveStore interface {
	Create(ctx context.Context, tx *db.DB, reserve *Reserve) error
	Find(ctx context.Context, symbol string) (*Reserve, bool, error)
	FindByAsset(ctx context.Context, assetID string) (*Reserve, bool, error)
	All(ctx context.Context) ([]*Reserve, error)
	Update(ctx context.Context, tx *db.DB, reserve *Reserve) error
}
