package core

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// RoundData one feed round. Only Answer and the feed's decimals take part
// in valuation; the rest is kept for inspection.
type RoundData struct {
	RoundID         uint64          `json:"round_id"`
	Answer          decimal.Decimal `json:"answer"`
	StartedAt       time.Time       `json:"started_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	AnsweredInRound uint64          `json:"answered_in_round"`
}

// PriceFeed external price source collaborator.
type PriceFeed interface {
	Decimals(ctx context.Context) (int32, error)
	LatestRoundData(ctx context.Context) (*RoundData, error)
}

// IPriceOracleService normalizes feed answers to fixed-point 18. The price
// is a point-in-time value and must be refetched on every
// valuation-sensitive operation, never cached across calls.
type IPriceOracleService interface {
	GetPrice(ctx context.Context, feedID string) (decimal.Decimal, error)
}

// Price recorded oracle round, history only. Valuation never reads this
// table back.
type Price struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	FeedID    string          `sql:"size:36;index:price_feed_idx" json:"feed_id"`
	Symbol    string          `sql:"size:20" json:"symbol"`
	Price     decimal.Decimal `sql:"type:decimal(64,0)" json:"price"`
	Content   types.JSONText  `sql:"type:varchar(1024)" json:"content,omitempty"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// IPriceStore price history store interface
type IPriceStore interface {
	Create(ctx context.Context, price *Price) error
	Latest(ctx context.Context, symbol string) (*Price, bool, error)
}
