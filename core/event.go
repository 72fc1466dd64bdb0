package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

// EventAction event action
type EventAction string

const (
	// EventReserveAdded reserve added
	EventReserveAdded EventAction = "reserve_added"
	// EventReserveUpdated reserve feed/rate/status updated
	EventReserveUpdated EventAction = "reserve_updated"
	// EventRatioUpdated collateral ratio updated
	EventRatioUpdated EventAction = "ratio_updated"
	// EventDeposit lender deposit
	EventDeposit EventAction = "deposit"
	// EventWithdraw lender withdraw
	EventWithdraw EventAction = "withdraw"
	// EventCollateralDeposited collateral deposited
	EventCollateralDeposited EventAction = "collateral_deposited"
	// EventCollateralWithdrawn collateral withdrawn
	EventCollateralWithdrawn EventAction = "collateral_withdrawn"
	// EventBorrowed loan opened
	EventBorrowed EventAction = "borrowed"
	// EventRepaid loan repaid
	EventRepaid EventAction = "repaid"
	// EventLiquidated loan liquidated
	EventLiquidated EventAction = "liquidated"
)

// Event notification row for external observers, one per completed
// state-changing operation.
type Event struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID   string          `sql:"size:36;unique_index:event_trace_idx" json:"trace_id"`
	Action    EventAction     `sql:"size:32;index:event_action_idx" json:"action"`
	Symbol    string          `sql:"size:20" json:"symbol,omitempty"`
	UserID    string          `sql:"size:36;index:event_user_idx" json:"user_id,omitempty"`
	Amount    decimal.Decimal `sql:"type:decimal(64,0)" json:"amount"`
	Data      types.JSONText  `sql:"type:varchar(1024)" json:"data,omitempty"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// SetData marshal extra payload into Data.
func (e *Event) SetData(v interface{}) error {
	bs, err := json.Marshal(v)
	if err != nil {
		return err
	}

	e.Data = bs
	return nil
}

// IEventStore event store interface
type IEventStore interface {
	Create(ctx context.Context, tx *db.DB, event *Event) error
	List(ctx context.Context, fromID uint64, limit int) ([]*Event, error)
}
