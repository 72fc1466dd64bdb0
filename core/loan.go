package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Loan single-slot loan record, at most one active loan per borrower.
//
// A closed loan keeps its row with Active=false and zeroed amounts; the
// presence bool returned by Find is the only way to tell "no loan yet"
// from a closed one.
type Loan struct {
	ID               uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID           string          `sql:"size:36;unique_index:loan_user_idx" json:"user_id"`
	Symbol           string          `sql:"size:20" json:"symbol"`
	Principal        decimal.Decimal `sql:"type:decimal(64,0)" json:"principal"`
	LockedCollateral decimal.Decimal `sql:"type:decimal(64,0)" json:"locked_collateral"`
	Active           bool            `sql:"default:false" json:"active"`
	Version          int64           `sql:"default:0" json:"version"`
	CreatedAt        time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt        time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ILoanStore loan store interface
type ILoanStore interface {
	Create(ctx context.Context, tx *db.DB, loan *Loan) error
	Find(ctx context.Context, userID string) (*Loan, bool, error)
	ListActive(ctx context.Context) ([]*Loan, error)
	Update(ctx context.Context, tx *db.DB, loan *Loan) error
}
