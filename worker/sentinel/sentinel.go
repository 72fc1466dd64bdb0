// Package sentinel scans active loans and liquidates the ones that fell
// below the required collateral ratio.
package sentinel

import (
	"context"
	"time"

	"lendpool/core"
	"lendpool/internal/risk"
	"lendpool/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Worker sentinel worker
type Worker struct {
	worker.BaseJob
	System       *core.System
	LoanStore    core.ILoanStore
	ReserveStore core.IReserveStore
	Oracle       core.IPriceOracleService
	Pool         core.IPoolService
}

// New new sentinel worker
func New(
	location string,
	system *core.System,
	loanStore core.ILoanStore,
	reserveStore core.IReserveStore,
	oracleService core.IPriceOracleService,
	pool core.IPoolService,
) *Worker {
	job := Worker{
		System:       system,
		LoanStore:    loanStore,
		ReserveStore: reserveStore,
		Oracle:       oracleService,
		Pool:         pool,
	}

	l, _ := time.LoadLocation(location)
	job.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 10s"
	job.Cron.AddFunc(spec, job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "sentinel")

	liquidator := w.liquidator()
	if liquidator == "" {
		log.Warningln("no liquidator configured")
		return nil
	}

	loans, err := w.LoanStore.ListActive(ctx)
	if err != nil {
		log.WithError(err).Errorln("list active loans failed")
		return err
	}

	ratio, err := w.Pool.CollateralRatio(ctx)
	if err != nil {
		log.WithError(err).Errorln("read collateral ratio failed")
		return err
	}

	for _, loan := range loans {
		if !w.shouldLiquidate(ctx, loan, ratio) {
			continue
		}

		// the facade re-checks health under its own lock, a healthy
		// verdict here is only a filter
		if err := w.Pool.Liquidate(ctx, liquidator, loan.UserID); err != nil {
			if err == core.ErrLoanHealthy {
				continue
			}

			log.WithError(err).WithFields(logrus.Fields{
				"borrower": loan.UserID,
				"symbol":   loan.Symbol,
			}).Errorln("liquidate failed")
		}
	}

	return nil
}

func (w *Worker) shouldLiquidate(ctx context.Context, loan *core.Loan, ratio int64) bool {
	log := logger.FromContext(ctx).WithField("worker", "sentinel")

	reserve, ok, err := w.ReserveStore.Find(ctx, loan.Symbol)
	if err != nil || !ok {
		return false
	}

	price, err := w.Oracle.GetPrice(ctx, reserve.FeedID)
	if err != nil {
		log.WithError(err).Infoln("price fetch failed, skip", loan.Symbol)
		return false
	}

	value := risk.CollateralValue(loan.LockedCollateral, price)
	return risk.Undercollateralized(value, loan.Principal, ratio)
}

func (w *Worker) liquidator() string {
	if ids := w.System.Liquidators; len(ids) > 0 {
		return ids[0]
	}

	if ids := w.System.Admins; len(ids) > 0 {
		return ids[0]
	}

	return ""
}
