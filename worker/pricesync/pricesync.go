// Package pricesync records oracle rounds into the price history table.
// Valuation never reads this table, it exists for inspection and the rest
// api only.
package pricesync

import (
	"context"
	"encoding/json"
	"time"

	"lendpool/core"
	"lendpool/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"
)

// Worker pricesync worker
type Worker struct {
	worker.BaseJob
	ReserveStore core.IReserveStore
	PriceStore   core.IPriceStore
	Feeds        map[string]core.PriceFeed
	Oracle       core.IPriceOracleService
}

// New new pricesync worker
func New(
	location string,
	reserveStore core.IReserveStore,
	priceStore core.IPriceStore,
	feeds map[string]core.PriceFeed,
	oracleService core.IPriceOracleService,
) *Worker {
	job := Worker{
		ReserveStore: reserveStore,
		PriceStore:   priceStore,
		Feeds:        feeds,
		Oracle:       oracleService,
	}

	l, _ := time.LoadLocation(location)
	job.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 1m"
	job.Cron.AddFunc(spec, job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "pricesync")

	reserves, err := w.ReserveStore.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("fetch reserves failed")
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, reserve := range reserves {
		reserve := reserve
		if reserve.FeedID == "" {
			continue
		}

		g.Go(func() error {
			if err := w.record(ctx, reserve); err != nil {
				log.WithError(err).Infoln("record price failed:", reserve.Symbol)
			}

			// a failing feed must not starve the others
			return nil
		})
	}

	return g.Wait()
}

func (w *Worker) record(ctx context.Context, reserve *core.Reserve) error {
	feed, ok := w.Feeds[reserve.FeedID]
	if !ok {
		return core.ErrPriceUnavailable
	}

	price, err := w.Oracle.GetPrice(ctx, reserve.FeedID)
	if err != nil {
		return err
	}

	round, err := feed.LatestRoundData(ctx)
	if err != nil {
		return err
	}

	content, err := json.Marshal(round)
	if err != nil {
		return err
	}

	return w.PriceStore.Create(ctx, &core.Price{
		FeedID:  reserve.FeedID,
		Symbol:  reserve.Symbol,
		Price:   price,
		Content: content,
	})
}
