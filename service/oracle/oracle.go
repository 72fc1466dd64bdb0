package oracle

import (
	"context"
	"fmt"
	"time"

	"lendpool/core"
	"lendpool/pkg/number"

	"github.com/bluele/gcache"
	"github.com/shopspring/decimal"
)

// Config oracle adapter config
type Config struct {
	// MaxAge rejects rounds older than this as stale. Zero disables the
	// check; a non-positive answer is always rejected.
	MaxAge time.Duration
}

type adapterService struct {
	feeds map[string]core.PriceFeed
	cfg   Config

	// decimals is static feed metadata; answers themselves are fetched
	// fresh on every call.
	decimalsCache gcache.Cache
}

// New new price oracle adapter over the given feed set, keyed by feed id.
func New(feeds map[string]core.PriceFeed, cfg Config) core.IPriceOracleService {
	return &adapterService{
		feeds:         feeds,
		cfg:           cfg,
		decimalsCache: gcache.New(64).LRU().Build(),
	}
}

func (s *adapterService) GetPrice(ctx context.Context, feedID string) (decimal.Decimal, error) {
	if feedID == "" {
		return decimal.Zero, core.ErrPriceUnavailable
	}

	feed, ok := s.feeds[feedID]
	if !ok {
		return decimal.Zero, core.ErrPriceUnavailable
	}

	decimals, err := s.feedDecimals(ctx, feedID, feed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("oracle: decimals of feed %s: %w", feedID, err)
	}

	data, err := feed.LatestRoundData(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("oracle: round data of feed %s: %w", feedID, err)
	}

	if !data.Answer.IsPositive() {
		return decimal.Zero, core.ErrStalePrice
	}

	if s.cfg.MaxAge > 0 && time.Since(data.UpdatedAt) > s.cfg.MaxAge {
		return decimal.Zero, core.ErrStalePrice
	}

	return number.ScaleTo18(data.Answer.Truncate(0), decimals), nil
}

func (s *adapterService) feedDecimals(ctx context.Context, feedID string, feed core.PriceFeed) (int32, error) {
	if v, err := s.decimalsCache.Get(feedID); err == nil {
		return v.(int32), nil
	}

	decimals, err := feed.Decimals(ctx)
	if err != nil {
		return 0, err
	}

	_ = s.decimalsCache.Set(feedID, decimals)
	return decimals, nil
}
