package oracle

import (
	"context"
	"fmt"
	"time"

	"lendpool/core"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

type httpFeed struct {
	client *resty.Client
}

// NewHTTPFeed new price feed served over http. The endpoint is expected to
// expose GET /decimals and GET /latest.
func NewHTTPFeed(endpoint string) core.PriceFeed {
	client := resty.New().
		SetBaseURL(endpoint).
		SetTimeout(10 * time.Second)

	return &httpFeed{client: client}
}

func (f *httpFeed) Decimals(ctx context.Context) (int32, error) {
	var body struct {
		Decimals int32 `json:"decimals"`
	}

	resp, err := f.client.R().
		SetContext(ctx).
		SetResult(&body).
		Get("/decimals")
	if err != nil {
		return 0, err
	}

	if resp.IsError() {
		return 0, fmt.Errorf("feed: decimals status %d", resp.StatusCode())
	}

	return body.Decimals, nil
}

func (f *httpFeed) LatestRoundData(ctx context.Context) (*core.RoundData, error) {
	var body struct {
		RoundID         uint64          `json:"round_id"`
		Answer          decimal.Decimal `json:"answer"`
		StartedAt       int64           `json:"started_at"`
		UpdatedAt       int64           `json:"updated_at"`
		AnsweredInRound uint64          `json:"answered_in_round"`
	}

	resp, err := f.client.R().
		SetContext(ctx).
		SetResult(&body).
		Get("/latest")
	if err != nil {
		return nil, err
	}

	if resp.IsError() {
		return nil, fmt.Errorf("feed: latest status %d", resp.StatusCode())
	}

	return &core.RoundData{
		RoundID:         body.RoundID,
		Answer:          body.Answer,
		StartedAt:       time.Unix(body.StartedAt, 0),
		UpdatedAt:       time.Unix(body.UpdatedAt, 0),
		AnsweredInRound: body.AnsweredInRound,
	}, nil
}
