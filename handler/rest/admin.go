package rest

import (
	"net/http"
	"strings"

	"lendpool/core"
	"lendpool/handler/param"
	"lendpool/handler/render"
)

func paramsHandler(pool core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		ratio, err := pool.CollateralRatio(ctx)
		if err != nil {
			render.Code(w, err)
			return
		}

		slippage, err := pool.MaxSlippage(ctx)
		if err != nil {
			render.Code(w, err)
			return
		}

		render.JSON(w, render.H{
			"collateral_ratio_bps": ratio,
			"max_slippage_bps":     slippage,
		})
	}
}

func addReserveHandler(pool core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			CallerID string `json:"caller_id" valid:"required"`
			Symbol   string `json:"symbol" valid:"required"`
			AssetID  string `json:"asset_id"`
			FeedID   string `json:"feed_id"`
			RateBps  int64  `json:"rate_bps"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		symbol := strings.ToUpper(params.Symbol)
		if err := pool.AddReserve(r.Context(), params.CallerID, symbol, params.AssetID, params.FeedID, params.RateBps); err != nil {
			render.Code(w, err)
			return
		}

		render.JSON(w, render.H{"symbol": symbol})
	}
}

func updateReserveHandler(pool core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			CallerID string `json:"caller_id" valid:"required"`
			Symbol   string `json:"symbol" valid:"required"`
			FeedID   string `json:"feed_id"`
			RateBps  int64  `json:"rate_bps"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := pool.UpdateReserve(r.Context(), params.CallerID, strings.ToUpper(params.Symbol), params.FeedID, params.RateBps); err != nil {
			render.Code(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}

func reserveStatusHandler(pool core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			CallerID string `json:"caller_id" valid:"required"`
			Symbol   string `json:"symbol" valid:"required"`
			Enabled  bool   `json:"enabled"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		status := core.ReserveStatusDisabled
		if params.Enabled {
			status = core.ReserveStatusEnabled
		}

		if err := pool.SetReserveStatus(r.Context(), params.CallerID, strings.ToUpper(params.Symbol), status); err != nil {
			render.Code(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}

func setRatioHandler(pool core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			CallerID string `json:"caller_id" valid:"required"`
			Bps      int64  `json:"bps"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := pool.SetCollateralRatio(r.Context(), params.CallerID, params.Bps); err != nil {
			render.Code(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}

func setSlippageHandler(pool core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			CallerID string `json:"caller_id" valid:"required"`
			Bps      int64  `json:"bps"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := pool.SetMaxSlippage(r.Context(), params.CallerID, params.Bps); err != nil {
			render.Code(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}
