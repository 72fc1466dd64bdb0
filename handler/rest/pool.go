package rest

import (
	"net/http"
	"strings"

	"lendpool/core"
	"lendpool/handler/param"
	"lendpool/handler/render"

	"github.com/shopspring/decimal"
)

func depositHandler(pool core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			UserID string          `json:"user_id" valid:"required"`
			Symbol string          `json:"symbol" valid:"required"`
			Amount decimal.Decimal `json:"amount"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := pool.Deposit(r.Context(), params.UserID, strings.ToUpper(params.Symbol), params.Amount); err != nil {
			render.Code(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}

func withdrawHandler(pool core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			UserID string          `json:"user_id" valid:"required"`
			Symbol string          `json:"symbol" valid:"required"`
			Amount decimal.Decimal `json:"amount"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := pool.Withdraw(r.Context(), params.UserID, strings.ToUpper(params.Symbol), params.Amount); err != nil {
			render.Code(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}

func collateralDepositHandler(pool core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			UserID string          `json:"user_id" valid:"required"`
			Amount decimal.Decimal `json:"amount"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := pool.DepositCollateral(r.Context(), params.UserID, params.Amount); err != nil {
			render.Code(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}

func collateralWithdrawHandler(pool core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			UserID string          `json:"user_id" valid:"required"`
			Amount decimal.Decimal `json:"amount"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := pool.WithdrawCollateral(r.Context(), params.UserID, params.Amount); err != nil {
			render.Code(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}

func borrowHandler(pool core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			UserID string          `json:"user_id" valid:"required"`
			Symbol string          `json:"symbol" valid:"required"`
			Amount decimal.Decimal `json:"amount"`
			// ExpectedPrice optional, zero skips the slippage check
			ExpectedPrice decimal.Decimal `json:"expected_price"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := pool.Borrow(r.Context(), params.UserID, strings.ToUpper(params.Symbol), params.Amount, params.ExpectedPrice); err != nil {
			render.Code(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}

func repayHandler(pool core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			UserID string `json:"user_id" valid:"required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := pool.Repay(r.Context(), params.UserID); err != nil {
			render.Code(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}

func liquidateHandler(pool core.IPoolService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			LiquidatorID string `json:"liquidator_id" valid:"required"`
			BorrowerID   string `json:"borrower_id" valid:"required"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if err := pool.Liquidate(r.Context(), params.LiquidatorID, params.BorrowerID); err != nil {
			render.Code(w, err)
			return
		}

		render.JSON(w, render.H{})
	}
}
