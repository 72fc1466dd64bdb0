// Package rest exposes the pool over a plain http api. Mutations call
// through the pool facade; reads go straight to the stores.
package rest

import (
	"errors"
	"net/http"

	"lendpool/core"
	"lendpool/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	pool core.IPoolService,
	reserveStore core.IReserveStore,
	loanStore core.ILoanStore,
	ledgerStore core.ILedgerStore,
	eventStore core.IEventStore,
	priceStore core.IPriceStore,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/reserves", listReservesHandler(reserveStore))
	router.Get("/reserves/{symbol}", reserveHandler(reserveStore))
	router.Get("/reserves/{symbol}/price", reservePriceHandler(priceStore))
	router.Get("/loans/{user}", loanHandler(loanStore))
	router.Get("/accounts/{user}", accountHandler(ledgerStore))
	router.Get("/events", eventsHandler(eventStore))
	router.Get("/params", paramsHandler(pool))

	router.Post("/deposits", depositHandler(pool))
	router.Post("/withdrawals", withdrawHandler(pool))
	router.Post("/collateral", collateralDepositHandler(pool))
	router.Post("/collateral/withdrawals", collateralWithdrawHandler(pool))
	router.Post("/borrows", borrowHandler(pool))
	router.Post("/repayments", repayHandler(pool))
	router.Post("/liquidations", liquidateHandler(pool))

	router.Post("/reserves", addReserveHandler(pool))
	router.Put("/reserves", updateReserveHandler(pool))
	router.Put("/reserves/status", reserveStatusHandler(pool))
	router.Put("/params/ratio", setRatioHandler(pool))
	router.Put("/params/slippage", setSlippageHandler(pool))

	return router
}
