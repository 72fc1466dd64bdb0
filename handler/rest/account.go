package rest

import (
	"net/http"

	"lendpool/core"
	"lendpool/handler/param"
	"lendpool/handler/render"

	"github.com/go-chi/chi"
)

func loanHandler(loanStore core.ILoanStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := chi.URLParam(r, "user")

		loan, ok, err := loanStore.Find(r.Context(), user)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if !ok {
			render.Code(w, core.ErrNoActiveLoan)
			return
		}

		render.JSON(w, loan)
	}
}

func accountHandler(ledgerStore core.ILedgerStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		user := chi.URLParam(r, "user")

		account, ok, err := ledgerStore.FindCollateral(ctx, user)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		positions, err := ledgerStore.PositionsByUser(ctx, user)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		view := render.H{"positions": positions}
		if ok {
			view["collateral"] = account
		}

		render.JSON(w, view)
	}
}

func eventsHandler(eventStore core.IEventStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			From  uint64 `json:"from"`
			Limit int    `json:"limit"`
		}

		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if params.Limit <= 0 || params.Limit > 500 {
			params.Limit = 100
		}

		events, err := eventStore.List(r.Context(), params.From, params.Limit)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, events)
	}
}
