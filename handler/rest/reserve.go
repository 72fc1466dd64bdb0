package rest

import (
	"net/http"
	"strings"

	"lendpool/core"
	"lendpool/handler/render"

	"github.com/go-chi/chi"
)

func listReservesHandler(reserveStore core.IReserveStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reserves, err := reserveStore.All(r.Context())
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, reserves)
	}
}

func reserveHandler(reserveStore core.IReserveStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		symbol := strings.ToUpper(chi.URLParam(r, "symbol"))

		reserve, ok, err := reserveStore.Find(r.Context(), symbol)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if !ok {
			render.Code(w, core.ErrReserveNotFound)
			return
		}

		render.JSON(w, reserve)
	}
}

func reservePriceHandler(priceStore core.IPriceStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		symbol := strings.ToUpper(chi.URLParam(r, "symbol"))

		price, ok, err := priceStore.Latest(r.Context(), symbol)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if !ok {
			render.Code(w, core.ErrPriceUnavailable)
			return
		}

		render.JSON(w, price)
	}
}
