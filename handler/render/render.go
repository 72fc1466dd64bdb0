package render

import (
	"encoding/json"
	"net/http"

	"lendpool/core"

	"github.com/sirupsen/logrus"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Errorln(err)
	}
}

// Error write error
func Error(w http.ResponseWriter, statusCode, errCode int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(H{"code": errCode, "msg": msg}); err != nil {
		logrus.Errorln(err)
	}
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, http.StatusBadRequest, -1, err.Error())
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	Error(w, http.StatusNotFound, -1, err.Error())
}

// Code write a coded business error
func Code(w http.ResponseWriter, err error) {
	if code, ok := err.(core.ErrorCode); ok {
		Error(w, statusOf(code), int(code), code.Msg())
		return
	}

	Error(w, http.StatusInternalServerError, int(core.ErrUnknown), err.Error())
}

func statusOf(code core.ErrorCode) int {
	switch code {
	case core.ErrUnauthorized:
		return http.StatusForbidden
	case core.ErrReserveNotFound, core.ErrNoActiveLoan, core.ErrNoCollateral:
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}
