package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LevanIlashvili/stylish-go-app/internal/chain"
	"github.com/LevanIlashvili/stylish-go-app/internal/model"
	"github.com/LevanIlashvili/stylish-go-app/internal/move"
	"github.com/LevanIlashvili/stylish-go-app/internal/wallet"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error(), Code: string(model.KindOf(err))})
}

// statusFor maps core errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, move.ErrActionPending), errors.Is(err, move.ErrGameEnded),
		errors.Is(err, wallet.ErrWalletExists):
		return http.StatusConflict
	case errors.Is(err, chain.ErrSignerRequired), errors.Is(err, wallet.ErrNoWallet):
		return http.StatusPreconditionFailed
	case model.IsKind(err, model.KindStorage):
		return http.StatusInternalServerError
	case model.IsKind(err, model.KindConnection),
		model.IsKind(err, model.KindContractQuery),
		model.IsKind(err, model.KindTransaction),
		model.IsKind(err, model.KindSync):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func allow(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		http.Error(w, "Method not allowed. Should be "+method, http.StatusMethodNotAllowed)
		return false
	}
	return true
}
