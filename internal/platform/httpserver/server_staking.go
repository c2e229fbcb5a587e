package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	stakingerrors "agora/contexts/ledger-runtime/staking-ledger/domain/errors"
	stakinghttp "agora/contexts/ledger-runtime/staking-ledger/transport/http"
)

func (s *Server) handleSetBalance(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("account_id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing_account", "account_id path segment is required")
		return
	}

	var req stakinghttp.SetBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.staking.Handler.SetBalanceHandler(r.Context(), accountID, req)
	if err != nil {
		writeStakingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStake(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("account_id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing_account", "account_id path segment is required")
		return
	}

	var req stakinghttp.StakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.staking.Handler.StakeHandler(r.Context(), accountID, req)
	if err != nil {
		writeStakingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUnstake(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("account_id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing_account", "account_id path segment is required")
		return
	}

	var req stakinghttp.UnstakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.staking.Handler.UnstakeHandler(r.Context(), accountID, req)
	if err != nil {
		writeStakingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetBalances(w http.ResponseWriter, r *http.Request) {
	accountID := r.PathValue("account_id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing_account", "account_id path segment is required")
		return
	}

	resp, err := s.staking.Handler.BalancesHandler(r.Context(), accountID)
	if err != nil {
		writeStakingDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeStakingDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, stakingerrors.ErrInsufficientBalance):
		writeError(w, http.StatusConflict, "insufficient_balance", err.Error())
	case errors.Is(err, stakingerrors.ErrInsufficientStakedBalance):
		writeError(w, http.StatusConflict, "insufficient_staked_balance", err.Error())
	case errors.Is(err, stakingerrors.ErrBalanceOverflow):
		writeError(w, http.StatusConflict, "balance_overflow", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
