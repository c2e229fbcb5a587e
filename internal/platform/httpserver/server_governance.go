package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	governanceerrors "agora/contexts/ledger-runtime/governance-registry/domain/errors"
	governancehttp "agora/contexts/ledger-runtime/governance-registry/transport/http"
)

func (s *Server) handleCreateProposal(w http.ResponseWriter, r *http.Request) {
	creator := r.Header.Get("X-User-Id")
	if creator == "" {
		writeError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	var req governancehttp.CreateProposalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.governance.Handler.CreateProposalHandler(r.Context(), creator, req)
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetProposal(w http.ResponseWriter, r *http.Request) {
	proposalID, ok := parseProposalID(w, r)
	if !ok {
		return
	}

	resp, err := s.governance.Handler.GetProposalHandler(r.Context(), proposalID)
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	voter := r.Header.Get("X-User-Id")
	if voter == "" {
		writeError(w, http.StatusUnauthorized, "missing_user", "X-User-Id header is required")
		return
	}

	proposalID, ok := parseProposalID(w, r)
	if !ok {
		return
	}

	var req governancehttp.CastVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}

	resp, err := s.governance.Handler.CastVoteHandler(r.Context(), voter, proposalID, req)
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVoterBallot(w http.ResponseWriter, r *http.Request) {
	proposalID, ok := parseProposalID(w, r)
	if !ok {
		return
	}
	voter := r.PathValue("voter")
	if voter == "" {
		writeError(w, http.StatusBadRequest, "missing_voter", "voter path segment is required")
		return
	}

	resp, err := s.governance.Handler.VoterBallotHandler(r.Context(), voter, proposalID)
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFinalizeProposal(w http.ResponseWriter, r *http.Request) {
	proposalID, ok := parseProposalID(w, r)
	if !ok {
		return
	}

	resp, err := s.governance.Handler.FinalizeProposalHandler(r.Context(), proposalID)
	if err != nil {
		writeGovernanceDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseProposalID(w http.ResponseWriter, r *http.Request) (uint64, bool) {
	raw := r.PathValue("proposal_id")
	proposalID, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_proposal_id", "proposal_id must be an unsigned integer")
		return 0, false
	}
	return proposalID, true
}

func writeGovernanceDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, governanceerrors.ErrProposalNotFound):
		writeError(w, http.StatusNotFound, "proposal_not_found", err.Error())
	case errors.Is(err, governanceerrors.ErrVoteNotFound):
		writeError(w, http.StatusNotFound, "vote_not_found", err.Error())
	case errors.Is(err, governanceerrors.ErrProposalFinalized):
		writeError(w, http.StatusConflict, "proposal_finalized", err.Error())
	case errors.Is(err, governanceerrors.ErrAlreadyVoted):
		writeError(w, http.StatusConflict, "already_voted", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
