package httpadapter

import (
	"context"
	"log/slog"

	"agora/contexts/ledger-runtime/governance-registry/application/commands"
	"agora/contexts/ledger-runtime/governance-registry/application/queries"
	"agora/contexts/ledger-runtime/governance-registry/domain/entities"
	domainerrors "agora/contexts/ledger-runtime/governance-registry/domain/errors"
	httptransport "agora/contexts/ledger-runtime/governance-registry/transport/http"
)

// Handler adapts the API-process instantiation (string account ids) to the
// transport DTOs. Query absence is surfaced as ErrProposalNotFound here so
// the platform edge can map it to a status code.
type Handler struct {
	Proposals commands.ProposalUseCase[string]
	Queries   queries.ProposalQueries[string]
	Logger    *slog.Logger
}

func (h Handler) CreateProposalHandler(ctx context.Context, creator string, req httptransport.CreateProposalRequest) (httptransport.ProposalResponse, error) {
	proposal, err := h.Proposals.CreateProposal(ctx, creator, req.Description)
	if err != nil {
		return httptransport.ProposalResponse{}, err
	}
	return proposalResponse(proposal), nil
}

func (h Handler) CastVoteHandler(ctx context.Context, voter string, proposalID uint64, req httptransport.CastVoteRequest) (httptransport.ProposalResponse, error) {
	proposal, err := h.Proposals.CastVote(ctx, voter, proposalID, req.Approve)
	if err != nil {
		return httptransport.ProposalResponse{}, err
	}
	return proposalResponse(proposal), nil
}

func (h Handler) FinalizeProposalHandler(ctx context.Context, proposalID uint64) (httptransport.ProposalResponse, error) {
	proposal, err := h.Proposals.FinalizeProposal(ctx, proposalID)
	if err != nil {
		return httptransport.ProposalResponse{}, err
	}
	return proposalResponse(proposal), nil
}

func (h Handler) GetProposalHandler(ctx context.Context, proposalID uint64) (httptransport.ProposalResponse, error) {
	proposal, found, err := h.Queries.GetProposal(ctx, proposalID)
	if err != nil {
		return httptransport.ProposalResponse{}, err
	}
	if !found {
		return httptransport.ProposalResponse{}, domainerrors.ErrProposalNotFound
	}
	return proposalResponse(proposal), nil
}

func (h Handler) VoterBallotHandler(ctx context.Context, voter string, proposalID uint64) (httptransport.BallotResponse, error) {
	ballot, found, err := h.Queries.VoterBallot(ctx, voter, proposalID)
	if err != nil {
		return httptransport.BallotResponse{}, err
	}
	if !found {
		return httptransport.BallotResponse{}, domainerrors.ErrVoteNotFound
	}
	return httptransport.BallotResponse{
		ProposalID: ballot.Key.ProposalID,
		Voter:      ballot.Key.Voter,
		Approve:    ballot.Approve,
		CastAt:     ballot.CastAt,
	}, nil
}

func proposalResponse(proposal entities.Proposal[string]) httptransport.ProposalResponse {
	return httptransport.ProposalResponse{
		ProposalID:  proposal.ProposalID,
		Description: proposal.Description,
		Creator:     proposal.Creator,
		YesVotes:    proposal.YesVotes,
		NoVotes:     proposal.NoVotes,
		Status:      string(proposal.Status),
		CreatedAt:   proposal.CreatedAt,
		UpdatedAt:   proposal.UpdatedAt,
	}
}
