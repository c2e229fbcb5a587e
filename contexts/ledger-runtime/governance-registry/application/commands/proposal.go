package commands

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	application "agora/contexts/ledger-runtime/governance-registry/application"
	"agora/contexts/ledger-runtime/governance-registry/domain/entities"
	domainerrors "agora/contexts/ledger-runtime/governance-registry/domain/errors"
	"agora/contexts/ledger-runtime/governance-registry/ports"
	"agora/internal/shared/events"
)

// ProposalUseCase orchestrates the proposal lifecycle: creation with
// sequential id assignment, exactly-once-per-voter tallying, and the single
// irreversible active -> approved/rejected transition.
type ProposalUseCase[ID comparable] struct {
	Proposals ports.ProposalRepository[ID]
	Votes     ports.VoteLedger[ID]
	Outbox    ports.OutboxWriter
	Clock     ports.Clock
	IDGen     ports.IDGenerator
	Logger    *slog.Logger
}

// CreateProposal stores a new active proposal with zero tallies and returns
// it with the assigned id. The description is opaque text and never
// validated here.
func (uc ProposalUseCase[ID]) CreateProposal(ctx context.Context, creator ID, description string) (entities.Proposal[ID], error) {
	now := uc.now()
	proposal := entities.Proposal[ID]{
		Description: description,
		Creator:     creator,
		Status:      entities.ProposalStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	proposalID, err := uc.Proposals.CreateProposal(ctx, proposal)
	if err != nil {
		return entities.Proposal[ID]{}, err
	}
	proposal.ProposalID = proposalID

	if err := uc.appendProposalEvent(ctx, "governance.proposal.created", proposal, now, map[string]any{
		"description": description,
	}); err != nil {
		return entities.Proposal[ID]{}, err
	}

	application.ResolveLogger(uc.Logger).Info("proposal created",
		"event", "governance_proposal_created",
		"module", "ledger-runtime/governance-registry",
		"layer", "application",
		"proposal_id", proposalID,
		"creator", creator,
	)
	return proposal, nil
}

// CastVote records one yes/no choice per (voter, proposal) pair. The vote
// ledger enforces uniqueness by insert-if-absent: a duplicate attempt fails
// with ErrAlreadyVoted and the original vote stands, tallies untouched.
func (uc ProposalUseCase[ID]) CastVote(ctx context.Context, voter ID, proposalID uint64, approve bool) (entities.Proposal[ID], error) {
	logger := application.ResolveLogger(uc.Logger)

	proposal, found, err := uc.Proposals.GetProposal(ctx, proposalID)
	if err != nil {
		return entities.Proposal[ID]{}, err
	}
	if !found {
		return entities.Proposal[ID]{}, domainerrors.ErrProposalNotFound
	}
	if proposal.Finalized() {
		logger.Warn("vote rejected on finalized proposal",
			"event", "governance_vote_rejected",
			"module", "ledger-runtime/governance-registry",
			"layer", "application",
			"proposal_id", proposalID,
			"voter", voter,
			"status", string(proposal.Status),
		)
		return entities.Proposal[ID]{}, domainerrors.ErrProposalFinalized
	}

	now := uc.now()
	if err := uc.Votes.InsertVote(ctx, entities.VoteRecord[ID]{
		Key:     entities.VoteKey[ID]{Voter: voter, ProposalID: proposalID},
		Approve: approve,
		CastAt:  now,
	}); err != nil {
		return entities.Proposal[ID]{}, err
	}

	if approve {
		proposal.YesVotes++
	} else {
		proposal.NoVotes++
	}
	proposal.UpdatedAt = now
	if err := uc.Proposals.SaveProposal(ctx, proposal); err != nil {
		return entities.Proposal[ID]{}, err
	}

	if err := uc.appendProposalEvent(ctx, "governance.vote.cast", proposal, now, map[string]any{
		"approve":   approve,
		"yes_votes": proposal.YesVotes,
		"no_votes":  proposal.NoVotes,
	}); err != nil {
		return entities.Proposal[ID]{}, err
	}

	logger.Info("vote cast",
		"event", "governance_vote_cast",
		"module", "ledger-runtime/governance-registry",
		"layer", "application",
		"proposal_id", proposalID,
		"voter", voter,
		"approve", approve,
		"yes_votes", proposal.YesVotes,
		"no_votes", proposal.NoVotes,
	)
	return proposal, nil
}

// FinalizeProposal runs the single terminal transition. Approval requires
// yes to strictly exceed no; ties reject. Repeat calls fail with
// ErrProposalFinalized and never alter status or tallies.
func (uc ProposalUseCase[ID]) FinalizeProposal(ctx context.Context, proposalID uint64) (entities.Proposal[ID], error) {
	logger := application.ResolveLogger(uc.Logger)

	proposal, found, err := uc.Proposals.GetProposal(ctx, proposalID)
	if err != nil {
		return entities.Proposal[ID]{}, err
	}
	if !found {
		return entities.Proposal[ID]{}, domainerrors.ErrProposalNotFound
	}
	if proposal.Finalized() {
		return entities.Proposal[ID]{}, domainerrors.ErrProposalFinalized
	}

	now := uc.now()
	proposal.Status = proposal.Outcome()
	proposal.UpdatedAt = now
	if err := uc.Proposals.SaveProposal(ctx, proposal); err != nil {
		return entities.Proposal[ID]{}, err
	}

	if err := uc.appendProposalEvent(ctx, "governance.proposal.finalized", proposal, now, map[string]any{
		"status":    string(proposal.Status),
		"yes_votes": proposal.YesVotes,
		"no_votes":  proposal.NoVotes,
	}); err != nil {
		return entities.Proposal[ID]{}, err
	}

	logger.Info("proposal finalized",
		"event", "governance_proposal_finalized",
		"module", "ledger-runtime/governance-registry",
		"layer", "application",
		"proposal_id", proposalID,
		"status", string(proposal.Status),
		"yes_votes", proposal.YesVotes,
		"no_votes", proposal.NoVotes,
	)
	return proposal, nil
}

func (uc ProposalUseCase[ID]) appendProposalEvent(
	ctx context.Context,
	eventType string,
	proposal entities.Proposal[ID],
	now time.Time,
	payload map[string]any,
) error {
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.newID(ctx)
	if err != nil {
		return err
	}
	outboxID, err := uc.newID(ctx)
	if err != nil {
		return err
	}
	envelope := events.Envelope{
		EventID:        eventID,
		EventType:      eventType,
		SourceService:  "agora",
		OccurredAtUTC:  now.UTC(),
		EntityType:     "proposal",
		EntityID:       strconv.FormatUint(proposal.ProposalID, 10),
		PayloadVersion: 1,
		Payload:        payload,
	}
	raw, err := json.Marshal(envelope)
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, ports.OutboxMessage{
		OutboxID:  outboxID,
		EventType: eventType,
		Payload:   raw,
		Status:    "pending",
		CreatedAt: now.UTC(),
	})
}

func (uc ProposalUseCase[ID]) now() time.Time {
	if uc.Clock == nil {
		return time.Now().UTC()
	}
	return uc.Clock.Now().UTC()
}

func (uc ProposalUseCase[ID]) newID(ctx context.Context) (string, error) {
	if uc.IDGen == nil {
		return "", nil
	}
	return uc.IDGen.NewID(ctx)
}
