package queries

import (
	"context"

	"agora/contexts/ledger-runtime/governance-registry/domain/entities"
	"agora/contexts/ledger-runtime/governance-registry/ports"
)

// ProposalQueries serves the pure reads. Absence is reported through the
// found flag, never as an error.
type ProposalQueries[ID comparable] struct {
	Proposals ports.ProposalRepository[ID]
	Votes     ports.VoteLedger[ID]
}

func (uc ProposalQueries[ID]) GetProposal(ctx context.Context, proposalID uint64) (entities.Proposal[ID], bool, error) {
	return uc.Proposals.GetProposal(ctx, proposalID)
}

// VoterBallot looks up the recorded choice of one account on one proposal.
func (uc ProposalQueries[ID]) VoterBallot(ctx context.Context, voter ID, proposalID uint64) (entities.VoteRecord[ID], bool, error) {
	return uc.Votes.GetVote(ctx, entities.VoteKey[ID]{Voter: voter, ProposalID: proposalID})
}
