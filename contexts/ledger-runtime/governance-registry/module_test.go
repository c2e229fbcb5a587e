package governanceregistry_test

import (
	"context"
	"errors"
	"testing"

	governanceregistry "agora/contexts/ledger-runtime/governance-registry"
	"agora/contexts/ledger-runtime/governance-registry/application/workers"
	"agora/contexts/ledger-runtime/governance-registry/domain/entities"
	domainerrors "agora/contexts/ledger-runtime/governance-registry/domain/errors"
	"agora/internal/platform/messaging"
)

func TestProposalLifecycle(t *testing.T) {
	module := governanceregistry.NewInMemoryModule[string](nil)
	ctx := context.Background()

	proposal, err := module.Proposals.CreateProposal(ctx, "alice", "Increase validator rewards")
	if err != nil {
		t.Fatalf("create proposal failed: %v", err)
	}
	if proposal.ProposalID != 0 {
		t.Fatalf("expected first proposal id 0, got %d", proposal.ProposalID)
	}
	if proposal.Status != entities.ProposalStatusActive {
		t.Fatalf("expected active status, got %s", proposal.Status)
	}

	for _, vote := range []struct {
		voter   string
		approve bool
	}{
		{voter: "alice", approve: true},
		{voter: "bob", approve: true},
		{voter: "charlie", approve: false},
	} {
		if _, err := module.Proposals.CastVote(ctx, vote.voter, proposal.ProposalID, vote.approve); err != nil {
			t.Fatalf("vote by %s failed: %v", vote.voter, err)
		}
	}

	current, found, err := module.Queries.GetProposal(ctx, proposal.ProposalID)
	if err != nil || !found {
		t.Fatalf("get proposal failed: found=%v err=%v", found, err)
	}
	if current.YesVotes != 2 || current.NoVotes != 1 {
		t.Fatalf("tallies = %d/%d, want 2/1", current.YesVotes, current.NoVotes)
	}
	if current.Description != "Increase validator rewards" || current.Creator != "alice" {
		t.Fatalf("description/creator not preserved: %q by %q", current.Description, current.Creator)
	}

	finalized, err := module.Proposals.FinalizeProposal(ctx, proposal.ProposalID)
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if finalized.Status != entities.ProposalStatusApproved {
		t.Fatalf("expected approved, got %s", finalized.Status)
	}

	if _, err := module.Proposals.CastVote(ctx, "dave", proposal.ProposalID, true); !errors.Is(err, domainerrors.ErrProposalFinalized) {
		t.Fatalf("expected ErrProposalFinalized on vote, got %v", err)
	}
	if _, err := module.Proposals.FinalizeProposal(ctx, proposal.ProposalID); !errors.Is(err, domainerrors.ErrProposalFinalized) {
		t.Fatalf("expected ErrProposalFinalized on re-finalize, got %v", err)
	}

	after, found, err := module.Queries.GetProposal(ctx, proposal.ProposalID)
	if err != nil || !found {
		t.Fatalf("get proposal failed: found=%v err=%v", found, err)
	}
	if after.Status != entities.ProposalStatusApproved || after.YesVotes != 2 || after.NoVotes != 1 {
		t.Fatalf("finalized proposal mutated: status=%s tallies=%d/%d", after.Status, after.YesVotes, after.NoVotes)
	}
}

func TestDuplicateVotePreservesOriginal(t *testing.T) {
	module := governanceregistry.NewInMemoryModule[string](nil)
	ctx := context.Background()

	proposal, err := module.Proposals.CreateProposal(ctx, "alice", "Rotate the validator set")
	if err != nil {
		t.Fatalf("create proposal failed: %v", err)
	}

	if _, err := module.Proposals.CastVote(ctx, "bob", proposal.ProposalID, true); err != nil {
		t.Fatalf("first vote failed: %v", err)
	}
	// Second attempt flips the choice; it must be rejected and not recorded.
	if _, err := module.Proposals.CastVote(ctx, "bob", proposal.ProposalID, false); !errors.Is(err, domainerrors.ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}

	current, found, err := module.Queries.GetProposal(ctx, proposal.ProposalID)
	if err != nil || !found {
		t.Fatalf("get proposal failed: found=%v err=%v", found, err)
	}
	if current.YesVotes != 1 || current.NoVotes != 0 {
		t.Fatalf("tallies = %d/%d, want 1/0", current.YesVotes, current.NoVotes)
	}

	ballot, found, err := module.Queries.VoterBallot(ctx, "bob", proposal.ProposalID)
	if err != nil || !found {
		t.Fatalf("ballot query failed: found=%v err=%v", found, err)
	}
	if !ballot.Approve {
		t.Fatalf("original yes ballot was overwritten")
	}
}

func TestTieFinalizesToRejected(t *testing.T) {
	module := governanceregistry.NewInMemoryModule[string](nil)
	ctx := context.Background()

	proposal, err := module.Proposals.CreateProposal(ctx, "alice", "Halve the block interval")
	if err != nil {
		t.Fatalf("create proposal failed: %v", err)
	}
	if _, err := module.Proposals.CastVote(ctx, "alice", proposal.ProposalID, true); err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if _, err := module.Proposals.CastVote(ctx, "bob", proposal.ProposalID, false); err != nil {
		t.Fatalf("vote failed: %v", err)
	}

	finalized, err := module.Proposals.FinalizeProposal(ctx, proposal.ProposalID)
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if finalized.Status != entities.ProposalStatusRejected {
		t.Fatalf("tie must reject, got %s", finalized.Status)
	}
}

func TestZeroVoteFinalizationRejects(t *testing.T) {
	module := governanceregistry.NewInMemoryModule[string](nil)
	ctx := context.Background()

	proposal, err := module.Proposals.CreateProposal(ctx, "alice", "Enable archival pruning")
	if err != nil {
		t.Fatalf("create proposal failed: %v", err)
	}
	finalized, err := module.Proposals.FinalizeProposal(ctx, proposal.ProposalID)
	if err != nil {
		t.Fatalf("finalize failed: %v", err)
	}
	if finalized.Status != entities.ProposalStatusRejected {
		t.Fatalf("zero tallies must reject, got %s", finalized.Status)
	}
}

func TestSequentialProposalIDs(t *testing.T) {
	module := governanceregistry.NewInMemoryModule[string](nil)
	ctx := context.Background()

	for want := uint64(0); want < 5; want++ {
		proposal, err := module.Proposals.CreateProposal(ctx, "alice", "proposal")
		if err != nil {
			t.Fatalf("create proposal failed: %v", err)
		}
		if proposal.ProposalID != want {
			t.Fatalf("expected proposal id %d, got %d", want, proposal.ProposalID)
		}
	}
}

func TestUnknownProposalFails(t *testing.T) {
	module := governanceregistry.NewInMemoryModule[string](nil)
	ctx := context.Background()

	if _, err := module.Proposals.CastVote(ctx, "alice", 42, true); !errors.Is(err, domainerrors.ErrProposalNotFound) {
		t.Fatalf("expected ErrProposalNotFound on vote, got %v", err)
	}
	if _, err := module.Proposals.FinalizeProposal(ctx, 42); !errors.Is(err, domainerrors.ErrProposalNotFound) {
		t.Fatalf("expected ErrProposalNotFound on finalize, got %v", err)
	}
	if _, found, err := module.Queries.GetProposal(ctx, 42); err != nil || found {
		t.Fatalf("unknown proposal query: found=%v err=%v, want absent without error", found, err)
	}
}

func TestOutboxRelayPublishesGovernanceEvents(t *testing.T) {
	module := governanceregistry.NewInMemoryModule[string](nil)
	ctx := context.Background()

	proposal, err := module.Proposals.CreateProposal(ctx, "alice", "Increase validator rewards")
	if err != nil {
		t.Fatalf("create proposal failed: %v", err)
	}
	if _, err := module.Proposals.CastVote(ctx, "bob", proposal.ProposalID, true); err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if _, err := module.Proposals.FinalizeProposal(ctx, proposal.ProposalID); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	pending, err := module.Store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list pending outbox failed: %v", err)
	}
	if len(pending) != 3 {
		t.Fatalf("expected 3 pending outbox rows, got %d", len(pending))
	}

	bus, err := messaging.NewKafka(nil, nil)
	if err != nil {
		t.Fatalf("bus setup failed: %v", err)
	}
	finalizedTopic := bus.Subscribe("governance.proposal.finalized", 4)

	relay := workers.OutboxRelay{
		Outbox:    module.Store,
		Publisher: bus,
		Clock:     module.Store,
		BatchSize: 10,
	}
	if err := relay.RunOnce(ctx); err != nil {
		t.Fatalf("relay run failed: %v", err)
	}

	select {
	case event := <-finalizedTopic:
		if event.EventType != "governance.proposal.finalized" {
			t.Fatalf("unexpected event type %s", event.EventType)
		}
	default:
		t.Fatalf("finalized event was not published")
	}

	remaining, err := module.Store.ListPendingOutbox(ctx, 10)
	if err != nil {
		t.Fatalf("list pending outbox failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected outbox drained, %d rows still pending", len(remaining))
	}
}
