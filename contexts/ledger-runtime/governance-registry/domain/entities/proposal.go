package entities

import "time"

type ProposalStatus string

const (
	ProposalStatusActive   ProposalStatus = "active"
	ProposalStatusApproved ProposalStatus = "approved"
	ProposalStatusRejected ProposalStatus = "rejected"
)

// Proposal is one governance item. Ids are assigned sequentially from 0 at
// creation and never reused; Creator is immutable after creation; the status
// leaves active exactly once, via finalization.
type Proposal[ID comparable] struct {
	ProposalID  uint64
	Description string
	Creator     ID
	YesVotes    uint64
	NoVotes     uint64
	Status      ProposalStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Finalized reports whether the proposal has reached a terminal status.
func (p Proposal[ID]) Finalized() bool {
	return p.Status != ProposalStatusActive
}

// Outcome is the deterministic finalization rule: approval requires yes to
// strictly exceed no, ties reject.
func (p Proposal[ID]) Outcome() ProposalStatus {
	if p.YesVotes > p.NoVotes {
		return ProposalStatusApproved
	}
	return ProposalStatusRejected
}

// VoteKey identifies the at-most-one vote an account may hold on a proposal.
type VoteKey[ID comparable] struct {
	Voter      ID
	ProposalID uint64
}

// VoteRecord is created on first successful vote and never mutated or
// deleted afterward.
type VoteRecord[ID comparable] struct {
	Key     VoteKey[ID]
	Approve bool
	CastAt  time.Time
}
