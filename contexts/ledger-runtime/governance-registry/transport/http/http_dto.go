package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateProposalRequest struct {
	Description string `json:"description"`
}

type CastVoteRequest struct {
	Approve bool `json:"approve"`
}

type ProposalResponse struct {
	ProposalID  uint64    `json:"proposal_id"`
	Description string    `json:"description"`
	Creator     string    `json:"creator"`
	YesVotes    uint64    `json:"yes_votes"`
	NoVotes     uint64    `json:"no_votes"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type BallotResponse struct {
	ProposalID uint64    `json:"proposal_id"`
	Voter      string    `json:"voter"`
	Approve    bool      `json:"approve"`
	CastAt     time.Time `json:"cast_at"`
}
