package errors

import "errors"

var (
	ErrProposalNotFound  = errors.New("proposal does not exist")
	ErrProposalFinalized = errors.New("proposal is already finalized")
	ErrAlreadyVoted      = errors.New("account has already voted on this proposal")
	ErrVoteNotFound      = errors.New("no vote recorded for this account and proposal")
)
