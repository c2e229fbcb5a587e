package ports

import (
	"context"
	"time"

	"agora/contexts/ledger-runtime/governance-registry/domain/entities"
	"agora/internal/shared/events"
)

// ProposalRepository owns the proposal records and the monotonic id
// counter. CreateProposal assigns the next sequential id (starting at 0,
// never reused) and returns it.
type ProposalRepository[ID comparable] interface {
	CreateProposal(ctx context.Context, proposal entities.Proposal[ID]) (uint64, error)
	GetProposal(ctx context.Context, proposalID uint64) (entities.Proposal[ID], bool, error)
	SaveProposal(ctx context.Context, proposal entities.Proposal[ID]) error
}

// VoteLedger owns the (voter, proposal) -> choice mapping. InsertVote is
// insert-if-absent: a second insert for the same key fails with
// ErrAlreadyVoted and leaves the original record untouched.
type VoteLedger[ID comparable] interface {
	InsertVote(ctx context.Context, vote entities.VoteRecord[ID]) error
	GetVote(ctx context.Context, key entities.VoteKey[ID]) (entities.VoteRecord[ID], bool, error)
}

type OutboxMessage struct {
	OutboxID    string
	EventType   string
	Payload     []byte
	Status      string
	CreatedAt   time.Time
	PublishedAt *time.Time
}

type OutboxWriter interface {
	AppendOutbox(ctx context.Context, message OutboxMessage) error
}

type OutboxRepository interface {
	OutboxWriter
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event events.Envelope) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
