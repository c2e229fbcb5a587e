package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"agora/contexts/ledger-runtime/governance-registry/domain/entities"
	domainerrors "agora/contexts/ledger-runtime/governance-registry/domain/errors"
	"agora/contexts/ledger-runtime/governance-registry/ports"

	"github.com/google/uuid"
)

type outboxRecord struct {
	message   ports.OutboxMessage
	published bool
}

// Store is the reference in-memory registry state: the proposal mapping,
// the vote mapping, and the private monotonic id counter, all guarded by
// one lock. Records are never deleted.
type Store[ID comparable] struct {
	mu sync.RWMutex

	proposals      map[uint64]entities.Proposal[ID]
	votes          map[entities.VoteKey[ID]]entities.VoteRecord[ID]
	outbox         map[string]outboxRecord
	nextProposalID uint64
}

func NewStore[ID comparable]() *Store[ID] {
	return &Store[ID]{
		proposals: make(map[uint64]entities.Proposal[ID]),
		votes:     make(map[entities.VoteKey[ID]]entities.VoteRecord[ID]),
		outbox:    make(map[string]outboxRecord),
	}
}

func (s *Store[ID]) CreateProposal(_ context.Context, proposal entities.Proposal[ID]) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	proposal.ProposalID = s.nextProposalID
	s.proposals[proposal.ProposalID] = proposal
	s.nextProposalID++
	return proposal.ProposalID, nil
}

func (s *Store[ID]) GetProposal(_ context.Context, proposalID uint64) (entities.Proposal[ID], bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	proposal, ok := s.proposals[proposalID]
	return proposal, ok, nil
}

func (s *Store[ID]) SaveProposal(_ context.Context, proposal entities.Proposal[ID]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proposals[proposal.ProposalID] = proposal
	return nil
}

func (s *Store[ID]) InsertVote(_ context.Context, vote entities.VoteRecord[ID]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.votes[vote.Key]; exists {
		return domainerrors.ErrAlreadyVoted
	}
	s.votes[vote.Key] = vote
	return nil
}

func (s *Store[ID]) GetVote(_ context.Context, key entities.VoteKey[ID]) (entities.VoteRecord[ID], bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	vote, ok := s.votes[key]
	return vote, ok, nil
}

func (s *Store[ID]) AppendOutbox(_ context.Context, message ports.OutboxMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outbox[message.OutboxID] = outboxRecord{message: message}
	return nil
}

func (s *Store[ID]) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pending := make([]ports.OutboxMessage, 0)
	for _, record := range s.outbox {
		if record.published {
			continue
		}
		pending = append(pending, record.message)
	}
	sort.Slice(pending, func(i, j int) bool {
		if pending[i].CreatedAt.Equal(pending[j].CreatedAt) {
			return pending[i].OutboxID < pending[j].OutboxID
		}
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	if limit > 0 && len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (s *Store[ID]) MarkOutboxPublished(_ context.Context, outboxID string, publishedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.outbox[outboxID]
	if !ok {
		return nil
	}
	record.published = true
	published := publishedAt.UTC()
	record.message.Status = "published"
	record.message.PublishedAt = &published
	s.outbox[outboxID] = record
	return nil
}

func (s *Store[ID]) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store[ID]) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
