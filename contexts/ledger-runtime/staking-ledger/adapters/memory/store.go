package memory

import (
	"context"
	"sync"

	"agora/contexts/ledger-runtime/staking-ledger/domain/entities"
	"agora/internal/shared/runtimecfg"
)

// Store is the reference in-memory balance store: two maps guarded by one
// lock, absent keys meaning zero. Entries are never deleted.
type Store[ID comparable, B runtimecfg.Balance] struct {
	mu sync.RWMutex

	free   map[ID]B
	staked map[ID]B
}

func NewStore[ID comparable, B runtimecfg.Balance]() *Store[ID, B] {
	return &Store[ID, B]{
		free:   make(map[ID]B),
		staked: make(map[ID]B),
	}
}

func (s *Store[ID, B]) GetBalances(_ context.Context, account ID) (entities.BalancePair[B], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return entities.BalancePair[B]{
		Free:   s.free[account],
		Staked: s.staked[account],
	}, nil
}

func (s *Store[ID, B]) SetFreeBalance(_ context.Context, account ID, amount B) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.free[account] = amount
	return nil
}

func (s *Store[ID, B]) UpdateBalances(_ context.Context, account ID, pair entities.BalancePair[B]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.free[account] = pair.Free
	s.staked[account] = pair.Staked
	return nil
}
