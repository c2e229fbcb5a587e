package ports

import (
	"context"

	"agora/contexts/ledger-runtime/staking-ledger/domain/entities"
	"agora/internal/shared/runtimecfg"
)

// BalanceStore owns the free/staked mappings for one ledger instance.
// Reads of absent accounts return the zero pair, never an error.
// UpdateBalances writes both pools in one call so no partial update is
// observable between them.
type BalanceStore[ID comparable, B runtimecfg.Balance] interface {
	GetBalances(ctx context.Context, account ID) (entities.BalancePair[B], error)
	SetFreeBalance(ctx context.Context, account ID, amount B) error
	UpdateBalances(ctx context.Context, account ID, pair entities.BalancePair[B]) error
}
