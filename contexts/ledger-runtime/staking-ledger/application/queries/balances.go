package queries

import (
	"context"

	"agora/contexts/ledger-runtime/staking-ledger/domain/entities"
	"agora/contexts/ledger-runtime/staking-ledger/ports"
	"agora/internal/shared/runtimecfg"
)

// BalanceUseCase serves the pure reads. Unknown accounts read as zero in
// both pools, never as an error.
type BalanceUseCase[ID comparable, B runtimecfg.Balance] struct {
	Balances ports.BalanceStore[ID, B]
}

func (uc BalanceUseCase[ID, B]) FreeBalance(ctx context.Context, account ID) (B, error) {
	pair, err := uc.Balances.GetBalances(ctx, account)
	if err != nil {
		return 0, err
	}
	return pair.Free, nil
}

func (uc BalanceUseCase[ID, B]) StakedBalance(ctx context.Context, account ID) (B, error) {
	pair, err := uc.Balances.GetBalances(ctx, account)
	if err != nil {
		return 0, err
	}
	return pair.Staked, nil
}

func (uc BalanceUseCase[ID, B]) Pair(ctx context.Context, account ID) (entities.BalancePair[B], error) {
	return uc.Balances.GetBalances(ctx, account)
}
