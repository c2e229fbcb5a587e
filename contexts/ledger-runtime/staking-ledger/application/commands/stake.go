package commands

import (
	"context"
	"log/slog"

	application "agora/contexts/ledger-runtime/staking-ledger/application"
	"agora/contexts/ledger-runtime/staking-ledger/domain/entities"
	domainerrors "agora/contexts/ledger-runtime/staking-ledger/domain/errors"
	"agora/contexts/ledger-runtime/staking-ledger/ports"
	"agora/internal/shared/runtimecfg"
)

// StakeUseCase runs the ledger writes. Every command is a single
// read-modify-write against the balance store; on any failure both pools
// are left exactly as before the call.
type StakeUseCase[ID comparable, B runtimecfg.Balance] struct {
	Balances ports.BalanceStore[ID, B]
	Logger   *slog.Logger
}

// SetBalance unconditionally overwrites an account's free balance.
// Administrative operation: no prior value required, staked pool untouched.
func (uc StakeUseCase[ID, B]) SetBalance(ctx context.Context, account ID, amount B) error {
	if err := uc.Balances.SetFreeBalance(ctx, account, amount); err != nil {
		return err
	}
	application.ResolveLogger(uc.Logger).Info("free balance set",
		"event", "staking_balance_set",
		"module", "ledger-runtime/staking-ledger",
		"layer", "application",
		"account", account,
		"amount", uint64(amount),
	)
	return nil
}

// Stake moves amount from the free pool to the staked pool.
func (uc StakeUseCase[ID, B]) Stake(ctx context.Context, account ID, amount B) error {
	logger := application.ResolveLogger(uc.Logger)

	pair, err := uc.Balances.GetBalances(ctx, account)
	if err != nil {
		return err
	}

	newFree, ok := runtimecfg.CheckedSub(pair.Free, amount)
	if !ok {
		logger.Warn("stake rejected",
			"event", "staking_stake_rejected",
			"module", "ledger-runtime/staking-ledger",
			"layer", "application",
			"account", account,
			"amount", uint64(amount),
			"reason", "insufficient_free_balance",
		)
		return domainerrors.ErrInsufficientBalance
	}
	newStaked, ok := runtimecfg.CheckedAdd(pair.Staked, amount)
	if !ok {
		logger.Warn("stake rejected",
			"event", "staking_stake_rejected",
			"module", "ledger-runtime/staking-ledger",
			"layer", "application",
			"account", account,
			"amount", uint64(amount),
			"reason", "staked_pool_overflow",
		)
		return domainerrors.ErrBalanceOverflow
	}

	next := entities.BalancePair[B]{Free: newFree, Staked: newStaked}
	if err := uc.Balances.UpdateBalances(ctx, account, next); err != nil {
		return err
	}
	logger.Info("stake applied",
		"event", "staking_stake_applied",
		"module", "ledger-runtime/staking-ledger",
		"layer", "application",
		"account", account,
		"amount", uint64(amount),
		"free", uint64(next.Free),
		"staked", uint64(next.Staked),
	)
	return nil
}

// Unstake moves amount from the staked pool back to the free pool.
func (uc StakeUseCase[ID, B]) Unstake(ctx context.Context, account ID, amount B) error {
	logger := application.ResolveLogger(uc.Logger)

	pair, err := uc.Balances.GetBalances(ctx, account)
	if err != nil {
		return err
	}

	newStaked, ok := runtimecfg.CheckedSub(pair.Staked, amount)
	if !ok {
		logger.Warn("unstake rejected",
			"event", "staking_unstake_rejected",
			"module", "ledger-runtime/staking-ledger",
			"layer", "application",
			"account", account,
			"amount", uint64(amount),
			"reason", "insufficient_staked_balance",
		)
		return domainerrors.ErrInsufficientStakedBalance
	}
	newFree, ok := runtimecfg.CheckedAdd(pair.Free, amount)
	if !ok {
		logger.Warn("unstake rejected",
			"event", "staking_unstake_rejected",
			"module", "ledger-runtime/staking-ledger",
			"layer", "application",
			"account", account,
			"amount", uint64(amount),
			"reason", "free_pool_overflow",
		)
		return domainerrors.ErrBalanceOverflow
	}

	next := entities.BalancePair[B]{Free: newFree, Staked: newStaked}
	if err := uc.Balances.UpdateBalances(ctx, account, next); err != nil {
		return err
	}
	logger.Info("unstake applied",
		"event", "staking_unstake_applied",
		"module", "ledger-runtime/staking-ledger",
		"layer", "application",
		"account", account,
		"amount", uint64(amount),
		"free", uint64(next.Free),
		"staked", uint64(next.Staked),
	)
	return nil
}
