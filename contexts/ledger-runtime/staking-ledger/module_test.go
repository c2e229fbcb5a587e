package stakingledger_test

import (
	"context"
	"errors"
	"math"
	"testing"

	stakingledger "agora/contexts/ledger-runtime/staking-ledger"
	domainerrors "agora/contexts/ledger-runtime/staking-ledger/domain/errors"
)

func TestStakeUnstakeMovesBetweenPools(t *testing.T) {
	module := stakingledger.NewInMemoryModule[string, uint64](nil)
	ctx := context.Background()

	if err := module.Staking.SetBalance(ctx, "alice", 1000); err != nil {
		t.Fatalf("set balance failed: %v", err)
	}
	assertBalances(t, module, "alice", 1000, 0)

	if err := module.Staking.Stake(ctx, "alice", 400); err != nil {
		t.Fatalf("stake failed: %v", err)
	}
	assertBalances(t, module, "alice", 600, 400)

	if err := module.Staking.Unstake(ctx, "alice", 100); err != nil {
		t.Fatalf("unstake failed: %v", err)
	}
	assertBalances(t, module, "alice", 700, 300)
}

func TestStakeUnstakeRejectionsLeaveBalancesUntouched(t *testing.T) {
	module := stakingledger.NewInMemoryModule[string, uint64](nil)
	ctx := context.Background()

	if err := module.Staking.SetBalance(ctx, "bob", 500); err != nil {
		t.Fatalf("set balance failed: %v", err)
	}

	if err := module.Staking.Stake(ctx, "bob", 600); !errors.Is(err, domainerrors.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
	assertBalances(t, module, "bob", 500, 0)

	if err := module.Staking.Stake(ctx, "bob", 300); err != nil {
		t.Fatalf("stake failed: %v", err)
	}
	assertBalances(t, module, "bob", 200, 300)

	if err := module.Staking.Unstake(ctx, "bob", 400); !errors.Is(err, domainerrors.ErrInsufficientStakedBalance) {
		t.Fatalf("expected ErrInsufficientStakedBalance, got %v", err)
	}
	assertBalances(t, module, "bob", 200, 300)
}

func TestConservationAcrossSequence(t *testing.T) {
	module := stakingledger.NewInMemoryModule[string, uint64](nil)
	ctx := context.Background()

	if err := module.Staking.SetBalance(ctx, "carol", 10_000); err != nil {
		t.Fatalf("set balance failed: %v", err)
	}

	moves := []struct {
		stake  bool
		amount uint64
	}{
		{stake: true, amount: 4_000},
		{stake: true, amount: 1_500},
		{stake: false, amount: 2_000},
		{stake: true, amount: 6_000},
		{stake: false, amount: 500},
	}
	for _, move := range moves {
		var err error
		if move.stake {
			err = module.Staking.Stake(ctx, "carol", move.amount)
		} else {
			err = module.Staking.Unstake(ctx, "carol", move.amount)
		}
		// Rejected moves must not change the total either.
		_ = err

		pair, err := module.Balances.Pair(ctx, "carol")
		if err != nil {
			t.Fatalf("pair query failed: %v", err)
		}
		total, ok := pair.Total()
		if !ok {
			t.Fatalf("total overflowed: free=%d staked=%d", pair.Free, pair.Staked)
		}
		if total != 10_000 {
			t.Fatalf("conservation violated: free=%d staked=%d total=%d", pair.Free, pair.Staked, total)
		}
	}
}

func TestStakedPoolOverflow(t *testing.T) {
	module := stakingledger.NewInMemoryModule[string, uint64](nil)
	ctx := context.Background()

	if err := module.Staking.SetBalance(ctx, "dave", math.MaxUint64); err != nil {
		t.Fatalf("set balance failed: %v", err)
	}
	if err := module.Staking.Stake(ctx, "dave", math.MaxUint64); err != nil {
		t.Fatalf("stake to max failed: %v", err)
	}
	assertBalances(t, module, "dave", 0, math.MaxUint64)

	// Refill the free pool administratively; the staked pool can no longer
	// absorb anything.
	if err := module.Staking.SetBalance(ctx, "dave", 10); err != nil {
		t.Fatalf("set balance failed: %v", err)
	}
	if err := module.Staking.Stake(ctx, "dave", 1); !errors.Is(err, domainerrors.ErrBalanceOverflow) {
		t.Fatalf("expected ErrBalanceOverflow, got %v", err)
	}
	assertBalances(t, module, "dave", 10, math.MaxUint64)
}

func TestFreePoolOverflowOnUnstake(t *testing.T) {
	module := stakingledger.NewInMemoryModule[string, uint64](nil)
	ctx := context.Background()

	if err := module.Staking.SetBalance(ctx, "erin", math.MaxUint64); err != nil {
		t.Fatalf("set balance failed: %v", err)
	}
	if err := module.Staking.Stake(ctx, "erin", 100); err != nil {
		t.Fatalf("stake failed: %v", err)
	}
	if err := module.Staking.SetBalance(ctx, "erin", math.MaxUint64); err != nil {
		t.Fatalf("set balance failed: %v", err)
	}

	if err := module.Staking.Unstake(ctx, "erin", 100); !errors.Is(err, domainerrors.ErrBalanceOverflow) {
		t.Fatalf("expected ErrBalanceOverflow, got %v", err)
	}
	assertBalances(t, module, "erin", math.MaxUint64, 100)
}

func TestUnknownAccountReadsAsZero(t *testing.T) {
	module := stakingledger.NewInMemoryModule[string, uint64](nil)
	ctx := context.Background()

	free, err := module.Balances.FreeBalance(ctx, "nobody")
	if err != nil {
		t.Fatalf("free balance query failed: %v", err)
	}
	staked, err := module.Balances.StakedBalance(ctx, "nobody")
	if err != nil {
		t.Fatalf("staked balance query failed: %v", err)
	}
	if free != 0 || staked != 0 {
		t.Fatalf("expected zero balances for unknown account, got free=%d staked=%d", free, staked)
	}

	if err := module.Staking.Stake(ctx, "nobody", 1); !errors.Is(err, domainerrors.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
}

func TestNarrowBalanceInstantiation(t *testing.T) {
	module := stakingledger.NewInMemoryModule[uint64, uint8](nil)
	ctx := context.Background()

	if err := module.Staking.SetBalance(ctx, 7, 200); err != nil {
		t.Fatalf("set balance failed: %v", err)
	}
	if err := module.Staking.Stake(ctx, 7, 150); err != nil {
		t.Fatalf("stake failed: %v", err)
	}
	if err := module.Staking.SetBalance(ctx, 7, 250); err != nil {
		t.Fatalf("set balance failed: %v", err)
	}
	if err := module.Staking.Unstake(ctx, 7, 10); !errors.Is(err, domainerrors.ErrBalanceOverflow) {
		t.Fatalf("expected uint8 overflow on unstake, got %v", err)
	}
}

func assertBalances(t *testing.T, module stakingledger.Module[string, uint64], account string, wantFree, wantStaked uint64) {
	t.Helper()
	pair, err := module.Balances.Pair(context.Background(), account)
	if err != nil {
		t.Fatalf("pair query failed: %v", err)
	}
	if pair.Free != wantFree || pair.Staked != wantStaked {
		t.Fatalf("balances for %s = free %d staked %d, want free %d staked %d",
			account, pair.Free, pair.Staked, wantFree, wantStaked)
	}
}
