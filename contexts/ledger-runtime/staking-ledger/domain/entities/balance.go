package entities

import "agora/internal/shared/runtimecfg"

// BalancePair is the two-pool split of one account's balance. Absent
// accounts read as the zero pair; entries are never deleted.
type BalancePair[B runtimecfg.Balance] struct {
	Free   B
	Staked B
}

// Total is the conserved quantity: stake/unstake move value between the
// pools and never change the sum.
func (p BalancePair[B]) Total() (B, bool) {
	return runtimecfg.CheckedAdd(p.Free, p.Staked)
}
