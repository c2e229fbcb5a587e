// Package stakingledger implements the Staking Ledger inside the
// ledger-runtime context.
//
// The module owns the per-account split between free and staked balance
// pools and the conservation-preserving transfers between them. Business
// rules live in application/domain layers; storage backends sit behind
// ports and adapters. The core is generic over the account-identifier and
// balance types supplied by internal/shared/runtimecfg.
package stakingledger
