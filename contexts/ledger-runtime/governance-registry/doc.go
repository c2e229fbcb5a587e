// Package governanceregistry implements the Governance Registry inside the
// ledger-runtime context.
//
// The module owns the proposal lifecycle (active to approved/rejected),
// one-vote-per-account tallying, and outbox-backed event production. It is
// generic over the account-identifier type shared with the staking ledger;
// voting weight is uniform, so it never reads balances.
package governanceregistry
