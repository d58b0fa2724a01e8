// Package engine implements the account state machine and the registry
// that routes transactions to per-client accounts.
//
// The Account tracks held/total balances in fixed-point units, a lock
// flag, and its own history of referenceable deposits/withdrawals for
// the dispute lifecycle (dispute -> resolve | chargeback). The Registry
// owns the client -> account mapping; it is an explicit container with
// no package-level state, so runs are deterministic and shardable by
// client id.
package engine
